package iobuild

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
)

// StageError is returned when one stage of a target build fails.
func StageError(target string, stage pwcdb.Stage, err error) error {
	return errcode.New(errcode.BuildStageError,
		fmt.Errorf("target %s failed at stage %s: %w", target, stage, err))
}

// TargetsFailedError is returned when some targets failed while
// others completed. The run still exits non-zero: every requested
// stage has to succeed.
func TargetsFailedError(failed, total int) error {
	return errcode.New(errcode.BuildTargetsFailedError,
		fmt.Errorf("%d of %d targets failed to build", failed, total))
}

// AllTargetsFailedError is returned when no target completed.
func AllTargetsFailedError(n int) error {
	return errcode.New(errcode.BuildAllTargetsFailedError,
		fmt.Errorf("all %d targets failed to build", n))
}
