package iosources

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// SourcesConfigError creates an error for when sources.yaml cannot be
// loaded or fails validation.
func SourcesConfigError(path string, err error) error {
	return errcode.New(errcode.SourcesConfigError,
		fmt.Errorf("failed to load sources config %s: %w", path, err))
}

// UnknownTargetError wraps a request for a target name that the
// registry does not define.
func UnknownTargetError(err error) error {
	return errcode.New(errcode.SourcesUnknownTargetError, err)
}

// MissingFileError reports a registered snapshot file that is absent
// from the data directory.
func MissingFileError(path string, err error) error {
	return errcode.New(errcode.SourcesMissingFileError,
		fmt.Errorf("snapshot file %s is not readable: %w", path, err))
}
