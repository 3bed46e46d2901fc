package iofs

import (
	"fmt"
	"runtime"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return errcode.New(errcode.CreateDirError,
		fmt.Errorf("from %s: cannot create directory %s: %w",
			fn.Name(), dir, err))
}

func CopyFileError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return errcode.New(errcode.CopyFileError,
		fmt.Errorf("from %s: cannot copy file %s: %w",
			fn.Name(), file, err))
}

func ReadFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return errcode.New(errcode.ReadFileError,
		fmt.Errorf("from %s: cannot read %s: %w",
			fn.Name(), path, err))
}
