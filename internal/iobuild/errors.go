package iobuild

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/pkg/errcode"
)

func TreeReadError(path string, err error) error {
	msg := "Cannot read tree from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildTreeReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read tree %s: %w", fn, path, err),
	}
}

func NoTaxaError(dir, ext string) error {
	msg := "No <em>*%s</em> files in <em>%s</em>"
	vars := []any{ext, dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildNoTaxaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no %s files in %s", fn, ext, dir),
	}
}

func TaxonNotFoundError(err error) error {
	msg := "Tree leaves without FASTA files: %s"
	vars := []any{err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildTaxonNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

// wrapError keeps errors that already carry a code and wraps the rest.
func wrapError(err error) error {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Build failed: %s",
		Vars: []any{err.Error()},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
