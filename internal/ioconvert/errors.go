package ioconvert

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/pkg/errcode"
)

func DumpParseError(path string, err error) error {
	msg := "Cannot parse <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConvertDumpParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}

func RootNameError(path string, err error) error {
	msg := "No name for the root tax id 1 in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConvertRootNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func NameNotFoundError(line int, err error) error {
	msg := "Tax id without a name in nodes.dmp line %d"
	vars := []any{line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConvertNameNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: line %d: %w", fn, line, err),
	}
}

func ParentNotFoundError(line int, err error) error {
	msg := "Parent is not in the tree yet, nodes.dmp line %d"
	vars := []any{line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConvertParentNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: line %d: %w", fn, line, err),
	}
}
