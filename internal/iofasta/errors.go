package iofasta

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/pkg/errcode"
)

func FastaDirError(dir string, err error) error {
	msg := "Cannot read FASTA directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildFastaDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read directory %s: %w", fn, dir, err),
	}
}

func DuplicateTaxonError(taxon string, paths ...string) error {
	msg := "Taxon <em>%s</em> has more than one FASTA file: %s"
	vars := []any{taxon, strings.Join(paths, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildDuplicateTaxonError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: duplicate taxon %q", fn, taxon),
	}
}

func FastaParseError(path string, err error) error {
	msg := "Cannot parse FASTA file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuildFastaParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}
