package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	CreateFileError
	WriteFileError
	CommitFileError

	// Logging errors
	CreateLogFileError

	// Build errors
	BuildTreeReadError
	BuildFastaDirError
	BuildDuplicateTaxonError
	BuildFastaParseError
	BuildTaxonNotFoundError
	BuildNoTaxaError

	// Convert errors
	ConvertDumpParseError
	ConvertRootNameError
	ConvertNameNotFoundError
	ConvertParentNotFoundError

	// SQLite export errors
	SQLiteOpenError
	SQLiteSchemaError
	SQLiteInsertError
)
