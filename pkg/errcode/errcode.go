// Package errcode enumerates error codes used across pwcdb packages.
// Codes let the CLI map failures to exit diagnostics without parsing
// error strings.
package errcode

// Code identifies a class of pwcdb errors.
type Code int

const (
	UnknownError Code = iota

	// File system errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaDropError

	// Sources errors
	SourcesConfigError
	SourcesUnknownTargetError
	SourcesMissingFileError

	// Ingest errors
	IngestOpenFileError
	IngestDecodeError
	IngestUpsertError
	IngestLinkError
	IngestCancelledError

	// Relink errors
	RelinkCatalogError
	RelinkScanError
	RelinkRebuildError
	RelinkRecountError

	// Clean errors
	CleanScanError
	CleanDeleteError

	// Enhance errors
	EnhanceSchemaError
	EnhanceUpdateError

	// Index errors
	IndexCreateError
	IndexVacuumError

	// Stats errors
	StatsQueryError

	// Build errors
	BuildStageError
	BuildTargetsFailedError
	BuildAllTargetsFailedError
)
