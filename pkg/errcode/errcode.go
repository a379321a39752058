// Package errcode defines error codes for the fixtures pipeline.
// Codes group by the component that raises them. Unparsable fields and
// ambiguous entity matches are not here: those degrade to warnings in
// the import summary and never surface as errors.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration errors
	ConfigInvalidError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBQueryError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Parser errors
	ParseFormatUnrecognizedError
	ParseEmptyInputError
	ParseTabularError

	// Import errors
	ImportStorageConflictError
	ImportAtomicityError

	// Task errors
	TaskNotFoundError
	TaskTransitionError

	// Synchronizer errors
	SyncSecondaryWriteError
	SyncDivergenceError

	// Legacy store errors
	LegacyStoreReadError
	LegacyStoreWriteError

	// Email assembler errors
	EmailTaskContextError
	EmailTemplateError

	// Fetch errors
	FetchURLError
	FetchStatusError
)
