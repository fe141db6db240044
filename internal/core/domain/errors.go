package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownKind is returned when a definition kind cannot be recognised.
	ErrUnknownKind = zerr.New("unknown definition kind")

	// ErrDefinitionNotFound is returned when a command path does not resolve.
	ErrDefinitionNotFound = zerr.New("definition not found")

	// ErrScriptQueryFailed is returned when a script cannot describe its commands.
	ErrScriptQueryFailed = zerr.New("script query failed")

	// ErrScriptStartFailed is returned when a script process cannot be started.
	ErrScriptStartFailed = zerr.New("failed to start script")

	// ErrEmptyResponse is returned when a script answers a query with no output.
	ErrEmptyResponse = zerr.New("script returned no command definitions")

	// ErrInvalidArguments is returned when an argument string cannot be split.
	ErrInvalidArguments = zerr.New("invalid script arguments")

	// ErrUnterminatedQuote is returned when a usage grammar has an open quote.
	ErrUnterminatedQuote = zerr.New("unterminated quote in usage")

	// ErrUnbalancedEnd is returned when a usage grammar closes a level that was never opened.
	ErrUnbalancedEnd = zerr.New("unbalanced end in usage")

	// ErrOrphanDescription is returned when a usage description has no preceding name.
	ErrOrphanDescription = zerr.New("description without a name in usage")

	// ErrStoreCreateFailed is returned when a layer directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create definitions directory")

	// ErrStoreReadFailed is returned when a definitions file cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read definitions")

	// ErrStoreUnmarshalFailed is returned when a definitions file cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal definitions")

	// ErrStoreMarshalFailed is returned when definitions cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal definitions")

	// ErrStoreWriteFailed is returned when a definitions file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write definitions")

	// ErrStoreRemoveFailed is returned when a definitions file cannot be removed.
	ErrStoreRemoveFailed = zerr.New("failed to remove definitions")

	// ErrChecksumMismatch is returned when a definitions file fails its integrity check.
	ErrChecksumMismatch = zerr.New("definitions checksum mismatch")

	// ErrVersionMismatch is returned when a definitions file has an unsupported version.
	ErrVersionMismatch = zerr.New("unsupported definitions file version")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTimeout is returned when a script timeout setting is not a valid duration.
	ErrInvalidTimeout = zerr.New("invalid script timeout")

	// ErrWorkingDirectory is returned when the working directory cannot be resolved.
	ErrWorkingDirectory = zerr.New("failed to resolve working directory")

	// ErrAppRoot is returned when the global configuration root cannot be resolved.
	ErrAppRoot = zerr.New("failed to resolve app root")

	// ErrWatchFailed is returned when a layer directory cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch definitions")
)
