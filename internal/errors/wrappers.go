package errors

import (
	stderrors "errors"
	"fmt"
)

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configPath, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configPath)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_path", configPath).
		WithContext("operation", operation)
}

// WrapIndexError wraps project index scan errors
func WrapIndexError(indexName, root string, cause error) *BaseError {
	message := fmt.Sprintf("failed to build %s index for '%s'", indexName, root)
	return Wrap(IndexErrorCode, message, cause).
		WithContext("index", indexName).
		WithContext("root", root)
}

// NewUsageError reports a command line usage problem
func NewUsageError(format string, args ...interface{}) *BaseError {
	return Newf(UsageErrorCode, format, args...).
		WithSuggestion("Run with --help to see available commands and flags")
}

// CodeOf returns the code of the first GenieError in err's chain
func CodeOf(err error) ErrorCode {
	var genieErr GenieError
	if stderrors.As(err, &genieErr) {
		return genieErr.ErrorCode()
	}
	return UnknownErrorCode
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
