package errors

import (
	"fmt"
	"strings"
)

// SyntaxError reports an annotation that could not be parsed
func SyntaxError(loc SourceLocation, annotation string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, "invalid annotation", cause).
		WithLocation(loc).
		WithContext("annotation", annotation).
		WithSuggestions("annotations look like //axon::name [args] [-Param=value]")
}

// ValidationError reports an annotation that parsed but is not allowed where it appears
func ValidationError(loc SourceLocation, message string, suggestions ...string) *BaseError {
	return New(ValidationErrorCode, message).
		WithLocation(loc).
		WithSuggestions(suggestions...)
}

// CompositionError reports more than one scan directive on a configuration type
func CompositionError(loc SourceLocation, typeName string, directives []string) *BaseError {
	return Newf(CompositionErrorCode, "type %s declares %s", typeName, strings.Join(directives, " and ")).
		WithLocation(loc).
		WithContext("type", typeName).
		WithSuggestions("declare each scan directive on its own configuration type")
}

// WrapGenerateError wraps a failure to render or format generated code
func WrapGenerateError(target string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", target), cause).
		WithContext("target", target)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapModuleError wraps go.mod discovery and parsing errors
func WrapModuleError(path string, cause error) *BaseError {
	return Wrap(ModuleErrorCode, fmt.Sprintf("failed to resolve module for '%s'", path), cause).
		WithSuggestions("run fwmap inside a Go module or pass --module")
}
