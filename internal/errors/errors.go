// Package errors provides standardized error handling for the igridvu
// application. It defines the closed set of image-load failure categories
// surfaced to the user in place of image content, plus helpers for
// consistent error creation, wrapping, and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Image load error kinds, one per pre-decode check
	NotFound
	PermissionDenied
	TooLarge
	UnrecognizedFormat
	DimensionsTooLarge
	Corrupted
	// Dataset assembly error kinds
	PathTraversal
	BaseDirectoryMissing
	// Config error kinds
	InvalidConfig
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// LoadError represents a failed image load or dataset entry resolution.
// It carries the offending path and a short display message suitable for
// rendering inside the degraded grid cell.
type LoadError struct {
	ApplicationError
	path    string
	display string
}

// NewLoadError creates a load error with an explicit display message.
func NewLoadError(msg, display, path string, kind ErrorKind, err error) *LoadError {
	return &LoadError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path:    path,
		display: display,
	}
}

// NotFoundError reports a path that does not exist or is not a regular file.
func NotFoundError(path string) *LoadError {
	return NewLoadError("file not found", "Not found", path, NotFound, nil)
}

// PermissionError reports a file the process may not read.
func PermissionError(path string, err error) *LoadError {
	return NewLoadError("permission denied", "Permission\ndenied", path, PermissionDenied, err)
}

// TooLargeError reports a file exceeding the configured size limit.
// sizeMB is the actual size in mebibytes.
func TooLargeError(path string, sizeMB float64) *LoadError {
	return NewLoadError(
		fmt.Sprintf("file too large (%.1f MB)", sizeMB),
		fmt.Sprintf("File too large\n(%.1f MB)", sizeMB),
		path, TooLarge, nil)
}

// UnrecognizedFormatError reports a file the decoder cannot identify.
func UnrecognizedFormatError(path string, err error) *LoadError {
	return NewLoadError("unrecognized format", "Unrecognized\nformat", path, UnrecognizedFormat, err)
}

// DimensionsError reports an image exceeding the configured dimension limit.
func DimensionsError(path string, width, height int) *LoadError {
	return NewLoadError(
		fmt.Sprintf("dimensions too large (%dx%d)", width, height),
		fmt.Sprintf("Dimensions too large\n(%dx%d)", width, height),
		path, DimensionsTooLarge, nil)
}

// CorruptedError reports a file that sniffed as an image but failed to decode.
func CorruptedError(path string, err error) *LoadError {
	return NewLoadError("cannot decode image", "Cannot load\n(Corrupted?)", path, Corrupted, err)
}

// TraversalError reports a resolved path escaping the base directory.
func TraversalError(path string) *LoadError {
	return NewLoadError("path escapes base directory", "Invalid path", path, PathTraversal, nil)
}

// BaseDirError reports a base directory that cannot be resolved.
func BaseDirError(path string, err error) *LoadError {
	return NewLoadError("base directory missing", "Base directory\nmissing", path, BaseDirectoryMissing, err)
}

// Error returns the load error message
func (e *LoadError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *LoadError) Path() string {
	return e.path
}

// Message returns the short display text shown in the degraded grid cell.
func (e *LoadError) Message() string {
	return e.display
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidConfig,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the ErrorKind carried by err, or Unknown when err carries none.
func KindOf(err error) ErrorKind {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind()
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// AsLoadError extracts the LoadError in err's chain, if any.
func AsLoadError(err error) (*LoadError, bool) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr, true
	}
	return nil, false
}

// IsNotFound checks if the error is a file not found load error
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

// IsPermissionDenied checks if the error is a permission denied load error
func IsPermissionDenied(err error) bool {
	return KindOf(err) == PermissionDenied
}

// IsPathTraversal checks if the error is a path traversal rejection
func IsPathTraversal(err error) bool {
	return KindOf(err) == PathTraversal
}
