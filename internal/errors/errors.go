// Package errors provides standardized error handling for vimpi.
// It defines the error kinds raised by file selection, saving, closing,
// configuration and the screen stack, together with helpers to create and
// classify them.
package errors

import (
	"errors"
	"fmt"
)

// As finds the first error in err's chain that matches target. It is
// re-exported so callers need a single errors import.
var As = errors.As

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileReadFailed
	SaveFailed
	NoFileSelected
	FileNotOpen
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Screen error kinds
	ScreenNotInstalled
	ScreenAlreadyInstalled
	ScreenAlreadyActive
	ScreenStackBottom
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case FileAccessDenied:
		return "file access denied"
	case InvalidPath:
		return "invalid path"
	case FileReadFailed:
		return "file read failed"
	case SaveFailed:
		return "save failed"
	case NoFileSelected:
		return "no file selected"
	case FileNotOpen:
		return "file not open"
	case InvalidConfig:
		return "invalid configuration"
	case ConfigNotFound:
		return "configuration not found"
	case ScreenNotInstalled:
		return "screen not installed"
	case ScreenAlreadyInstalled:
		return "screen already installed"
	case ScreenAlreadyActive:
		return "screen already active"
	case ScreenStackBottom:
		return "screen stack bottom"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrNoFileSelected = &ApplicationError{msg: "no file selected", kind: NoFileSelected}
	ErrFileNotOpen    = &ApplicationError{msg: "file not open", kind: FileNotOpen}
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

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// NewFileReadError reports a selection-time read failure.
func NewFileReadError(path string, err error) *FileError {
	return NewFileError("cannot read file", path, FileReadFailed, err)
}

// NewSaveError reports a failed overwrite of path. The cause is kept for
// logging; callers show the user a generic message.
func NewSaveError(path string, cause error) *FileError {
	return NewFileError("cannot save file", path, SaveFailed, cause)
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// Cause returns the text of the wrapped error, or "" when there is none.
func (e *FileError) Cause() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
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

// ScreenError represents a rejected screen stack operation
type ScreenError struct {
	ApplicationError
	screen string
}

// NewScreenError creates a new screen error
func NewScreenError(msg string, screen string, kind ErrorKind) *ScreenError {
	return &ScreenError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		screen: screen,
	}
}

// Error returns the screen error message
func (e *ScreenError) Error() string {
	if e.screen != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.screen)
	}
	return e.msg
}

// Screen returns the screen name associated with the error
func (e *ScreenError) Screen() string {
	return e.screen
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified wrappers are skipped.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsFileReadError checks if the error is a selection-time read failure
func IsFileReadError(err error) bool {
	return KindOf(err) == FileReadFailed
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
