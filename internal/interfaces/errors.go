package interfaces

import (
	"errors"
	"fmt"
)

// Error categories. Every failure surfaced by loading or resolution wraps
// exactly one of them.
var (
	ErrConfigLoad = errors.New("config load error")
	ErrValidation = errors.New("validation error")
	ErrPluginInit = errors.New("plugin initialization error")
)

// ResolveError ties a failure to the configuration path it concerns
type ResolveError struct {
	Kind error
	Path string
	Err  error
}

// NewResolveError builds a ResolveError with a formatted cause
func NewResolveError(kind error, path string, format string, args ...interface{}) *ResolveError {
	return &ResolveError{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

func (e *ResolveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ResolveError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
