package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"stylecfg/internal/interfaces"
)

// Error types for different categories of failures
var (
	ErrSettingsInvalid = errors.New("settings error")
	ErrOutputFailed    = errors.New("output error")
)

// StyleError represents a structured error with actionable guidance
type StyleError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *StyleError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *StyleError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Type}
	}
	return []error{e.Type, e.Cause}
}

// Error constructors with actionable guidance

func NewConfigLoadError(path string, cause error) *StyleError {
	guidance := "Check that the file is valid YAML, JSON or TOML and that its extension matches its content."

	if strings.Contains(cause.Error(), "does not exist") {
		guidance = fmt.Sprintf("The design config '%s' doesn't exist. Run 'stylecfg init' to create one "+
			"or point to another file with --config.", path)
	} else if strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied reading '%s'. Ensure you have read access to the file.", path)
	} else if strings.Contains(cause.Error(), "unsupported format") || strings.Contains(cause.Error(), "no file extension") {
		guidance = "Design configs must end in .yaml, .yml, .json or .toml. JavaScript configs are not evaluated."
	}

	return &StyleError{
		Type:     interfaces.ErrConfigLoad,
		Message:  describe(cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(cause error) *StyleError {
	guidance := "Fix the reported keys and run 'stylecfg validate' again."

	msg := describe(cause)
	switch {
	case strings.Contains(msg, "darkMode"):
		guidance = "darkMode must be 'media' (follow the OS preference) or 'class' (toggle with a .dark class)."
	case strings.Contains(msg, "unrecognized configuration keys"):
		guidance = "Remove the unknown keys, or relax the check with --unknown-keys warn or --unknown-keys ignore."
	case strings.Contains(msg, "unknown plugin"):
		guidance = "Run 'stylecfg plugins' to list the plugins that can be referenced."
	case strings.Contains(msg, "glob"):
		guidance = "content entries are globs relative to the project root, e.g. ./src/**/*.{html,ts}. " +
			"Check for unbalanced [ ] or { }."
	}

	return &StyleError{
		Type:     interfaces.ErrValidation,
		Message:  msg,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewPluginInitError(cause error) *StyleError {
	return &StyleError{
		Type:     interfaces.ErrPluginInit,
		Message:  describe(cause),
		Guidance: "Check the plugin's options in the plugins list. Run 'stylecfg plugins' to see what each plugin accepts.",
		Cause:    cause,
	}
}

func NewSettingsError(message string, cause error) *StyleError {
	guidance := "Check ~/.config/stylecfg/settings.toml and any STYLECFG_* environment variables. " +
		"Use --settings to point to a different settings file."

	return &StyleError{
		Type:     ErrSettingsInvalid,
		Message:  fmt.Sprintf("%s: %v", message, cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *StyleError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	} else if strings.HasPrefix(target, "file:") {
		filePath := strings.TrimPrefix(target, "file:")
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &StyleError{
		Type:     ErrOutputFailed,
		Message:  fmt.Sprintf("%s: %v", message, cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

// describe renders resolver errors without repeating their category, one
// line per problem when several were joined
func describe(err error) string {
	if resolveErr, ok := err.(*interfaces.ResolveError); ok {
		if resolveErr.Path == "" {
			return resolveErr.Err.Error()
		}
		return resolveErr.Path + ": " + resolveErr.Err.Error()
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, describe(e))
		}
		if len(lines) == 1 {
			return lines[0]
		}
		return "\n  " + strings.Join(lines, "\n  ")
	}

	return err.Error()
}

// classify wraps a loader or resolver error in the matching StyleError
func classify(source string, err error) error {
	if err == nil {
		return nil
	}

	var styleErr *StyleError
	if errors.As(err, &styleErr) {
		return err
	}

	switch {
	case errors.Is(err, interfaces.ErrConfigLoad):
		return NewConfigLoadError(source, err)
	case errors.Is(err, interfaces.ErrPluginInit):
		return NewPluginInitError(err)
	case errors.Is(err, interfaces.ErrValidation):
		return NewValidationError(err)
	}
	return err
}
