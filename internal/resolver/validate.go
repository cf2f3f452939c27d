package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"stylecfg/internal/interfaces"
)

// validateBase checks a merged configuration before plugins run.
// All problems are reported together.
func validateBase(cfg *interfaces.BaseConfig) error {
	var errs []error

	for i, pattern := range cfg.Content {
		if err := validatePattern(pattern); err != nil {
			errs = append(errs, interfaces.NewResolveError(interfaces.ErrValidation,
				fmt.Sprintf("content[%d]", i), "%v", err))
		}
	}

	if !cfg.DarkMode.Valid() {
		errs = append(errs, interfaces.NewResolveError(interfaces.ErrValidation, "darkMode",
			"unrecognized value %q (must be %q or %q)", cfg.DarkMode, interfaces.DarkModeMedia, interfaces.DarkModeClass))
	}

	if cfg.Separator == "" {
		errs = append(errs, interfaces.NewResolveError(interfaces.ErrValidation, "separator", "must not be empty"))
	}

	for i, class := range cfg.Safelist {
		if strings.TrimSpace(class) == "" {
			errs = append(errs, interfaces.NewResolveError(interfaces.ErrValidation,
				fmt.Sprintf("safelist[%d]", i), "class name must not be empty"))
		}
	}

	for i, ref := range cfg.Plugins {
		if strings.TrimSpace(ref.Name) == "" {
			errs = append(errs, interfaces.NewResolveError(interfaces.ErrValidation,
				fmt.Sprintf("plugins[%d]", i), "plugin reference has no name"))
		}
	}

	return errors.Join(errs...)
}

// validatePattern accepts the glob dialect the content scanner understands:
// "**", character classes and {a,b} alternation
func validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("glob pattern must not be empty")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("malformed glob pattern %q", pattern)
	}
	return nil
}
