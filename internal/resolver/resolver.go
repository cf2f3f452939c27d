// Package resolver turns an authored partial configuration into a fully
// resolved one.
//
// Resolution is a pure transform of (partial, defaults): theme.extend is
// unioned into the default theme, direct theme sections and every other
// top-level key replace the default, the result is validated, and each
// plugin reference is instantiated through the registry. Nothing here reads
// files or writes logs; non-fatal findings come back as warnings.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/copystructure"
	"stylecfg/internal/interfaces"
)

// Resolver resolves documents against a base configuration
type Resolver struct {
	registry    interfaces.PluginRegistry
	unknownKeys interfaces.UnknownKeyPolicy
}

// New creates a resolver. An empty policy means reject.
func New(registry interfaces.PluginRegistry, unknownKeys interfaces.UnknownKeyPolicy) *Resolver {
	if unknownKeys == "" {
		unknownKeys = interfaces.UnknownKeysReject
	}
	return &Resolver{
		registry:    registry,
		unknownKeys: unknownKeys,
	}
}

// Resolve merges doc over defaults, validates the result and instantiates plugins.
// Neither argument is modified.
func (r *Resolver) Resolve(doc *interfaces.Document, defaults *interfaces.BaseConfig) (*interfaces.ResolvedConfig, error) {
	if doc == nil {
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, "", "document cannot be nil")
	}
	if defaults == nil {
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, "", "defaults cannot be nil")
	}
	if !r.unknownKeys.Valid() {
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, "unknown_keys",
			"unrecognized policy %q", r.unknownKeys)
	}

	var warnings []string

	unknown, err := r.applyUnknownKeyPolicy(doc.UnknownKeys)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, unknown...)

	base, err := Merge(&doc.Partial, defaults)
	if err != nil {
		return nil, err
	}

	if err := validateBase(base); err != nil {
		return nil, err
	}

	if len(base.Content) == 0 {
		warnings = append(warnings, "content is empty: no source files will be scanned and no utilities will be generated")
	}

	descriptors, err := r.instantiatePlugins(base.Plugins, base.Theme)
	if err != nil {
		return nil, err
	}

	return &interfaces.ResolvedConfig{
		Content:   base.Content,
		Theme:     base.Theme,
		DarkMode:  base.DarkMode,
		Plugins:   descriptors,
		Prefix:    base.Prefix,
		Important: base.Important,
		Separator: base.Separator,
		Safelist:  base.Safelist,
		Warnings:  warnings,
	}, nil
}

// Merge applies the partial configuration to a deep copy of defaults.
// It performs no validation.
func Merge(partial *interfaces.PartialConfig, defaults *interfaces.BaseConfig) (*interfaces.BaseConfig, error) {
	copied, err := copystructure.Copy(defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to copy defaults: %w", err)
	}
	base := copied.(*interfaces.BaseConfig)

	if partial == nil {
		return base, nil
	}

	// Lists replace, never append
	if partial.Content != nil {
		base.Content = append([]string{}, partial.Content...)
	}
	if partial.Safelist != nil {
		base.Safelist = append([]string{}, partial.Safelist...)
	}
	if partial.Plugins != nil {
		plugins, err := copystructure.Copy(partial.Plugins)
		if err != nil {
			return nil, fmt.Errorf("failed to copy plugins: %w", err)
		}
		base.Plugins = plugins.([]interfaces.PluginRef)
	}

	if partial.DarkMode != nil {
		base.DarkMode = *partial.DarkMode
	}
	if partial.Prefix != nil {
		base.Prefix = *partial.Prefix
	}
	if partial.Important != nil {
		base.Important = *partial.Important
	}
	if partial.Separator != nil {
		base.Separator = *partial.Separator
	}

	theme, err := mergeTheme(base.Theme, partial.Theme)
	if err != nil {
		return nil, err
	}
	base.Theme = theme

	return base, nil
}

func (r *Resolver) applyUnknownKeyPolicy(keys []string) ([]string, error) {
	if len(keys) == 0 || r.unknownKeys == interfaces.UnknownKeysIgnore {
		return nil, nil
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	if r.unknownKeys == interfaces.UnknownKeysReject {
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, sorted[0],
			"unrecognized configuration keys: %s", strings.Join(sorted, ", "))
	}

	warnings := make([]string, 0, len(sorted))
	for _, key := range sorted {
		warnings = append(warnings, fmt.Sprintf("ignoring unrecognized key %q", key))
	}
	return warnings, nil
}

func (r *Resolver) instantiatePlugins(refs []interfaces.PluginRef, theme interfaces.Theme) ([]interfaces.PluginDescriptor, error) {
	descriptors := make([]interfaces.PluginDescriptor, 0, len(refs))
	for i, ref := range refs {
		path := fmt.Sprintf("plugins[%d]", i)

		if r.registry == nil {
			return nil, interfaces.NewResolveError(interfaces.ErrValidation, path,
				"no plugin registry configured for %q", ref.Name)
		}
		factory, ok := r.registry.Lookup(ref.Name)
		if !ok {
			return nil, interfaces.NewResolveError(interfaces.ErrValidation, path,
				"unknown plugin %q (registered: %s)", ref.Name, strings.Join(r.registry.Names(), ", "))
		}

		// Plugins get their own copy so they cannot alter the resolved theme
		themeCopy, err := cloneTheme(theme)
		if err != nil {
			return nil, err
		}
		descriptor, err := createPlugin(factory, themeCopy, ref.Options)
		if err != nil {
			return nil, &interfaces.ResolveError{Kind: interfaces.ErrPluginInit, Path: path,
				Err: fmt.Errorf("plugin %q: %w", ref.Name, err)}
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// createPlugin runs a factory, turning a panic into an error
func createPlugin(factory interfaces.PluginFactory, theme interfaces.Theme, options map[string]interface{}) (descriptor interfaces.PluginDescriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return factory.Create(theme, options)
}
