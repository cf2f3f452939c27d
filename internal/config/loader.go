package config

import (
	"errors"
	"os"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/tokens"
)

// rawDocument mirrors the recognized top-level keys of a design config.
// Pointer fields distinguish "absent" from the zero value.
type rawDocument struct {
	Content   []string               `mapstructure:"content"`
	Theme     *rawTheme              `mapstructure:"theme"`
	DarkMode  *string                `mapstructure:"darkMode"`
	Plugins   []interfaces.PluginRef `mapstructure:"plugins"`
	Prefix    *string                `mapstructure:"prefix"`
	Important *bool                  `mapstructure:"important"`
	Separator *string                `mapstructure:"separator"`
	Safelist  []string               `mapstructure:"safelist"`
}

type rawTheme struct {
	Extend   map[string]interface{} `mapstructure:"extend"`
	Sections map[string]interface{} `mapstructure:",remain"`
}

// Loader reads design configuration files
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader reading from fs
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load reads, parses and decodes the design config at path
func (l *Loader) Load(path string) (*interfaces.Document, error) {
	path = expandPath(path)

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &interfaces.ResolveError{Kind: interfaces.ErrConfigLoad, Path: path, Err: err}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, interfaces.NewResolveError(interfaces.ErrConfigLoad, path, "file does not exist")
		}
		return nil, &interfaces.ResolveError{Kind: interfaces.ErrConfigLoad, Path: path, Err: err}
	}

	raw, err := decodeDocument(format, data)
	if err != nil {
		return nil, interfaces.NewResolveError(interfaces.ErrConfigLoad, path, "failed to parse %s: %w", format, err)
	}

	return Decode(raw, path)
}

// Decode maps a generic document onto a partial configuration. Keys that
// match nothing are reported in Document.UnknownKeys rather than rejected,
// the resolver decides what to do with them.
func Decode(raw map[string]interface{}, source string) (*interfaces.Document, error) {
	var doc rawDocument
	var metadata mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &doc,
		Metadata:   &metadata,
		DecodeHook: mapstructure.DecodeHookFuncType(pluginRefHook),
		MatchName:  exactName,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, &interfaces.ResolveError{Kind: interfaces.ErrValidation, Path: source, Err: err}
	}

	partial := interfaces.PartialConfig{
		Content:   doc.Content,
		Plugins:   doc.Plugins,
		Prefix:    doc.Prefix,
		Important: doc.Important,
		Separator: doc.Separator,
		Safelist:  doc.Safelist,
	}

	if doc.DarkMode != nil {
		mode := interfaces.DarkMode(*doc.DarkMode)
		partial.DarkMode = &mode
	}

	if doc.Theme != nil {
		theme, err := decodeTheme(doc.Theme)
		if err != nil {
			return nil, err
		}
		partial.Theme = theme
	}

	unknown := append([]string(nil), metadata.Unused...)
	sort.Strings(unknown)

	return &interfaces.Document{
		Source:      source,
		Partial:     partial,
		UnknownKeys: unknown,
	}, nil
}

func decodeTheme(raw *rawTheme) (*interfaces.ThemeConfig, error) {
	extend, err := tokens.NormalizeTheme(raw.Extend, "theme.extend")
	if err != nil {
		return nil, err
	}
	sections, err := tokens.NormalizeTheme(raw.Sections, "theme")
	if err != nil {
		return nil, err
	}
	return &interfaces.ThemeConfig{Extend: extend, Sections: sections}, nil
}

// exactName keeps key matching case-sensitive so that darkmode or Extend
// stay unrecognized instead of folding onto darkMode and extend
func exactName(mapKey, fieldName string) bool {
	return mapKey == fieldName
}

var pluginRefType = reflect.TypeOf(interfaces.PluginRef{})

// pluginRefHook lets a plugin be listed by bare name
func pluginRefHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != pluginRefType || from.Kind() != reflect.String {
		return data, nil
	}
	return interfaces.PluginRef{Name: reflect.ValueOf(data).String()}, nil
}
