package interfaces

// DarkMode selects how dark variants are activated
type DarkMode string

const (
	DarkModeMedia DarkMode = "media"
	DarkModeClass DarkMode = "class"
)

// Valid reports whether the dark mode is one of the recognized strategies
func (d DarkMode) Valid() bool {
	return d == DarkModeMedia || d == DarkModeClass
}

// UnknownKeyPolicy decides what happens to unrecognized top-level keys
type UnknownKeyPolicy string

const (
	UnknownKeysReject UnknownKeyPolicy = "reject"
	UnknownKeysWarn   UnknownKeyPolicy = "warn"
	UnknownKeysIgnore UnknownKeyPolicy = "ignore"
)

// Valid reports whether the policy is recognized
func (p UnknownKeyPolicy) Valid() bool {
	switch p {
	case UnknownKeysReject, UnknownKeysWarn, UnknownKeysIgnore:
		return true
	}
	return false
}

// Scale maps token names to a value. A value is a string, a []string
// (font stacks) or a nested Scale (color shades).
type Scale map[string]interface{}

// Theme maps section names such as "colors" or "fontFamily" to their scale
type Theme map[string]Scale

// ThemeConfig is the authored theme block
type ThemeConfig struct {
	// Extend is unioned with the default theme
	Extend Theme
	// Sections replace the matching default sections wholesale
	Sections Theme
}

// PluginRef names a registered plugin and the options passed to its factory
type PluginRef struct {
	Name    string                 `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Options map[string]interface{} `mapstructure:"options" json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// PartialConfig is the user-authored configuration. Nil fields were not set
// and fall back to the defaults.
type PartialConfig struct {
	Content   []string
	Theme     *ThemeConfig
	DarkMode  *DarkMode
	Plugins   []PluginRef
	Prefix    *string
	Important *bool
	Separator *string
	Safelist  []string
}

// Document is a loaded partial configuration together with what the loader
// could not map onto it
type Document struct {
	Source      string
	Partial     PartialConfig
	UnknownKeys []string
}

// BaseConfig is a complete configuration before plugins are instantiated.
// The built-in defaults are a BaseConfig.
type BaseConfig struct {
	Content   []string
	Theme     Theme
	DarkMode  DarkMode
	Plugins   []PluginRef
	Prefix    string
	Important bool
	Separator string
	Safelist  []string
}

// ResolvedConfig is the fully resolved configuration handed to the scanner
// and the style generator
type ResolvedConfig struct {
	Content   []string           `json:"content" yaml:"content" toml:"content"`
	Theme     Theme              `json:"theme" yaml:"theme" toml:"theme"`
	DarkMode  DarkMode           `json:"darkMode" yaml:"darkMode" toml:"darkMode"`
	Plugins   []PluginDescriptor `json:"plugins" yaml:"plugins" toml:"plugins"`
	Prefix    string             `json:"prefix" yaml:"prefix" toml:"prefix"`
	Important bool               `json:"important" yaml:"important" toml:"important"`
	Separator string             `json:"separator" yaml:"separator" toml:"separator"`
	Safelist  []string           `json:"safelist" yaml:"safelist" toml:"safelist"`
	Warnings  []string           `json:"-" yaml:"-" toml:"-"`
}
