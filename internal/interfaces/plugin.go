package interfaces

// PluginDescriptor is what a plugin factory produces for the style generator
type PluginDescriptor struct {
	Name       string                 `json:"name" yaml:"name" toml:"name"`
	Components []string               `json:"components" yaml:"components" toml:"components"`
	Options    map[string]interface{} `json:"options" yaml:"options" toml:"options"`
	ThemeKeys  []string               `json:"themeKeys" yaml:"themeKeys" toml:"themeKeys"`
}

// PluginFactory creates a plugin descriptor from the resolved theme
type PluginFactory interface {
	// Name is the name configs use to reference the plugin
	Name() string

	// Create builds the descriptor. Options come from the plugin reference
	// and may be nil.
	Create(theme Theme, options map[string]interface{}) (PluginDescriptor, error)
}

// PluginRegistry looks up factories by name
type PluginRegistry interface {
	Lookup(name string) (PluginFactory, bool)
	Names() []string
}
