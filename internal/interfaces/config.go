package interfaces

// Settings represents the tool's own settings, separate from the design config it resolves
type Settings struct {
	ConfigFile         string `toml:"config_file"`
	Format             string `toml:"format"`
	Target             string `toml:"target"`
	UnknownKeys        string `toml:"unknown_keys"`
	LogLevel           string `toml:"log_level"`
	InteractiveDefault bool   `toml:"interactive_default"`
}

// SettingsManager handles settings loading and resolution
type SettingsManager interface {
	// Load loads settings from the specified path
	Load(path string) (*Settings, error)

	// SetFlag records a flag value that takes precedence over every other source
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > settings file > defaults)
	Resolve() (*Settings, error)

	// Validate validates the settings values
	Validate(settings *Settings) error
}

// DocumentLoader reads a design configuration file into a Document
type DocumentLoader interface {
	Load(path string) (*Document, error)
}
