package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"stylecfg/internal/interfaces"
)

// Manager implements the SettingsManager interface
type Manager struct {
	v     *viper.Viper
	fs    afero.Fs
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a settings manager backed by the OS filesystem
func NewManager() *Manager {
	return NewManagerWithFs(afero.NewOsFs())
}

// NewManagerWithFs creates a settings manager reading from fs
func NewManagerWithFs(fs afero.Fs) *Manager {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")
	v.SetEnvPrefix("STYLECFG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		fs:    fs,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default settings values
func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "stylecfg.config.yaml")
	v.SetDefault("format", "json")
	v.SetDefault("target", "stdout")
	v.SetDefault("unknown_keys", string(interfaces.UnknownKeysReject))
	// log_level has no default here; an empty level lets the logger fall back to LOG_LEVEL
	v.SetDefault("interactive_default", true)
}

// DefaultSettingsPath returns ~/.config/stylecfg/settings.toml
func DefaultSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "stylecfg", "settings.toml"), nil
}

// Load loads settings from the specified path. A missing file is not an
// error; the defaults and environment still apply.
func (m *Manager) Load(path string) (*interfaces.Settings, error) {
	if path == "" {
		defaultPath, err := DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat settings file %s: %w", path, err)
	}
	if !exists {
		return m.getSettingsFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return m.getSettingsFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > settings file > defaults)
func (m *Manager) Resolve() (*interfaces.Settings, error) {
	settings := m.getSettingsFromViper()

	m.applyFlagOverrides(settings)

	return settings, nil
}

// applyFlagOverrides applies non-empty flag values over the settings
func (m *Manager) applyFlagOverrides(settings *interfaces.Settings) {
	overrides := map[string]*string{
		"config_file":  &settings.ConfigFile,
		"format":       &settings.Format,
		"target":       &settings.Target,
		"unknown_keys": &settings.UnknownKeys,
		"log_level":    &settings.LogLevel,
	}

	for key, field := range overrides {
		if val, exists := m.flags[key]; exists && val != nil {
			if str, ok := val.(string); ok && str != "" {
				*field = str
			}
		}
	}

	if val, exists := m.flags["interactive_default"]; exists {
		if b, ok := val.(bool); ok {
			settings.InteractiveDefault = b
		}
	}

	settings.ConfigFile = expandPath(settings.ConfigFile)
}

// Validate validates the settings values
func (m *Manager) Validate(settings *interfaces.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	if settings.ConfigFile == "" {
		return fmt.Errorf("config_file cannot be empty")
	}

	if _, err := FormatFromName(settings.Format); err != nil {
		return fmt.Errorf("invalid format: %s (must be 'json', 'yaml' or 'toml')", settings.Format)
	}

	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	// Also allow file: prefix
	if !validTargets[settings.Target] && !strings.HasPrefix(settings.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", settings.Target)
	}
	if settings.Target == "file:" {
		return fmt.Errorf("invalid target: file target needs a path")
	}

	if !interfaces.UnknownKeyPolicy(settings.UnknownKeys).Valid() {
		return fmt.Errorf("invalid unknown_keys: %s (must be 'reject', 'warn' or 'ignore')", settings.UnknownKeys)
	}

	return nil
}

// getSettingsFromViper converts viper settings to a Settings struct
// This handles env > settings file > defaults precedence (flags are applied separately)
func (m *Manager) getSettingsFromViper() *interfaces.Settings {
	return &interfaces.Settings{
		ConfigFile:         expandPath(m.v.GetString("config_file")),
		Format:             m.v.GetString("format"),
		Target:             m.v.GetString("target"),
		UnknownKeys:        m.v.GetString("unknown_keys"),
		LogLevel:           m.v.GetString("log_level"),
		InteractiveDefault: m.v.GetBool("interactive_default"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
