package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// StarterOptions are the answers the init wizard collects
type StarterOptions struct {
	Content  []string
	DarkMode string
	Plugins  []string
	Colors   map[string]string
}

// DefaultStarterOptions mirrors a typical single-page project
func DefaultStarterOptions() StarterOptions {
	return StarterOptions{
		Content:  []string{"./src/**/*.{astro,html,js,jsx,md,mdx,svelte,ts,tsx,vue}"},
		DarkMode: "media",
		Plugins:  []string{},
		Colors:   map[string]string{},
	}
}

type starterDocument struct {
	Content  []string     `json:"content" yaml:"content" toml:"content"`
	DarkMode string       `json:"darkMode" yaml:"darkMode" toml:"darkMode"`
	Plugins  []string     `json:"plugins" yaml:"plugins" toml:"plugins"`
	Theme    starterTheme `json:"theme" yaml:"theme" toml:"theme"`
}

type starterTheme struct {
	Extend map[string]map[string]string `json:"extend" yaml:"extend" toml:"extend"`
}

// RenderStarter encodes a starter design config
func RenderStarter(format Format, opts StarterOptions) ([]byte, error) {
	doc := starterDocument{
		Content:  opts.Content,
		DarkMode: opts.DarkMode,
		Plugins:  opts.Plugins,
		Theme:    starterTheme{Extend: map[string]map[string]string{}},
	}
	if doc.Plugins == nil {
		doc.Plugins = []string{}
	}
	if len(opts.Colors) > 0 {
		doc.Theme.Extend["colors"] = opts.Colors
	}
	return Encode(format, doc)
}

// WriteStarter writes a starter config to path, choosing the format from its
// extension. Existing files are only replaced when overwrite is set.
func WriteStarter(fs afero.Fs, path string, opts StarterOptions, overwrite bool) error {
	path = expandPath(path)

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists && !overwrite {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := RenderStarter(format, opts)
	if err != nil {
		return fmt.Errorf("failed to encode starter config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return afero.WriteFile(fs, path, data, 0644)
}
