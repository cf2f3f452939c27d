package resolver

import (
	"sync"

	"github.com/mitchellh/copystructure"
	"stylecfg/internal/interfaces"
)

var (
	defaultsOnce sync.Once
	defaults     *interfaces.BaseConfig
)

// Defaults returns a deep copy of the built-in configuration. The shared
// instance is built once per process and never handed out directly.
func Defaults() *interfaces.BaseConfig {
	defaultsOnce.Do(func() {
		defaults = buildDefaults()
	})
	return copystructure.Must(copystructure.Copy(defaults)).(*interfaces.BaseConfig)
}

func buildDefaults() *interfaces.BaseConfig {
	return &interfaces.BaseConfig{
		Content:   []string{},
		Theme:     defaultTheme(),
		DarkMode:  interfaces.DarkModeMedia,
		Plugins:   []interfaces.PluginRef{},
		Prefix:    "",
		Important: false,
		Separator: ":",
		Safelist:  []string{},
	}
}

func defaultTheme() interfaces.Theme {
	return interfaces.Theme{
		"screens": interfaces.Scale{
			"sm":  "640px",
			"md":  "768px",
			"lg":  "1024px",
			"xl":  "1280px",
			"2xl": "1536px",
		},
		"colors": interfaces.Scale{
			"inherit":     "inherit",
			"current":     "currentColor",
			"transparent": "transparent",
			"black":       "#000",
			"white":       "#fff",
			"slate":       shades("#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a", "#020617"),
			"gray":        shades("#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"),
			"red":         shades("#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"),
			"amber":       shades("#fffbeb", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f", "#451a03"),
			"green":       shades("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"),
			"blue":        shades("#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"),
			"indigo":      shades("#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81", "#1e1b4b"),
			"purple":      shades("#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87", "#3b0764"),
		},
		"fontFamily": interfaces.Scale{
			"sans":  []string{"ui-sans-serif", "system-ui", "sans-serif", "\"Apple Color Emoji\"", "\"Segoe UI Emoji\""},
			"serif": []string{"ui-serif", "Georgia", "Cambria", "\"Times New Roman\"", "Times", "serif"},
			"mono":  []string{"ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas", "monospace"},
		},
		"fontSize": interfaces.Scale{
			"xs":   []string{"0.75rem", "1rem"},
			"sm":   []string{"0.875rem", "1.25rem"},
			"base": []string{"1rem", "1.5rem"},
			"lg":   []string{"1.125rem", "1.75rem"},
			"xl":   []string{"1.25rem", "1.75rem"},
			"2xl":  []string{"1.5rem", "2rem"},
		},
		"spacing": interfaces.Scale{
			"px":  "1px",
			"0":   "0px",
			"0.5": "0.125rem",
			"1":   "0.25rem",
			"2":   "0.5rem",
			"3":   "0.75rem",
			"4":   "1rem",
			"6":   "1.5rem",
			"8":   "2rem",
			"12":  "3rem",
			"16":  "4rem",
		},
		"borderRadius": interfaces.Scale{
			"none":    "0px",
			"sm":      "0.125rem",
			"DEFAULT": "0.25rem",
			"md":      "0.375rem",
			"lg":      "0.5rem",
			"full":    "9999px",
		},
		"aspectRatio": interfaces.Scale{
			"auto":   "auto",
			"square": "1 / 1",
			"video":  "16 / 9",
		},
	}
}

// shades builds the 50..950 ladder used by every default palette
func shades(values ...string) interfaces.Scale {
	steps := []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}
	scale := make(interfaces.Scale, len(steps))
	for i, step := range steps {
		scale[step] = values[i]
	}
	return scale
}
