package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/plugins"
)

func darkMode(d interfaces.DarkMode) *interfaces.DarkMode { return &d }

func strPtr(s string) *string { return &s }

func newResolver() *Resolver {
	return New(plugins.Builtin(), interfaces.UnknownKeysReject)
}

func TestResolve_EndToEnd(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Theme: &interfaces.ThemeConfig{
				Extend: interfaces.Theme{
					"colors": interfaces.Scale{"purple": "#202232"},
				},
			},
			DarkMode: darkMode(interfaces.DarkModeMedia),
			Plugins:  []interfaces.PluginRef{{Name: "typography"}},
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	wantColors := Defaults().Theme["colors"]
	wantColors["purple"] = "#202232"
	if diff := cmp.Diff(wantColors, got.Theme["colors"]); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	if got.DarkMode != interfaces.DarkModeMedia {
		t.Errorf("DarkMode = %q, expected %q", got.DarkMode, interfaces.DarkModeMedia)
	}

	if len(got.Plugins) != 1 || got.Plugins[0].Name != "typography" {
		t.Fatalf("expected one typography descriptor, got %+v", got.Plugins)
	}
	if got.Plugins[0].Components[0] != "prose" {
		t.Errorf("expected first component 'prose', got %q", got.Plugins[0].Components[0])
	}
}

func TestResolve_DarkModeDefaultsToMedia(t *testing.T) {
	got, err := newResolver().Resolve(&interfaces.Document{}, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.DarkMode != interfaces.DarkModeMedia {
		t.Errorf("DarkMode = %q, expected %q", got.DarkMode, interfaces.DarkModeMedia)
	}
	if got.Separator != ":" {
		t.Errorf("Separator = %q, expected ':'", got.Separator)
	}
}

func TestResolve_DirectSectionReplacesDefault(t *testing.T) {
	fonts := interfaces.Scale{
		"sans": "Inter, Arial, sans-serif",
		"mono": "'JetBrains Mono', monospace",
	}
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Theme: &interfaces.ThemeConfig{
				Sections: interfaces.Theme{"fontFamily": fonts},
			},
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if diff := cmp.Diff(fonts, got.Theme["fontFamily"]); diff != "" {
		t.Errorf("fontFamily mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.Theme["fontFamily"]["serif"]; ok {
		t.Error("default serif stack leaked into a replaced fontFamily")
	}
	// Sections that were not touched keep their defaults
	if diff := cmp.Diff(Defaults().Theme["colors"], got.Theme["colors"]); diff != "" {
		t.Errorf("colors changed unexpectedly (-want +got):\n%s", diff)
	}
}

func TestResolve_ExtendOverridesLeafAndKeepsSiblings(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Theme: &interfaces.ThemeConfig{
				Extend: interfaces.Theme{
					"colors": interfaces.Scale{
						"blue": interfaces.Scale{"500": "#0000ff", "975": "#000010"},
					},
					"fontFamily": interfaces.Scale{
						"sans": "Inter, Arial, sans-serif",
					},
				},
			},
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	blue, ok := got.Theme["colors"]["blue"].(interfaces.Scale)
	if !ok {
		t.Fatalf("expected blue to stay a nested scale, got %T", got.Theme["colors"]["blue"])
	}
	if blue["500"] != "#0000ff" {
		t.Errorf("blue.500 = %v, expected override '#0000ff'", blue["500"])
	}
	if blue["975"] != "#000010" {
		t.Errorf("blue.975 = %v, expected added '#000010'", blue["975"])
	}
	if blue["50"] != "#eff6ff" {
		t.Errorf("blue.50 = %v, expected default to survive", blue["50"])
	}

	if got.Theme["fontFamily"]["sans"] != "Inter, Arial, sans-serif" {
		t.Errorf("fontFamily.sans = %v, expected authored string", got.Theme["fontFamily"]["sans"])
	}
	if _, ok := got.Theme["fontFamily"]["mono"]; !ok {
		t.Error("extend removed default fontFamily.mono")
	}
}

func TestResolve_ExtendAppliesOnTopOfReplacedSection(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Theme: &interfaces.ThemeConfig{
				Sections: interfaces.Theme{"colors": interfaces.Scale{"brand": "#111"}},
				Extend:   interfaces.Theme{"colors": interfaces.Scale{"accent": "#222"}},
			},
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	want := interfaces.Scale{"brand": "#111", "accent": "#222"}
	if diff := cmp.Diff(want, got.Theme["colors"]); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ExtendNewSection(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Theme: &interfaces.ThemeConfig{
				Extend: interfaces.Theme{"boxShadow": interfaces.Scale{"glow": "0 0 4px #fff"}},
			},
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Theme["boxShadow"]["glow"] != "0 0 4px #fff" {
		t.Errorf("expected new boxShadow section, got %v", got.Theme["boxShadow"])
	}
}

func TestResolve_ContentPassesThroughExactly(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{Content: []string{"./src/**/*.ts"}},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"./src/**/*.ts"}, got.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", got.Warnings)
	}
}

func TestResolve_ListsReplaceDefaults(t *testing.T) {
	defaults := Defaults()
	defaults.Content = []string{"./default/**/*.html"}
	defaults.Safelist = []string{"hidden"}

	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content:  []string{"./app/**/*.vue"},
			Safelist: []string{"block"},
		},
	}

	got, err := newResolver().Resolve(doc, defaults)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"./app/**/*.vue"}, got.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"block"}, got.Safelist); diff != "" {
		t.Errorf("safelist mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EmptyContentWarns(t *testing.T) {
	got, err := newResolver().Resolve(&interfaces.Document{}, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", got.Warnings)
	}
}

func TestResolve_ScalarOverrides(t *testing.T) {
	important := true
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content:   []string{"./src/**/*.html"},
			Prefix:    strPtr("tw-"),
			Important: &important,
			Separator: strPtr("_"),
			DarkMode:  darkMode(interfaces.DarkModeClass),
		},
	}

	got, err := newResolver().Resolve(doc, Defaults())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Prefix != "tw-" || !got.Important || got.Separator != "_" || got.DarkMode != interfaces.DarkModeClass {
		t.Errorf("scalar overrides not applied: %+v", got)
	}
}

func TestResolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		partial interfaces.PartialConfig
		path    string
	}{
		{
			name:    "malformed glob",
			partial: interfaces.PartialConfig{Content: []string{"./src/[a-"}},
			path:    "content[0]",
		},
		{
			name:    "empty glob",
			partial: interfaces.PartialConfig{Content: []string{"./src/**/*.ts", " "}},
			path:    "content[1]",
		},
		{
			name:    "unrecognized dark mode",
			partial: interfaces.PartialConfig{DarkMode: darkMode("selector")},
			path:    "darkMode",
		},
		{
			name:    "empty separator",
			partial: interfaces.PartialConfig{Separator: strPtr("")},
			path:    "separator",
		},
		{
			name:    "unknown plugin",
			partial: interfaces.PartialConfig{Plugins: []interfaces.PluginRef{{Name: "line-clamp"}}},
			path:    "plugins[0]",
		},
		{
			name: "theme section not a mapping",
			partial: interfaces.PartialConfig{Theme: &interfaces.ThemeConfig{
				Extend: interfaces.Theme{"colors": interfaces.Scale{"purple": nil}},
			}},
			path: "theme.extend.colors.purple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newResolver().Resolve(&interfaces.Document{Partial: tt.partial}, Defaults())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, interfaces.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			var resolveErr *interfaces.ResolveError
			if !errors.As(err, &resolveErr) {
				t.Fatalf("expected *ResolveError, got %T", err)
			}
			if resolveErr.Path != tt.path {
				t.Errorf("Path = %q, expected %q", resolveErr.Path, tt.path)
			}
		})
	}
}

func TestResolve_ReportsEveryValidationError(t *testing.T) {
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content:   []string{"[", "{a,b"},
			DarkMode:  darkMode("both"),
			Separator: strPtr(""),
		},
	}

	_, err := newResolver().Resolve(doc, Defaults())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 4 {
		t.Errorf("expected 4 validation errors, got %d: %v", n, err)
	}
}

type failingPlugin struct{}

func (f *failingPlugin) Name() string { return "broken" }

func (f *failingPlugin) Create(theme interfaces.Theme, options map[string]interface{}) (interfaces.PluginDescriptor, error) {
	return interfaces.PluginDescriptor{}, fmt.Errorf("missing peer dependency")
}

func TestResolve_PluginInitError(t *testing.T) {
	registry := plugins.NewRegistry()
	registry.MustRegister(&failingPlugin{})

	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content: []string{"./src/**/*.ts"},
			Plugins: []interfaces.PluginRef{{Name: "broken"}},
		},
	}

	_, err := New(registry, interfaces.UnknownKeysReject).Resolve(doc, Defaults())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, interfaces.ErrPluginInit) {
		t.Errorf("expected ErrPluginInit, got %v", err)
	}
	if errors.Is(err, interfaces.ErrValidation) {
		t.Errorf("plugin failure must not be classified as validation: %v", err)
	}
}

type panickingPlugin struct{}

func (p *panickingPlugin) Name() string { return "explodes" }

func (p *panickingPlugin) Create(theme interfaces.Theme, options map[string]interface{}) (interfaces.PluginDescriptor, error) {
	panic("theme section colors has the wrong shape")
}

func TestResolve_PluginPanicIsPluginInitError(t *testing.T) {
	registry := plugins.NewRegistry()
	registry.MustRegister(&panickingPlugin{})

	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content: []string{"./src/**/*.ts"},
			Plugins: []interfaces.PluginRef{{Name: "explodes"}},
		},
	}

	resolved, err := New(registry, interfaces.UnknownKeysReject).Resolve(doc, Defaults())
	if err == nil {
		t.Fatalf("expected error, got %+v", resolved)
	}
	if !errors.Is(err, interfaces.ErrPluginInit) {
		t.Errorf("expected ErrPluginInit, got %v", err)
	}

	var resolveErr *interfaces.ResolveError
	if !errors.As(err, &resolveErr) || resolveErr.Path != "plugins[0]" {
		t.Errorf("expected ResolveError at plugins[0], got %v", err)
	}
	if !strings.Contains(err.Error(), "wrong shape") {
		t.Errorf("error should carry the panic value, got %q", err.Error())
	}
}

func TestResolve_UnknownKeyPolicy(t *testing.T) {
	doc := &interfaces.Document{
		Partial:     interfaces.PartialConfig{Content: []string{"./src/**/*.ts"}},
		UnknownKeys: []string{"presets", "corePlugins"},
	}

	tests := []struct {
		policy       interfaces.UnknownKeyPolicy
		wantErr      bool
		wantWarnings int
	}{
		{interfaces.UnknownKeysReject, true, 0},
		{interfaces.UnknownKeysWarn, false, 2},
		{interfaces.UnknownKeysIgnore, false, 0},
		{"", true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			got, err := New(plugins.Builtin(), tt.policy).Resolve(doc, Defaults())
			if tt.wantErr {
				if !errors.Is(err, interfaces.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if len(got.Warnings) != tt.wantWarnings {
				t.Errorf("expected %d warnings, got %v", tt.wantWarnings, got.Warnings)
			}
		})
	}
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	defaults := Defaults()
	extend := interfaces.Theme{
		"colors": interfaces.Scale{"blue": interfaces.Scale{"500": "#0000ff"}},
	}
	doc := &interfaces.Document{
		Partial: interfaces.PartialConfig{
			Content: []string{"./src/**/*.ts"},
			Theme:   &interfaces.ThemeConfig{Extend: extend},
		},
	}

	got, err := newResolver().Resolve(doc, defaults)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if diff := cmp.Diff(Defaults(), defaults); diff != "" {
		t.Errorf("defaults were mutated (-want +got):\n%s", diff)
	}
	blue := extend["colors"]["blue"].(interfaces.Scale)
	if len(blue) != 1 {
		t.Errorf("authored extend was mutated: %v", blue)
	}

	// Mutating the result must not leak into a later resolution
	got.Theme["colors"]["purple"] = "changed"
	again, err := newResolver().Resolve(doc, defaults)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if again.Theme["colors"]["purple"] == "changed" {
		t.Error("resolved theme shares memory with the defaults")
	}
}

func TestDefaults_ReturnsIndependentCopies(t *testing.T) {
	first := Defaults()
	first.Theme["colors"]["black"] = "#111"
	first.Content = append(first.Content, "x")

	second := Defaults()
	if second.Theme["colors"]["black"] != "#000" {
		t.Errorf("Defaults() returned shared theme: black = %v", second.Theme["colors"]["black"])
	}
	if len(second.Content) != 0 {
		t.Errorf("Defaults() returned shared content: %v", second.Content)
	}
}
