package template

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"stylecfg/internal/interfaces"
)

func testConfig() *interfaces.ResolvedConfig {
	return &interfaces.ResolvedConfig{
		Content:  []string{"./src/**/*.ts"},
		DarkMode: interfaces.DarkModeMedia,
		Theme: interfaces.Theme{
			"colors": interfaces.Scale{
				"purple": "#202232",
				"blue":   interfaces.Scale{"500": "#3b82f6", "DEFAULT": "#3b82f6"},
			},
			"fontFamily": interfaces.Scale{
				"sans": []string{"Inter", "Arial", "sans-serif"},
			},
		},
	}
}

func TestProcessor_LoadTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/templates/vars.css.tmpl", []byte(":root {}"), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewProcessor(fs)

	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{name: "existing template", path: "/templates/vars.css.tmpl"},
		{name: "missing template", path: "/templates/missing.tmpl", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := processor.LoadTemplate(tt.path)
			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error for %s, got nil", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name() != "vars.css.tmpl" {
				t.Errorf("Expected template name 'vars.css.tmpl', got %s", tmpl.Name())
			}
		})
	}
}

func TestProcessor_Parse_SyntaxError(t *testing.T) {
	if _, err := NewProcessor(afero.NewMemMapFs()).Parse("bad", "{{ .Config "); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestProcessor_Execute_CSSVariables(t *testing.T) {
	processor := NewProcessor(afero.NewMemMapFs())

	text := `:root {
{{- range flatten (scale "colors" .Config) }}
  {{ cssVar "colors" .Name }}: {{ .Value }};
{{- end }}
  --font-sans: {{ range flatten (scale "fontFamily" .Config) }}{{ .Value }}{{ end }};
}`
	tmpl, err := processor.Parse("vars", text)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	got, err := processor.Execute(tmpl, interfaces.TemplateData{Config: testConfig(), Now: time.Now()})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	for _, want := range []string{
		"--colors-blue: #3b82f6;",
		"--colors-blue-500: #3b82f6;",
		"--colors-purple: #202232;",
		"--font-sans: Inter, Arial, sans-serif;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// Sorted flatten output keeps blue before purple
	if strings.Index(got, "--colors-blue:") > strings.Index(got, "--colors-purple:") {
		t.Errorf("expected sorted output, got:\n%s", got)
	}
}

func TestProcessor_Execute_SprigHelpers(t *testing.T) {
	processor := NewProcessor(afero.NewMemMapFs())

	tmpl, err := processor.Parse("sprig", `{{ .Config.DarkMode | toString | upper }} {{ .Config.Content | join "," }}`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	got, err := processor.Execute(tmpl, interfaces.TemplateData{Config: testConfig()})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if got != "MEDIA ./src/**/*.ts" {
		t.Errorf("Execute() = %q, expected %q", got, "MEDIA ./src/**/*.ts")
	}
}

func TestScaleFunc_MissingSection(t *testing.T) {
	if got := scaleFunc("boxShadow", testConfig()); len(got) != 0 {
		t.Errorf("expected empty scale, got %v", got)
	}
	if got := scaleFunc("colors", nil); len(got) != 0 {
		t.Errorf("expected empty scale for nil config, got %v", got)
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"fontFamily":   "font-family",
		"colors":       "colors",
		"borderRadius": "border-radius",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) = %q, expected %q", in, got, want)
		}
	}
}
