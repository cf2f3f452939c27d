package template

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/tokens"
)

// Processor implements the TemplateProcessor interface
type Processor struct {
	fs afero.Fs
}

// NewProcessor creates a new template processor
func NewProcessor(fs afero.Fs) *Processor {
	return &Processor{fs: fs}
}

// LoadTemplate loads and parses a template file
func (p *Processor) LoadTemplate(path string) (*template.Template, error) {
	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return p.Parse(filepath.Base(path), string(content))
}

// Parse parses template text with the sprig and token helpers registered
func (p *Processor) Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Execute executes a template with the provided data
func (p *Processor) Execute(tmpl *template.Template, data interfaces.TemplateData) (string, error) {
	var buf strings.Builder

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// funcMap merges sprig with the token helpers. Token helpers win on name clashes.
func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()

	custom := template.FuncMap{
		"flatten": flattenFunc,
		"cssVar":  cssVarFunc,
		"scale":   scaleFunc,
	}
	for name, fn := range custom {
		funcs[name] = fn
	}

	return funcs
}

// flattenFunc exposes tokens.Flatten as sorted name/value pairs so range
// output is stable
func flattenFunc(scale interfaces.Scale) []tokenPair {
	flat := tokens.Flatten(scale)
	pairs := make([]tokenPair, 0, len(flat))
	for _, name := range tokens.SortedKeys(flat) {
		pairs = append(pairs, tokenPair{Name: name, Value: flat[name]})
	}
	return pairs
}

type tokenPair struct {
	Name  string
	Value string
}

// cssVarFunc builds a custom property name, e.g. cssVar "colors" "blue-500" -> --colors-blue-500
func cssVarFunc(section, name string) string {
	return "--" + kebab(section) + "-" + name
}

// scaleFunc picks a theme section, returning an empty scale when absent
func scaleFunc(section string, cfg *interfaces.ResolvedConfig) interfaces.Scale {
	if cfg == nil {
		return interfaces.Scale{}
	}
	if s, ok := cfg.Theme[section]; ok {
		return s
	}
	return interfaces.Scale{}
}

// kebab turns fontFamily into font-family
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
