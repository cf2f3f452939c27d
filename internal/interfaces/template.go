package interfaces

import (
	"text/template"
	"time"
)

// TemplateData contains all variables available to output templates
type TemplateData struct {
	Config *ResolvedConfig   `json:"config"`
	Source string            `json:"source"`
	Now    time.Time         `json:"now"`
	Env    map[string]string `json:"env"`
}

// TemplateProcessor handles template loading and execution
type TemplateProcessor interface {
	// LoadTemplate loads a template from the specified path
	LoadTemplate(path string) (*template.Template, error)

	// Execute executes a template with the provided data
	Execute(tmpl *template.Template, data TemplateData) (string, error)
}
