package plugins

import (
	"fmt"

	"github.com/spf13/cast"
	"stylecfg/internal/interfaces"
)

var formClasses = []string{
	"form-input",
	"form-textarea",
	"form-select",
	"form-multiselect",
	"form-checkbox",
	"form-radio",
}

// Forms resets form elements. With strategy "base" it only restyles
// elements, with "class" it only emits the form-* classes, and by default
// it does both.
type Forms struct{}

func (f *Forms) Name() string { return "forms" }

func (f *Forms) Create(theme interfaces.Theme, options map[string]interface{}) (interfaces.PluginDescriptor, error) {
	strategy := ""
	if raw, ok := options["strategy"]; ok {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return interfaces.PluginDescriptor{}, fmt.Errorf("strategy: %w", err)
		}
		strategy = s
	}

	var components []string
	switch strategy {
	case "", "class":
		components = append(components, formClasses...)
	case "base":
		components = []string{}
	default:
		return interfaces.PluginDescriptor{}, fmt.Errorf("unknown strategy %q (must be 'base' or 'class')", strategy)
	}

	opts := map[string]interface{}{}
	if strategy != "" {
		opts["strategy"] = strategy
	}

	return interfaces.PluginDescriptor{
		Name:       f.Name(),
		Components: components,
		Options:    opts,
		ThemeKeys:  presentKeys(theme, "colors", "borderRadius", "spacing"),
	}, nil
}
