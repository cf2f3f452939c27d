package plugins

import (
	"fmt"
	"regexp"

	"github.com/spf13/cast"
	"stylecfg/internal/interfaces"
)

var classNamePattern = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

var typographySizes = []string{"sm", "lg", "xl", "2xl"}

// Typography contributes the prose component classes
type Typography struct{}

func (t *Typography) Name() string { return "typography" }

// Create accepts a "className" option that renames the base class
func (t *Typography) Create(theme interfaces.Theme, options map[string]interface{}) (interfaces.PluginDescriptor, error) {
	className := "prose"
	if raw, ok := options["className"]; ok {
		name, err := cast.ToStringE(raw)
		if err != nil {
			return interfaces.PluginDescriptor{}, fmt.Errorf("className: %w", err)
		}
		if !classNamePattern.MatchString(name) {
			return interfaces.PluginDescriptor{}, fmt.Errorf("className %q is not a valid CSS class name", name)
		}
		className = name
	}

	components := []string{className}
	for _, size := range typographySizes {
		components = append(components, className+"-"+size)
	}
	components = append(components, className+"-invert")

	return interfaces.PluginDescriptor{
		Name:       t.Name(),
		Components: components,
		Options:    map[string]interface{}{"className": className},
		ThemeKeys:  presentKeys(theme, "colors", "fontFamily"),
	}, nil
}

// presentKeys returns the requested theme sections that exist, in the given order
func presentKeys(theme interfaces.Theme, keys ...string) []string {
	present := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := theme[key]; ok {
			present = append(present, key)
		}
	}
	return present
}
