package plugins

import (
	"stylecfg/internal/interfaces"
	"stylecfg/internal/tokens"
)

// AspectRatio emits aspect-* utilities for every aspectRatio token
type AspectRatio struct{}

func (a *AspectRatio) Name() string { return "aspect-ratio" }

func (a *AspectRatio) Create(theme interfaces.Theme, options map[string]interface{}) (interfaces.PluginDescriptor, error) {
	flat := tokens.Flatten(theme["aspectRatio"])

	components := make([]string, 0, len(flat))
	for _, name := range tokens.SortedKeys(flat) {
		components = append(components, "aspect-"+name)
	}

	return interfaces.PluginDescriptor{
		Name:       a.Name(),
		Components: components,
		Options:    map[string]interface{}{},
		ThemeKeys:  presentKeys(theme, "aspectRatio"),
	}, nil
}
