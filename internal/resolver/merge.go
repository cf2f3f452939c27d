package resolver

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/mitchellh/copystructure"
	"stylecfg/internal/interfaces"
	"stylecfg/internal/tokens"
)

// mergeTheme applies an authored theme block to the base theme.
// Sections replace the matching base section wholesale, then Extend is
// unioned on top; leaf values from the authored block win on collision.
// The base theme is not modified.
func mergeTheme(base interfaces.Theme, authored *interfaces.ThemeConfig) (interfaces.Theme, error) {
	merged, err := cloneTheme(base)
	if err != nil {
		return nil, err
	}
	if authored == nil {
		return merged, nil
	}

	sections, err := normalizedCopy(authored.Sections, "theme")
	if err != nil {
		return nil, err
	}
	for name, scale := range sections {
		merged[name] = scale
	}

	extend, err := normalizedCopy(authored.Extend, "theme.extend")
	if err != nil {
		return nil, err
	}
	for name, scale := range extend {
		target := merged[name]
		if target == nil {
			target = interfaces.Scale{}
		}
		if err := mergo.Merge(&target, scale, mergo.WithOverride); err != nil {
			return nil, interfaces.NewResolveError(interfaces.ErrValidation, "theme.extend."+name,
				"cannot merge into default scale: %v", err)
		}
		merged[name] = target
	}

	return merged, nil
}

// normalizedCopy detaches an authored theme from the caller's maps and
// brings every value into canonical scale shape, so merging never writes
// into memory the caller still holds
func normalizedCopy(theme interfaces.Theme, path string) (interfaces.Theme, error) {
	if len(theme) == 0 {
		return nil, nil
	}
	raw := make(map[string]interface{}, len(theme))
	for name, scale := range theme {
		raw[name] = scale
	}
	normalized, err := tokens.NormalizeTheme(raw, path)
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

func cloneTheme(theme interfaces.Theme) (interfaces.Theme, error) {
	if theme == nil {
		return interfaces.Theme{}, nil
	}
	copied, err := copystructure.Copy(theme)
	if err != nil {
		return nil, fmt.Errorf("failed to copy theme: %w", err)
	}
	return copied.(interfaces.Theme), nil
}
