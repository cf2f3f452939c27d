// Package tokens normalizes and flattens design-token scales.
//
// Decoded documents hand us whatever the format parser produced:
// map[string]interface{}, []interface{}, numbers and bools. Normalize turns
// that into the closed set of shapes a Scale may hold (string, []string and
// nested Scale) so merging and rendering never see anything else.
package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"stylecfg/internal/interfaces"
)

// DefaultKey names the token that a nested scale renders under its parent name
const DefaultKey = "DEFAULT"

// NormalizeTheme converts a decoded theme mapping into a Theme
func NormalizeTheme(raw map[string]interface{}, path string) (interfaces.Theme, error) {
	if raw == nil {
		return nil, nil
	}

	theme := make(interfaces.Theme, len(raw))
	for section, value := range raw {
		sectionPath := join(path, section)
		m, ok := asMapping(value)
		if !ok {
			return nil, interfaces.NewResolveError(interfaces.ErrValidation, sectionPath,
				"theme section must be a mapping, got %T", value)
		}
		scale, err := NormalizeScale(m, sectionPath)
		if err != nil {
			return nil, err
		}
		theme[section] = scale
	}
	return theme, nil
}

// NormalizeScale converts a decoded token mapping into a Scale
func NormalizeScale(raw map[string]interface{}, path string) (interfaces.Scale, error) {
	scale := make(interfaces.Scale, len(raw))
	for name, value := range raw {
		v, err := normalizeValue(value, join(path, name))
		if err != nil {
			return nil, err
		}
		scale[name] = v
	}
	return scale, nil
}

func normalizeValue(value interface{}, path string) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, path, "token value must not be null")
	case string:
		return v, nil
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		list := make([]string, 0, len(v))
		for i, item := range v {
			if _, nested := asMapping(item); nested {
				return nil, interfaces.NewResolveError(interfaces.ErrValidation,
					fmt.Sprintf("%s[%d]", path, i), "list entries must be scalars, got %T", item)
			}
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, interfaces.NewResolveError(interfaces.ErrValidation,
					fmt.Sprintf("%s[%d]", path, i), "list entries must be scalars, got %T", item)
			}
			list = append(list, s)
		}
		return list, nil
	}

	if m, ok := asMapping(value); ok {
		return NormalizeScale(m, path)
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, interfaces.NewResolveError(interfaces.ErrValidation, path,
			"unsupported token value of type %T", value)
	}
	return s, nil
}

// Flatten renders a scale into class-name suffixes, joining nested names with
// "-" and collapsing DEFAULT into its parent. Lists are joined with ", ".
func Flatten(scale interfaces.Scale) map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", scale)
	return out
}

func flattenInto(out map[string]string, prefix string, scale interfaces.Scale) {
	for name, value := range scale {
		key := prefix
		if name != DefaultKey {
			key = joinName(prefix, name)
		}
		switch v := value.(type) {
		case interfaces.Scale:
			flattenInto(out, key, v)
		case []string:
			out[key] = strings.Join(v, ", ")
		default:
			out[key] = cast.ToString(v)
		}
	}
}

// SortedKeys returns the flattened names in a stable order
func SortedKeys(flat map[string]string) []string {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asMapping accepts the mapping shapes produced by the YAML, TOML and JSON
// decoders as well as hand-built scales
func asMapping(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case interfaces.Scale:
		return map[string]interface{}(v), true
	case map[string]interface{}:
		return v, true
	case map[string]string:
		m := make(map[string]interface{}, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m, true
	case map[interface{}]interface{}:
		m, err := cast.ToStringMapE(v)
		return m, err == nil
	}
	return nil, false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}
