package config

import (
	"os"
	"regexp"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandEnv replaces $VAR and ${VAR} references with their values.
// References to unset variables are left exactly as written.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return ref
	})
}

func expandMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = expandValue(value)
	}
	return out
}

func expandValue(value any) any {
	switch val := value.(type) {
	case string:
		return ExpandEnv(val)
	case map[string]any:
		return expandMap(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = expandValue(item)
		}
		return items
	default:
		return value
	}
}
