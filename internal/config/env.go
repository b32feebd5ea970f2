package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HOTKEYS_"

// EnvLoader reads configuration overrides from the environment.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> config path
	kinds   map[string]reflect.Kind
}

// NewEnvLoader creates a loader for prefix, which should include the
// trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		kinds:   settingKinds(reflect.TypeOf(Config{}), ""),
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":  "logging.level",
		prefix + "LOG_FORMAT": "logging.format",
		prefix + "LOG_SINK":   "logging.sink",
		prefix + "LOG_FILE":   "logging.file",
		prefix + "SCOPE":      "engine.default_scope",
	}
}

// AddMapping adds an explicit environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load returns the overrides as a nested map. Variables with the prefix
// that name no known setting are skipped; values that cannot be converted
// to the setting's type are errors.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)

	env := os.Environ()
	sort.Strings(env)
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		kind, known := l.kinds[path]
		if !known {
			continue
		}

		v, err := parseValue(value, kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		setByPath(out, path, v)
	}
	return out, nil
}

// envToPath converts HOTKEYS_ENGINE_DEFAULT_SCOPE to engine.default_scope.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + setting
}

// settingKinds maps every dotted toml path under t to its value kind.
func settingKinds(t reflect.Type, prefix string) map[string]reflect.Kind {
	kinds := make(map[string]reflect.Kind)
	for i := range t.NumField() {
		f := t.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		path := tag
		if prefix != "" {
			path = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			for k, v := range settingKinds(f.Type, path) {
				kinds[k] = v
			}
			continue
		}
		kinds[path] = f.Type.Kind()
	}
	return kinds
}

// parseValue converts an environment string to the kind of its setting.
// Slices accept a JSON array or a comma-separated list.
func parseValue(s string, kind reflect.Kind) (any, error) {
	switch kind {
	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off", "":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", s)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return n, nil
	case reflect.Slice:
		if strings.HasPrefix(strings.TrimSpace(s), "[") {
			var items []any
			if err := json.Unmarshal([]byte(s), &items); err != nil {
				return nil, fmt.Errorf("invalid list %q: %w", s, err)
			}
			return items, nil
		}
		var items []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return s, nil
	}
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DeepMerge recursively merges src into dst. Values in src win; maps are
// merged and everything else is replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for k, sv := range src {
		sm, sIsMap := sv.(map[string]any)
		dm, dIsMap := dst[k].(map[string]any)
		if sIsMap && dIsMap {
			dst[k] = DeepMerge(dm, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}
