package config

import (
	"fmt"
	"sort"
	"strings"
)

// Entries is a flattened config: dotted key path to every value found at that path,
// in document order. List items contribute to their parent's path, so
// "impl: {indents: [{service: a}, {service: b}]}" yields
// "impl.indents.service" = [a b].
type Entries map[string][]string

// First returns the first non-blank value stored under key
func (e Entries) First(key string) (string, bool) {
	for _, value := range e[key] {
		if strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}

// FirstOr returns First(key) or fallback
func (e Entries) FirstOr(key, fallback string) string {
	if value, ok := e.First(key); ok {
		return value
	}
	return fallback
}

// All returns every distinct non-blank value stored under key
func (e Entries) All(key string) []string {
	return uniqueNonBlank(e[key])
}

// Keys returns the sorted key paths
func (e Entries) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e Entries) add(path, value string) {
	if path == "" {
		return
	}
	e[path] = append(e[path], value)
}

// flatten walks a decoded YAML or TOML document
func flatten(entries Entries, path string, node any) {
	switch v := node.(type) {
	case nil:
		return
	case map[string]any:
		for _, key := range sortedKeys(v) {
			flatten(entries, join(path, key), v[key])
		}
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, value := range v {
			converted[fmt.Sprint(key)] = value
		}
		flatten(entries, path, converted)
	case []any:
		for _, item := range v {
			flatten(entries, path, item)
		}
	case []map[string]any:
		for _, item := range v {
			flatten(entries, path, item)
		}
	case string:
		entries.add(path, strings.TrimSpace(v))
	default:
		entries.add(path, fmt.Sprint(v))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func join(parent, key string) string {
	key = strings.TrimSpace(key)
	if parent == "" {
		return key
	}
	if key == "" {
		return parent
	}
	return parent + "." + key
}
