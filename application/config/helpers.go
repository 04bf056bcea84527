// Package config reads individual DNA properties without a schema. Zomes
// that want a typed view of the whole map use ParseProperties in the root
// package instead; these accessors cover the one-off lookup.
package config

import (
	"fmt"

	"github.com/zomekit-dev/zome-sdk/domain/errors"
)

// Properties is the key-value configuration a DNA carries, as delivered by
// the dna_info capability.
type Properties = map[string]any

// GetString reads a string property. The second return is false when the
// key is absent or holds a non-string value.
func GetString(props Properties, key string) (string, bool) {
	s, ok := props[key].(string)
	return s, ok
}

// GetInt reads an integer property. The wire codec sizes integers to fit
// their value, so a property can arrive at any integer width; JSON-sourced
// maps carry float64. All of them read back as int here.
func GetInt(props Properties, key string) (int, bool) {
	switch n := props[key].(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// GetBool reads a boolean property. The second return is false when the
// key is absent or holds a non-bool value.
func GetBool(props Properties, key string) (bool, bool) {
	b, ok := props[key].(bool)
	return b, ok
}

// MustGetString reads a string property the zome cannot run without,
// returning a ValidationError when it is missing or mistyped.
func MustGetString(props Properties, key string) (string, error) {
	s, ok := GetString(props, key)
	if !ok {
		return "", &errors.ValidationError{
			Field:  key,
			Reason: fmt.Sprintf("required string property %q is missing or not a string", key),
		}
	}
	return s, nil
}

// GetStringDefault reads a string property, falling back to defaultValue.
func GetStringDefault(props Properties, key, defaultValue string) string {
	if s, ok := GetString(props, key); ok {
		return s
	}
	return defaultValue
}

// GetIntDefault reads an integer property, falling back to defaultValue.
func GetIntDefault(props Properties, key string, defaultValue int) int {
	if i, ok := GetInt(props, key); ok {
		return i
	}
	return defaultValue
}

// GetBoolDefault reads a boolean property, falling back to defaultValue.
func GetBoolDefault(props Properties, key string, defaultValue bool) bool {
	if b, ok := GetBool(props, key); ok {
		return b
	}
	return defaultValue
}
