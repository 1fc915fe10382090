package graph

import "fmt"

// ParseKeyValues turns alternating keys and values into a map.
//
// Keys must be non-empty strings and values must not be nil. A later occurrence of a key
// overwrites an earlier one.
func ParseKeyValues(keyValues ...any) (map[string]any, error) {
	if len(keyValues)%2 != 0 {
		return nil, ErrOddKeyValues
	}

	properties := make(map[string]any, len(keyValues)/2)

	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: got %T at position %d", ErrKeyValueKeyNotText, keyValues[i], i)
		}

		if err := ValidateProperty(key, keyValues[i+1]); err != nil {
			return nil, err
		}

		properties[key] = keyValues[i+1]
	}

	return properties, nil
}

// ValidateProperty checks a single key/value pair.
func ValidateProperty(key string, value any) error {
	if key == "" {
		return ErrPropertyKeyEmpty
	}

	if value == nil {
		return fmt.Errorf("%w: key %q", ErrPropertyValueNil, key)
	}

	return nil
}

// HasKey reports whether key occurs in key position of keyValues.
func HasKey(key string, keyValues ...any) bool {
	for i := 0; i+1 < len(keyValues); i += 2 {
		if k, ok := keyValues[i].(string); ok && k == key {
			return true
		}
	}

	return false
}
