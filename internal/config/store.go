package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Store is a nested key-value tree addressed by dotted paths such as
// "models.random_forest.n_estimators".
type Store struct {
	values map[string]interface{}
}

// NewStore wraps a nested map. Nested maps decoded by yaml.v2 are normalised
// to string keys.
func NewStore(values map[string]interface{}) *Store {
	s := &Store{values: make(map[string]interface{}, len(values))}
	for k, v := range values {
		s.values[k] = normalize(v)
	}
	return s
}

// DefaultStore returns the built-in settings used when no file overrides them.
func DefaultStore() *Store {
	return NewStore(map[string]interface{}{
		"data": map[string]interface{}{
			"test_size":       0.2,
			"random_state":    42,
			"validation_size": 0.2,
		},
		"models": map[string]interface{}{
			"random_forest": map[string]interface{}{
				"n_estimators": 100,
				"random_state": 42,
			},
			"xgboost": map[string]interface{}{
				"n_estimators":  100,
				"random_state":  42,
				"learning_rate": 0.1,
			},
		},
		"evaluation": map[string]interface{}{
			"cv_folds": 5,
			"scoring":  []interface{}{"neg_mean_squared_error", "r2"},
		},
	})
}

// ParseStore decodes a YAML document into a Store.
func ParseStore(data []byte) (*Store, error) {
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return NewStore(raw), nil
}

// Merge returns a new Store holding s with the top-level keys of overlay
// replacing those of s. The merge is shallow: an overlay section replaces the
// whole default section of the same name.
func (s *Store) Merge(overlay *Store) *Store {
	merged := make(map[string]interface{})
	if s != nil {
		for k, v := range s.values {
			merged[k] = v
		}
	}
	if overlay != nil {
		for k, v := range overlay.values {
			merged[k] = v
		}
	}
	return &Store{values: merged}
}

// Get walks the dotted key and returns the value found, or def when any
// segment is missing or a non-map value is reached before the last segment.
func (s *Store) Get(key string, def interface{}) interface{} {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

// Has reports whether the dotted key resolves to a value.
func (s *Store) Has(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *Store) lookup(key string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	var value interface{} = s.values
	for _, k := range strings.Split(key, ".") {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if value, ok = m[k]; !ok {
			return nil, false
		}
	}
	return value, true
}

// Float returns the value at key as a float64, or def when it is absent or
// not numeric.
func (s *Store) Float(key string, def float64) float64 {
	switch v := s.Get(key, nil).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Int returns the value at key as an int, or def when it is absent or not an
// integer.
func (s *Store) Int(key string, def int) int {
	switch v := s.Get(key, nil).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// String returns the value at key formatted as a string, or def when absent.
func (s *Store) String(key string, def string) string {
	v := s.Get(key, nil)
	if v == nil {
		return def
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Strings returns a list value as strings, or def when absent or not a list.
func (s *Store) Strings(key string, def []string) []string {
	list, ok := s.Get(key, nil).([]interface{})
	if !ok {
		return def
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Keys returns the sorted top-level section names.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
