// Package normalization maps loosely spelled declaration values onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string // sorted, cached for error messages
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// Keys are cleaned the same way as input (trimmed, lower-cased).
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the enum for raw, or the default when raw is not recognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[clean(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError returns an error listing the valid options when raw is not recognized.
// Empty input yields the default value.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[cleaned]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns all valid normalized keys.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

// Result is the outcome of NormalizeField: the value plus a warning when the
// spelling in the file differed from the canonical one.
type Result[T comparable] struct {
	Value   T
	Warning string
}

// NormalizeField normalizes raw for the named field and reports spelling changes.
func (n *Normalizer[T]) NormalizeField(field, raw string) (Result[T], error) {
	value, err := n.NormalizeWithError(raw)
	if err != nil {
		return Result[T]{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	res := Result[T]{Value: value}
	if raw != "" && clean(raw) != raw {
		res.Warning = fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, clean(raw))
	}
	return res, nil
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
