package application

import (
	"fmt"
	"strings"

	"dsaudit/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "documentKey" -> "document key")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"documentKey": "document key",
		"selection":   "selection",
		"kind":        "ignore kind",
		"key":         "ignore key",
		"nodeID":      "node ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateIgnoreKey parses kind and checks key against it. Orphan keys
// must be composite "<node-id>|<component-id>" keys.
func ValidateIgnoreKey(kind, key string) (domain.IgnoreKind, error) {
	k, ok := domain.ParseIgnoreKind(kind)
	if !ok {
		return "", &ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("expected component, instance or orphan, got: %s", kind),
		}
	}
	if err := ValidateRequired("key", key); err != nil {
		return "", err
	}
	if k == domain.IgnoreOrphan {
		if _, err := domain.ParseOrphanKey(key); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidIgnoreKey, err)
		}
	}
	return k, nil
}
