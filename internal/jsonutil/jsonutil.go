// Package jsonutil provides small helpers around encoding/json that wrap
// failures with a caller-supplied context string.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals data into v and wraps any error with the
// context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalIndentWithContext marshals v with two-space indentation and wraps
// any error with the context message.
func MarshalIndentWithContext(v any, context string) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return b, nil
}
