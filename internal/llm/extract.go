package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("no JSON found in response")

// ExtractJSONArray returns the text between the first '[' and the last ']'.
// Models often wrap JSON in prose or code fences; this is the tolerated shape.
func ExtractJSONArray(s string) (string, error) {
	return between(s, '[', ']')
}

// ExtractJSONObject returns the text between the first '{' and the last '}'.
func ExtractJSONObject(s string) (string, error) {
	return between(s, '{', '}')
}

// DecodeObject extracts the outermost object from s and unmarshals it into v.
func DecodeObject(s string, v any) error {
	raw, err := ExtractJSONObject(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	return nil
}

// DecodeArray extracts the outermost array from s and unmarshals it into v.
func DecodeArray(s string, v any) error {
	raw, err := ExtractJSONArray(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode array: %w", err)
	}
	return nil
}

func between(s string, open, close byte) (string, error) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}
