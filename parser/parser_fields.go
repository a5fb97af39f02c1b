package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// orderedFieldsJSONArray extracts column names in first-seen order from a
// JSON array of objects. json.Unmarshal into maps loses key order, so a
// second token-level pass over the source recovers it; the converter relies
// on this order for CSV headers and round-trip output.
func orderedFieldsJSONArray(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading root token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("root is not an array")
	}

	fields := make([]string, 0)
	seen := make(map[string]bool)
	for dec.More() {
		if err := collectObjectFields(dec, &fields, seen); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// collectObjectFields consumes one JSON object from dec, appending each key
// not already in seen to fields in encounter order.
func collectObjectFields(dec *json.Decoder, fields *[]string, seen map[string]bool) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading object token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("element is not an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("object key is not a string")
		}
		if !seen[key] {
			seen[key] = true
			*fields = append(*fields, key)
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading object end: %w", err)
	}
	return nil
}

// skipValue consumes one JSON value from dec, descending through nested
// objects and arrays without retaining them.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading value: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading nested value: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// sortedFields returns the union of all record keys in sorted order.
// Used as a deterministic fallback when source order cannot be recovered.
func sortedFields(records []Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			seen[key] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for key := range seen {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}
