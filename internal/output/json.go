package output

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats resources as JSON.
type JSONFormatter struct{}

// FormatPools formats storage pool rows as a JSON array.
func (f *JSONFormatter) FormatPools(pools []PoolRow) (string, error) {
	if len(pools) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(pools)
}

// FormatTemplates formats template catalog rows as a JSON array.
func (f *JSONFormatter) FormatTemplates(templates []TemplateRow) (string, error) {
	if len(templates) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(templates)
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
