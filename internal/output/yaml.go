package output

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

// FormatPools formats storage pool rows as a YAML list.
func (f *YAMLFormatter) FormatPools(pools []PoolRow) (string, error) {
	if len(pools) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(pools)
}

// FormatTemplates formats template catalog rows as a YAML list.
func (f *YAMLFormatter) FormatTemplates(templates []TemplateRow) (string, error) {
	if len(templates) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(templates)
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return string(data), nil
}
