// Package output provides formatters for displaying host inventory in
// various formats (table, YAML, JSON).
package output

import (
	"fmt"

	"github.com/jbweber/kiln/internal/pve"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is human-readable table output (default).
	FormatTable Format = "table"
	// FormatYAML is YAML output.
	FormatYAML Format = "yaml"
	// FormatJSON is JSON output.
	FormatJSON Format = "json"
)

// PoolRow is one storage pool status entry.
type PoolRow struct {
	Name           string `json:"name" yaml:"name"`
	Kind           string `json:"kind" yaml:"kind"`
	Active         bool   `json:"active" yaml:"active"`
	TotalBytes     uint64 `json:"total_bytes" yaml:"total_bytes"`
	UsedBytes      uint64 `json:"used_bytes" yaml:"used_bytes"`
	AvailableBytes uint64 `json:"available_bytes" yaml:"available_bytes"`
}

// PoolRows converts host-reported pools into display rows.
func PoolRows(pools []pve.Pool) []PoolRow {
	rows := make([]PoolRow, 0, len(pools))
	for _, p := range pools {
		rows = append(rows, PoolRow{
			Name:           p.Name,
			Kind:           p.Kind,
			Active:         p.Active,
			TotalBytes:     p.Total,
			UsedBytes:      p.Used,
			AvailableBytes: p.Available,
		})
	}
	return rows
}

// TemplateRow is one template catalog entry with its local download state.
type TemplateRow struct {
	Name       string `json:"name" yaml:"name"`
	Downloaded bool   `json:"downloaded" yaml:"downloaded"`
}

// Formatter formats host inventory for output.
type Formatter interface {
	// FormatPools formats storage pool status rows.
	FormatPools(pools []PoolRow) (string, error)

	// FormatTemplates formats template catalog entries.
	FormatTemplates(templates []TemplateRow) (string, error)
}

// Options configures formatter behavior.
type Options struct {
	// Format is the output format (table, yaml, json).
	Format Format

	// NoHeaders omits the header row in table output.
	NoHeaders bool
}

// NewFormatter creates a formatter for the given options.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable, "":
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if the given format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", format)
	}
}
