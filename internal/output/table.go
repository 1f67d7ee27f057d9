package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/kiln/internal/storage"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatPools formats storage pool rows as a table.
func (f *TableFormatter) FormatPools(pools []PoolRow) (string, error) {
	if len(pools) == 0 {
		return "No storage pools found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tKIND\tSTATUS\tTOTAL\tUSED\tAVAILABLE")
	}

	for _, p := range pools {
		status := "inactive"
		if p.Active {
			status = "active"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Kind,
			status,
			storage.FormatIEC(p.TotalBytes),
			storage.FormatIEC(p.UsedBytes),
			storage.FormatIEC(p.AvailableBytes),
		)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to format table: %w", err)
	}
	return buf.String(), nil
}

// FormatTemplates formats template catalog rows as a table.
func (f *TableFormatter) FormatTemplates(templates []TemplateRow) (string, error) {
	if len(templates) == 0 {
		return "No templates found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tDOWNLOADED")
	}

	for _, t := range templates {
		downloaded := "no"
		if t.Downloaded {
			downloaded = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", t.Name, downloaded)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to format table: %w", err)
	}
	return buf.String(), nil
}
