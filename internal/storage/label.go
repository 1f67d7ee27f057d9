package storage

import (
	"fmt"

	"github.com/jbweber/kiln/internal/pve"
)

// Choice is one selectable pool in the interactive menu.
type Choice struct {
	Tag   string // pool name, returned on selection
	Label string // fixed-width descriptive column
}

const (
	// typeColumnWidth pads the pool kind so the free-space column lines up
	// across rows.
	typeColumnWidth = 10

	// menuWidthOffset is added past the longest label so the prompt
	// renderer never truncates a row.
	menuWidthOffset = 2
)

// PoolLabel renders the fixed-width menu column for one pool.
func PoolLabel(p pve.Pool) string {
	return fmt.Sprintf("Type: %-*s Free: %10s", typeColumnWidth, p.Kind, FormatIEC(p.Available))
}

// Menu builds the selectable pool list and the menu width: the longest
// label plus a fixed offset.
func Menu(pools []pve.Pool) ([]Choice, int) {
	choices := make([]Choice, 0, len(pools))
	width := 0

	for _, p := range pools {
		c := Choice{Tag: p.Name, Label: PoolLabel(p)}
		if len(c.Label) > width {
			width = len(c.Label)
		}
		choices = append(choices, c)
	}

	return choices, width + menuWidthOffset
}

// FormatIEC renders a byte count with binary-unit suffixes and two
// decimals, e.g. 53687091200 -> "50.00GB".
func FormatIEC(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
