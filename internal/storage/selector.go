package storage

import (
	"errors"
	"fmt"

	"github.com/jbweber/kiln/internal/pve"
)

var (
	// ErrNoEligibleStorage means no active pool can hold a container root
	// filesystem.
	ErrNoEligibleStorage = errors.New("no storage pool available for container root filesystems")

	// ErrSelectionCancelled means the operator dismissed the pool menu.
	ErrSelectionCancelled = errors.New("storage pool selection cancelled")
)

// PromptFunc presents the pool menu and returns the chosen pool's tag.
// Width is the rendering width the menu was computed for.
type PromptFunc func(message string, choices []Choice, width int) (string, error)

// Select picks the pool that will hold the container root filesystem.
// A single eligible pool is chosen without prompting; multiple candidates
// go through the prompt.
func Select(pools []pve.Pool, prompt PromptFunc) (pve.Pool, error) {
	eligible := Eligible(pools)
	switch len(eligible) {
	case 0:
		return pve.Pool{}, ErrNoEligibleStorage
	case 1:
		return eligible[0], nil
	}

	choices, width := Menu(eligible)
	tag, err := prompt("Which storage pool should hold the container root filesystem?", choices, width)
	if err != nil {
		return pve.Pool{}, err
	}

	for _, p := range eligible {
		if p.Name == tag {
			return p, nil
		}
	}
	return pve.Pool{}, fmt.Errorf("selected pool %q is not a candidate", tag)
}

// Eligible filters to pools that can host a root filesystem right now.
// The host query already restricts to rootdir-capable pools; inactive
// pools are dropped here.
func Eligible(pools []pve.Pool) []pve.Pool {
	out := make([]pve.Pool, 0, len(pools))
	for _, p := range pools {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}
