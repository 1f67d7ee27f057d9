// Package template resolves OS container templates on a Proxmox VE host.
//
// Resolution refreshes the host's template catalog, narrows it to one OS
// family and major version, picks the newest release, and makes sure that
// template is downloaded before anything tries to create a container from
// it.
package template

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotFound means no catalog template matches the requested family and
// version.
var ErrNotFound = errors.New("no matching container template")

const (
	// DefaultSection is the pveam catalog section holding OS templates.
	DefaultSection = "system"

	// DefaultStorage is the storage templates download to.
	DefaultStorage = "local"
)

// host captures the template operations the resolver needs.
//
// In production, this is satisfied by *pve.Client directly.
// In tests, this is satisfied by mock implementations.
type host interface {
	// RefreshTemplateIndex updates the host's template catalog.
	RefreshTemplateIndex(ctx context.Context) error

	// ListAvailableTemplates returns downloadable template names for a section.
	ListAvailableTemplates(ctx context.Context, section string) ([]string, error)

	// ListLocalTemplates returns template names already on a storage.
	ListLocalTemplates(ctx context.Context, storage string) ([]string, error)

	// DownloadTemplate fetches a catalog template into a storage.
	DownloadTemplate(ctx context.Context, storage, name string) error
}

// Resolver picks the newest template for an OS family and ensures it is
// present locally.
type Resolver struct {
	host    host
	log     zerolog.Logger
	section string
	storage string
}

// NewResolver creates a resolver using the standard catalog section and
// template storage.
func NewResolver(h host, log zerolog.Logger) *Resolver {
	return &Resolver{
		host:    h,
		log:     log,
		section: DefaultSection,
		storage: DefaultStorage,
	}
}

// Resolve refreshes the catalog, picks the newest template matching
// family and version, downloads it if absent, and returns the
// storage-qualified volume id that pct create takes.
func (r *Resolver) Resolve(ctx context.Context, family, version string) (string, error) {
	r.log.Info().Msg("Refreshing container template catalog")
	if err := r.host.RefreshTemplateIndex(ctx); err != nil {
		return "", err
	}

	available, err := r.host.ListAvailableTemplates(ctx, r.section)
	if err != nil {
		return "", err
	}

	candidates := Candidates(available, family, version)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w for %s-%s", ErrNotFound, family, version)
	}
	name := candidates[len(candidates)-1]
	r.log.Info().Str("template", name).Msg("Resolved newest matching template")

	local, err := r.host.ListLocalTemplates(ctx, r.storage)
	if err != nil {
		return "", err
	}
	if !slices.Contains(local, name) {
		r.log.Info().Str("template", name).Str("storage", r.storage).Msg("Template not present locally; downloading")
		if err := r.host.DownloadTemplate(ctx, r.storage, name); err != nil {
			return "", fmt.Errorf("failed to download template %s: %w", name, err)
		}
	}

	return r.VolID(name), nil
}

// Candidates filters a template list to one family and version and orders
// it oldest to newest. The last entry is the newest release.
func Candidates(available []string, family, version string) []string {
	match := family + "-" + version

	var out []string
	for _, name := range available {
		if strings.Contains(name, match) {
			out = append(out, name)
		}
	}
	sortByVersion(out)
	return out
}

// VolID returns the storage-qualified template reference for a template
// name.
func (r *Resolver) VolID(name string) string {
	return fmt.Sprintf("%s:vztmpl/%s", r.storage, name)
}
