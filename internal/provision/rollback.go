package provision

import (
	"context"

	"github.com/rs/zerolog"
)

// rollback undoes the partial work of a failed session. It is best-effort:
// sub-step failures are logged as warnings and the remaining steps still
// run. What exists is re-queried from the host rather than inferred from
// the recorded stage, so rollback also copes with steps that half
// completed.
func (p *Provisioner) rollback(ctx context.Context, log zerolog.Logger, s *Session) {
	if s.CTID == 0 {
		log.Debug().Msg("Rollback: no container id reserved; nothing to undo")
		return
	}

	log.Warn().Str("stage", s.Stage.String()).Msg("Provisioning failed; rolling back")

	if s.Mounted {
		if err := p.host.Unmount(ctx, s.CTID); err != nil {
			log.Warn().Err(err).Msg("Rollback: unmount failed")
		} else {
			s.Mounted = false
		}
	}

	st, err := p.host.Status(ctx, s.CTID)
	if err != nil {
		log.Warn().Err(err).Msg("Rollback: container status query failed")
	}

	if err == nil && st.Defined {
		if st.Running {
			if err := p.host.Stop(ctx, s.CTID); err != nil {
				log.Warn().Err(err).Msg("Rollback: stop failed")
			}
		}
		if err := p.host.DestroyContainer(ctx, s.CTID); err != nil {
			log.Warn().Err(err).Msg("Rollback: container destroy failed; manual cleanup may be needed")
			return
		}
		// pct destroy releases the root volume together with the container.
		log.Info().Msg("Rollback: container destroyed")
		return
	}

	// No container defined. Free any root volume still registered to the
	// reserved id.
	vols, err := p.host.ListVolumes(ctx, s.Pool.Name, s.CTID)
	if err != nil {
		// Not every storage kind reports volumes by owner id; without
		// that listing there is nothing safe to free.
		log.Warn().Err(err).Msg("Rollback: volume query failed; skipping disk cleanup")
		return
	}
	for _, vol := range vols {
		if err := p.host.FreeDisk(ctx, vol.VolID); err != nil {
			log.Warn().Err(err).Str("volume", vol.VolID).Msg("Rollback: disk free failed")
		} else {
			log.Info().Str("volume", vol.VolID).Msg("Rollback: root volume freed")
		}
	}
}
