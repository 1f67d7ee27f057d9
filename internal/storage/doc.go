// Package storage picks and names the storage behind a container's root
// filesystem.
//
// This package handles everything between "the host has these pools" and
// "allocate this exact volume":
//   - Eligibility filtering (active pools that can hold container rootdirs)
//   - Selection (automatic for a single candidate, interactive otherwise)
//   - Per-kind volume naming and format rules
//
// Volume Naming Convention:
//
// Proxmox VE storage kinds disagree about how a container root volume is
// named and addressed:
//   - dir, nfs: raw image file under a per-container directory,
//     volume id "local:105/vm-105-disk-0.raw"
//   - zfspool: subvolume dataset, volume id "tank:subvol-105-disk-0"
//   - anything else: bare raw volume, volume id "pool:vm-105-disk-0"
//
// Raw volumes need an explicit mke2fs pass before pct create can unpack a
// template into them; subvolumes bring their own filesystem. RootFSDisk
// encodes these rules so callers never build volume ids by hand.
//
// Interactive Selection:
//
// Select takes a PromptFunc so the menu rendering is swappable: production
// passes SurveyPrompt, tests pass a plain function. The menu width is
// computed from the longest label plus a fixed offset so no row is ever
// truncated by the prompt renderer.
package storage
