package storage

import (
	"fmt"

	"github.com/jbweber/kiln/internal/pve"
)

// Kind represents the backend type of a Proxmox VE storage pool.
type Kind string

const (
	KindDir     Kind = "dir"     // Directory on the host filesystem
	KindNFS     Kind = "nfs"     // NFS mount
	KindZFSPool Kind = "zfspool" // ZFS dataset storage
	KindLVM     Kind = "lvm"     // LVM volume group
	KindLVMThin Kind = "lvmthin" // LVM thin pool
)

// Format represents the root filesystem volume format.
type Format string

const (
	FormatRaw    Format = "raw"    // Raw image, needs mke2fs before use
	FormatSubvol Format = "subvol" // ZFS subvolume, filesystem included
)

// Disk describes the root filesystem volume for one container.
type Disk struct {
	Storage string // owning pool name
	Kind    Kind
	CTID    int
	Name    string
	Format  Format
}

// RootFSDisk computes the root volume naming for a pool kind.
//
// Directory-style pools (dir, nfs) hold raw image files named with a .raw
// extension under a per-container subdirectory. zfspool storage uses
// subvolume datasets with no image file at all. Every other kind gets a
// bare raw volume name.
func RootFSDisk(pool pve.Pool, ctid int) Disk {
	d := Disk{Storage: pool.Name, Kind: Kind(pool.Kind), CTID: ctid}

	switch d.Kind {
	case KindZFSPool:
		d.Name = fmt.Sprintf("subvol-%d-disk-0", ctid)
		d.Format = FormatSubvol
	case KindDir, KindNFS:
		d.Name = fmt.Sprintf("vm-%d-disk-0.raw", ctid)
		d.Format = FormatRaw
	default:
		d.Name = fmt.Sprintf("vm-%d-disk-0", ctid)
		d.Format = FormatRaw
	}

	return d
}

// VolID returns the storage-qualified volume id that pct and pvesm take.
// Directory-style volumes carry the owning container id as a path segment.
func (d Disk) VolID() string {
	switch d.Kind {
	case KindDir, KindNFS:
		return fmt.Sprintf("%s:%d/%s", d.Storage, d.CTID, d.Name)
	default:
		return fmt.Sprintf("%s:%s", d.Storage, d.Name)
	}
}

// NeedsFilesystem reports whether the volume takes an explicit mke2fs pass
// before the container is created on it.
func (d Disk) NeedsFilesystem() bool {
	return d.Format == FormatRaw
}
