package provision

import (
	"context"

	"github.com/jbweber/kiln/internal/pve"
)

// hostClient defines the host operations provisioning needs.
// This wraps operations from internal/pve to allow for testing.
//
// In production, this is satisfied by *pve.Client directly.
// In tests, this is satisfied by mock implementations.
type hostClient interface {
	// NextContainerID reserves the next free container identifier.
	NextContainerID(ctx context.Context) (int, error)

	// AllocateDisk creates a disk volume owned by a container id.
	AllocateDisk(ctx context.Context, storage string, ctid int, name, size, format string) error

	// FreeDisk releases a disk volume by volume id.
	FreeDisk(ctx context.Context, volid string) error

	// DiskPath resolves a volume id to its host device path.
	DiskPath(ctx context.Context, volid string) (string, error)

	// ListVolumes returns the volumes a storage tracks for an owner id.
	ListVolumes(ctx context.Context, storage string, ctid int) ([]pve.Volume, error)

	// MakeFilesystem writes an ext filesystem onto a device.
	MakeFilesystem(ctx context.Context, device string) error

	// CreateContainer creates an LXC container from a template.
	CreateContainer(ctx context.Context, ctid int, template string, opts pve.CreateOptions) error

	// Mount mounts the container root filesystem and returns the mountpoint.
	Mount(ctx context.Context, ctid int) (string, error)

	// Unmount unmounts the container root filesystem.
	Unmount(ctx context.Context, ctid int) error

	// Start starts the container.
	Start(ctx context.Context, ctid int) error

	// Stop force-stops the container.
	Stop(ctx context.Context, ctid int) error

	// DestroyContainer removes a stopped container and the volumes it owns.
	DestroyContainer(ctx context.Context, ctid int) error

	// PushFile copies a host file into the running container.
	PushFile(ctx context.Context, ctid int, local, remote, perms string) error

	// Exec runs a command inside the running container and waits for it.
	Exec(ctx context.Context, ctid int, command ...string) error

	// InterfaceAddress queries an interface's IPv4 address inside the container.
	InterfaceAddress(ctx context.Context, ctid int, iface string) (string, error)

	// SetDescription persists a description on the container record.
	SetDescription(ctx context.Context, ctid int, description string) error

	// Status reports whether the container exists and runs.
	Status(ctx context.Context, ctid int) (pve.ContainerStatus, error)
}
