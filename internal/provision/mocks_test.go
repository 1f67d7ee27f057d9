package provision

import (
	"context"
	"fmt"
	"sync"

	"github.com/jbweber/kiln/internal/pve"
)

// mockHost is a mock implementation of the hostClient interface.
//
// Its defaults behave like a healthy host and mutate mock state the way
// Proxmox would (allocation registers a volume, destroy releases the
// container's volumes, and so on). Rollback tests can therefore assert
// against resulting "host" state instead of bookkeeping flags.
type mockHost struct {
	mu sync.Mutex

	// Configurable behavior
	nextContainerIDFunc  func(ctx context.Context) (int, error)
	allocateDiskFunc     func(ctx context.Context, storage string, ctid int, name, size, format string) error
	freeDiskFunc         func(ctx context.Context, volid string) error
	diskPathFunc         func(ctx context.Context, volid string) (string, error)
	listVolumesFunc      func(ctx context.Context, storage string, ctid int) ([]pve.Volume, error)
	makeFilesystemFunc   func(ctx context.Context, device string) error
	createContainerFunc  func(ctx context.Context, ctid int, template string, opts pve.CreateOptions) error
	mountFunc            func(ctx context.Context, ctid int) (string, error)
	unmountFunc          func(ctx context.Context, ctid int) error
	startFunc            func(ctx context.Context, ctid int) error
	stopFunc             func(ctx context.Context, ctid int) error
	destroyContainerFunc func(ctx context.Context, ctid int) error
	pushFileFunc         func(ctx context.Context, ctid int, local, remote, perms string) error
	execFunc             func(ctx context.Context, ctid int, command ...string) error
	interfaceAddressFunc func(ctx context.Context, ctid int, iface string) (string, error)
	setDescriptionFunc   func(ctx context.Context, ctid int, description string) error
	statusFunc           func(ctx context.Context, ctid int) (pve.ContainerStatus, error)

	// Host state
	volumes     map[string]int // volid -> owning container id
	defined     bool
	running     bool
	mounted     bool
	description string

	// Call tracking
	calls       []string // operation names in invocation order
	allocNames  []string
	allocSizes  []string
	allocFmts   []string
	createOpts  []pve.CreateOptions
	pushCalls   []string // "local -> remote (perms)"
	execCalls   [][]string
	freedVolIDs []string
}

// newMockHost creates a mock with working default behaviors.
func newMockHost() *mockHost {
	m := &mockHost{volumes: make(map[string]int)}

	// Default: the cluster hands out id 105
	m.nextContainerIDFunc = func(ctx context.Context) (int, error) {
		return 105, nil
	}

	// Default: allocation registers the volume under its owner
	m.allocateDiskFunc = func(_ context.Context, storage string, ctid int, name, _, _ string) error {
		m.volumes[storage+":"+name] = ctid
		return nil
	}

	// Default: free releases the volume
	m.freeDiskFunc = func(_ context.Context, volid string) error {
		delete(m.volumes, volid)
		return nil
	}

	// Default: the volume resolves to a device path
	m.diskPathFunc = func(_ context.Context, volid string) (string, error) {
		return "/dev/loop8", nil
	}

	// Default: list reports the volumes registered for the owner id
	m.listVolumesFunc = func(_ context.Context, storage string, ctid int) ([]pve.Volume, error) {
		var vols []pve.Volume
		for volid, owner := range m.volumes {
			if owner == ctid {
				vols = append(vols, pve.Volume{VolID: volid, Content: "rootdir", VMID: ctid})
			}
		}
		return vols, nil
	}

	// Default: mke2fs succeeds
	m.makeFilesystemFunc = func(_ context.Context, _ string) error {
		return nil
	}

	// Default: create defines the container
	m.createContainerFunc = func(_ context.Context, _ int, _ string, _ pve.CreateOptions) error {
		m.defined = true
		return nil
	}

	// Default: mount succeeds at the conventional path
	m.mountFunc = func(_ context.Context, ctid int) (string, error) {
		m.mounted = true
		return fmt.Sprintf("/var/lib/lxc/%d/rootfs", ctid), nil
	}

	// Default: unmount succeeds
	m.unmountFunc = func(_ context.Context, _ int) error {
		m.mounted = false
		return nil
	}

	// Default: start and stop toggle the running state
	m.startFunc = func(_ context.Context, _ int) error {
		m.running = true
		return nil
	}
	m.stopFunc = func(_ context.Context, _ int) error {
		m.running = false
		return nil
	}

	// Default: destroy refuses while running, otherwise removes the
	// container and the volumes it owns, like pct destroy
	m.destroyContainerFunc = func(_ context.Context, ctid int) error {
		if m.running {
			return fmt.Errorf("container %d is running", ctid)
		}
		m.defined = false
		for volid, owner := range m.volumes {
			if owner == ctid {
				delete(m.volumes, volid)
			}
		}
		return nil
	}

	// Default: push and exec succeed
	m.pushFileFunc = func(_ context.Context, _ int, _, _, _ string) error {
		return nil
	}
	m.execFunc = func(_ context.Context, _ int, _ ...string) error {
		return nil
	}

	// Default: the container got a DHCP lease
	m.interfaceAddressFunc = func(_ context.Context, _ int, _ string) (string, error) {
		return "192.168.4.50", nil
	}

	// Default: the description is stored
	m.setDescriptionFunc = func(_ context.Context, _ int, description string) error {
		m.description = description
		return nil
	}

	// Default: status reports the mock state
	m.statusFunc = func(_ context.Context, _ int) (pve.ContainerStatus, error) {
		return pve.ContainerStatus{Defined: m.defined, Running: m.running}, nil
	}

	return m
}

func (m *mockHost) NextContainerID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "NextContainerID")
	return m.nextContainerIDFunc(ctx)
}

func (m *mockHost) AllocateDisk(ctx context.Context, storage string, ctid int, name, size, format string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "AllocateDisk")
	m.allocNames = append(m.allocNames, name)
	m.allocSizes = append(m.allocSizes, size)
	m.allocFmts = append(m.allocFmts, format)
	return m.allocateDiskFunc(ctx, storage, ctid, name, size, format)
}

func (m *mockHost) FreeDisk(ctx context.Context, volid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "FreeDisk")
	m.freedVolIDs = append(m.freedVolIDs, volid)
	return m.freeDiskFunc(ctx, volid)
}

func (m *mockHost) DiskPath(ctx context.Context, volid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "DiskPath")
	return m.diskPathFunc(ctx, volid)
}

func (m *mockHost) ListVolumes(ctx context.Context, storage string, ctid int) ([]pve.Volume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "ListVolumes")
	return m.listVolumesFunc(ctx, storage, ctid)
}

func (m *mockHost) MakeFilesystem(ctx context.Context, device string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "MakeFilesystem")
	return m.makeFilesystemFunc(ctx, device)
}

func (m *mockHost) CreateContainer(ctx context.Context, ctid int, template string, opts pve.CreateOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "CreateContainer")
	m.createOpts = append(m.createOpts, opts)
	return m.createContainerFunc(ctx, ctid, template, opts)
}

func (m *mockHost) Mount(ctx context.Context, ctid int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Mount")
	return m.mountFunc(ctx, ctid)
}

func (m *mockHost) Unmount(ctx context.Context, ctid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Unmount")
	return m.unmountFunc(ctx, ctid)
}

func (m *mockHost) Start(ctx context.Context, ctid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Start")
	return m.startFunc(ctx, ctid)
}

func (m *mockHost) Stop(ctx context.Context, ctid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Stop")
	return m.stopFunc(ctx, ctid)
}

func (m *mockHost) DestroyContainer(ctx context.Context, ctid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "DestroyContainer")
	return m.destroyContainerFunc(ctx, ctid)
}

func (m *mockHost) PushFile(ctx context.Context, ctid int, local, remote, perms string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "PushFile")
	m.pushCalls = append(m.pushCalls, fmt.Sprintf("%s -> %s (%s)", local, remote, perms))
	return m.pushFileFunc(ctx, ctid, local, remote, perms)
}

func (m *mockHost) Exec(ctx context.Context, ctid int, command ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Exec")
	m.execCalls = append(m.execCalls, command)
	return m.execFunc(ctx, ctid, command...)
}

func (m *mockHost) InterfaceAddress(ctx context.Context, ctid int, iface string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "InterfaceAddress")
	return m.interfaceAddressFunc(ctx, ctid, iface)
}

func (m *mockHost) SetDescription(ctx context.Context, ctid int, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "SetDescription")
	return m.setDescriptionFunc(ctx, ctid, description)
}

func (m *mockHost) Status(ctx context.Context, ctid int) (pve.ContainerStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Status")
	return m.statusFunc(ctx, ctid)
}

// callIndex returns the position of the first occurrence of op in the call
// sequence, or -1.
func (m *mockHost) callIndex(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.calls {
		if c == op {
			return i
		}
	}
	return -1
}

// callCount returns how many times op was invoked.
func (m *mockHost) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}
