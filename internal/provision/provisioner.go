package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jbweber/kiln/internal/pve"
	"github.com/jbweber/kiln/internal/storage"
)

// Fixed container profile. The controller appliance always looks the same;
// only the storage pool underneath it varies between hosts.
const (
	// Hostname doubles as the DHCP-registered name clients can browse to.
	Hostname = "UnifiNetworkController"

	// ManagementPort is the controller's HTTPS port.
	ManagementPort = 8443

	// DiskSizeGB and MemoryMB size the container. Swap always equals memory.
	DiskSizeGB = 8
	MemoryMB   = 2048

	// NetworkInterface and NetworkBridge define the single DHCP adapter.
	NetworkInterface = "eth0"
	NetworkBridge    = "vmbr0"

	// TemplateFamily and TemplateVersion select the OS template line the
	// controller is installed on.
	TemplateFamily  = "debian"
	TemplateVersion = "10"

	setupRemotePath = "/root/unifi-setup.sh"
	setupFileMode   = "755"
)

// Options tunes a Provisioner.
type Options struct {
	// SetupScript is the host path of the script pushed into the container
	// and executed to install the controller.
	SetupScript string
}

// Provisioner runs provisioning sessions against one host.
type Provisioner struct {
	host hostClient
	log  zerolog.Logger
	opts Options

	// syncLocaltime touches the host filesystem; swapped out in tests.
	syncLocaltime func(mountpoint string) error
}

// New creates a Provisioner.
func New(host hostClient, log zerolog.Logger, opts Options) *Provisioner {
	return &Provisioner{
		host:          host,
		log:           log,
		opts:          opts,
		syncLocaltime: syncLocaltime,
	}
}

// Result reports a successful provisioning run.
type Result struct {
	CTID      int
	Address   string   // DHCP address; empty if the query came back empty
	Endpoints []string // HTTPS endpoints the controller answers on
}

// Run provisions one container on the given pool from the given template
// volume id. On any failure after work begins, completed steps are rolled
// back before the error is returned.
func (p *Provisioner) Run(ctx context.Context, pool pve.Pool, template string) (*Result, error) {
	s := newSession(pool)
	log := p.log.With().Str("run_id", shortID(s.RunID)).Logger()

	var runErr error
	defer func() {
		if runErr != nil {
			p.rollback(ctx, log, s)
		}
	}()

	log.Info().Str("storage", pool.Name).Str("template", template).Msg("Provisioning UniFi Network Controller container")

	// Step 1: Reserve a container id.
	ctid, err := p.host.NextContainerID(ctx)
	if err != nil {
		runErr = fmt.Errorf("failed to reserve container id: %w", err)
		return nil, runErr
	}
	s.CTID = ctid
	log = log.With().Int("ctid", ctid).Logger()
	log.Info().Msg("Reserved container id")

	// Step 2: Allocate the root filesystem volume.
	s.Disk = storage.RootFSDisk(pool, ctid)
	log.Info().Str("volume", s.Disk.VolID()).Msg("Allocating root filesystem volume")
	if runErr = p.host.AllocateDisk(ctx, pool.Name, ctid, s.Disk.Name, fmt.Sprintf("%dG", DiskSizeGB), string(s.Disk.Format)); runErr != nil {
		runErr = fmt.Errorf("failed to allocate root filesystem volume: %w", runErr)
		return nil, runErr
	}
	s.advance(StageStorageAllocated)

	// Step 3: Put a filesystem on raw volumes. Subvolume storage brings
	// its own.
	if s.Disk.NeedsFilesystem() {
		log.Info().Msg("Creating ext filesystem on root volume")
		var device string
		if device, runErr = p.host.DiskPath(ctx, s.Disk.VolID()); runErr != nil {
			runErr = fmt.Errorf("failed to locate root volume device: %w", runErr)
			return nil, runErr
		}
		if runErr = p.host.MakeFilesystem(ctx, device); runErr != nil {
			runErr = fmt.Errorf("failed to create root filesystem: %w", runErr)
			return nil, runErr
		}
	} else {
		log.Warn().Str("format", string(s.Disk.Format)).Msg("Storage manages its own filesystem; skipping mke2fs")
	}
	s.advance(StageFilesystemReady)

	// Step 4: Create the container.
	log.Info().Msg("Creating LXC container")
	opts := pve.CreateOptions{
		Arch:     hostArch(),
		Hostname: Hostname,
		MemoryMB: MemoryMB,
		SwapMB:   MemoryMB,
		RootFS:   s.Disk.VolID(),
		Network:  fmt.Sprintf("name=%s,bridge=%s,ip=dhcp", NetworkInterface, NetworkBridge),
		Nesting:  true,
		OnBoot:   true,
	}
	if runErr = p.host.CreateContainer(ctx, ctid, template, opts); runErr != nil {
		runErr = fmt.Errorf("failed to create container: %w", runErr)
		return nil, runErr
	}
	s.advance(StageContainerCreated)

	// Step 5: Mount the root filesystem and mirror the host timezone into
	// it before first boot.
	log.Info().Msg("Mounting container filesystem")
	if s.Mountpoint, runErr = p.host.Mount(ctx, ctid); runErr != nil {
		runErr = fmt.Errorf("failed to mount container filesystem: %w", runErr)
		return nil, runErr
	}
	s.Mounted = true

	log.Info().Msg("Syncing host timezone into container")
	if runErr = p.syncLocaltime(s.Mountpoint); runErr != nil {
		runErr = fmt.Errorf("failed to sync timezone: %w", runErr)
		return nil, runErr
	}
	s.advance(StageMounted)

	log.Info().Msg("Unmounting container filesystem")
	if runErr = p.host.Unmount(ctx, ctid); runErr != nil {
		runErr = fmt.Errorf("failed to unmount container filesystem: %w", runErr)
		return nil, runErr
	}
	s.Mounted = false
	s.advance(StageTimezoneSynced)

	// Step 6: Start it.
	log.Info().Msg("Starting container")
	if runErr = p.host.Start(ctx, ctid); runErr != nil {
		runErr = fmt.Errorf("failed to start container: %w", runErr)
		return nil, runErr
	}
	s.advance(StageStarted)

	// Step 7: Push and run the controller setup script.
	log.Info().Str("script", p.opts.SetupScript).Msg("Pushing setup script into container")
	if runErr = p.host.PushFile(ctx, ctid, p.opts.SetupScript, setupRemotePath, setupFileMode); runErr != nil {
		runErr = fmt.Errorf("failed to push setup script: %w", runErr)
		return nil, runErr
	}
	s.advance(StageSetupPushed)

	log.Info().Msg("Running setup script; installing the controller can take several minutes")
	if runErr = p.host.Exec(ctx, ctid, setupRemotePath); runErr != nil {
		runErr = fmt.Errorf("setup script failed: %w", runErr)
		return nil, runErr
	}
	s.advance(StageSetupExecuted)

	// Step 8: Report. Address and description are conveniences; their
	// failure never fails a run that got this far.
	addr, err := p.host.InterfaceAddress(ctx, ctid, NetworkInterface)
	if err != nil {
		log.Warn().Err(err).Msg("Could not determine container address; the controller may still be starting")
		addr = ""
	}
	if err := p.host.SetDescription(ctx, ctid, Description(addr, s.RunID)); err != nil {
		log.Warn().Err(err).Msg("Could not persist container description")
	}
	s.advance(StageComplete)

	log.Info().Msg("Container provisioned")
	return &Result{CTID: ctid, Address: addr, Endpoints: Endpoints(addr)}, nil
}

// Endpoints lists the HTTPS URLs the controller answers on. The address
// URL comes first when the DHCP query succeeded; the hostname URL works
// for any client that resolves the DHCP-registered name.
func Endpoints(addr string) []string {
	var endpoints []string
	if addr != "" {
		endpoints = append(endpoints, fmt.Sprintf("https://%s:%d", addr, ManagementPort))
	}
	return append(endpoints, fmt.Sprintf("https://%s:%d", Hostname, ManagementPort))
}

// Description renders the description persisted on the container record.
func Description(addr, runID string) string {
	url := fmt.Sprintf("https://%s:%d", Hostname, ManagementPort)
	if addr != "" {
		url = fmt.Sprintf("https://%s:%d", addr, ManagementPort)
	}
	return fmt.Sprintf("# UniFi Network Controller\n### %s\n\nprovisioned by kiln run %s\n", url, shortID(runID))
}

// shortID trims a run id to its leading uuid group for logs and labels.
func shortID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}

// hostArch maps the running binary's architecture to pct's names. kiln
// runs on the host it provisions, so GOARCH is the host architecture.
func hostArch() string {
	switch runtime.GOARCH {
	case "arm64":
		return "arm64"
	case "386":
		return "i386"
	case "arm":
		return "armhf"
	case "riscv64":
		return "riscv64"
	default:
		return "amd64"
	}
}

// syncLocaltime mirrors the host /etc/localtime symlink into a mounted
// container filesystem so first boot runs in the host timezone.
func syncLocaltime(mountpoint string) error {
	target, err := os.Readlink("/etc/localtime")
	if err != nil {
		return fmt.Errorf("failed to read host timezone link: %w", err)
	}

	link := filepath.Join(mountpoint, "etc", "localtime")
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace container timezone link: %w", err)
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("failed to link container timezone: %w", err)
	}
	return nil
}
