package pve

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Tools holds the host control tool paths. Bare names resolve through PATH.
type Tools struct {
	PCT    string
	PVESM  string
	PVEAM  string
	PVESH  string
	Mke2fs string
}

// DefaultTools returns the standard tool names.
func DefaultTools() Tools {
	return Tools{
		PCT:    "pct",
		PVESM:  "pvesm",
		PVEAM:  "pveam",
		PVESH:  "pvesh",
		Mke2fs: "mke2fs",
	}
}

// normalize fills empty tool paths with their defaults.
func (t Tools) normalize() Tools {
	def := DefaultTools()
	if t.PCT == "" {
		t.PCT = def.PCT
	}
	if t.PVESM == "" {
		t.PVESM = def.PVESM
	}
	if t.PVEAM == "" {
		t.PVEAM = def.PVEAM
	}
	if t.PVESH == "" {
		t.PVESH = def.PVESH
	}
	if t.Mke2fs == "" {
		t.Mke2fs = def.Mke2fs
	}
	return t
}

// list returns the tool paths in a stable order for availability checks.
func (t Tools) list() []string {
	return []string{t.PVESM, t.PVESH, t.PVEAM, t.PCT, t.Mke2fs}
}

// Client talks to a Proxmox VE host through its control tools.
type Client struct {
	run   Runner
	tools Tools
}

// New creates a client that executes the host control tools locally.
func New(tools Tools) *Client {
	return newWithRunner(tools, execRunner{})
}

func newWithRunner(tools Tools, r Runner) *Client {
	return &Client{run: r, tools: tools.normalize()}
}

// Tools returns the normalized tool paths the client uses.
func (c *Client) Tools() Tools {
	return c.tools
}

// VerifyTools checks that every host control tool resolves through PATH.
// Missing tools are reported together in one error.
func (c *Client) VerifyTools() error {
	var missing []string
	for _, tool := range c.tools.list() {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("host control tools not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Version returns the host's Proxmox VE version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run.Run(ctx, c.tools.PVESH, "get", "/version", "--output-format", "json")
	if err != nil {
		return "", fmt.Errorf("failed to query host version: %w", err)
	}

	var v struct {
		Version string `json:"version"`
		Release string `json:"release"`
	}
	if err := json.Unmarshal(out, &v); err != nil {
		return "", fmt.Errorf("unexpected version output: %w", err)
	}
	if v.Version != "" {
		return v.Version, nil
	}
	return v.Release, nil
}

// ListStoragePools returns the storage pools advertising the given content
// type. An empty content type returns all pools.
func (c *Client) ListStoragePools(ctx context.Context, content string) ([]Pool, error) {
	args := []string{"status"}
	if content != "" {
		args = append(args, "-content", content)
	}
	out, err := c.run.Run(ctx, c.tools.PVESM, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query storage pools: %w", err)
	}
	return parsePoolStatus(out)
}

// NextContainerID asks the cluster for the next free VM/CT identifier.
func (c *Client) NextContainerID(ctx context.Context) (int, error) {
	out, err := c.run.Run(ctx, c.tools.PVESH, "get", "/cluster/nextid")
	if err != nil {
		return 0, fmt.Errorf("failed to query next container id: %w", err)
	}

	// pvesh prints a bare number, quoted in some releases.
	s := strings.Trim(strings.TrimSpace(string(out)), `"`)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unexpected nextid output %q: %w", s, err)
	}
	return id, nil
}

// RefreshTemplateIndex updates the host's template catalog from the
// configured mirrors.
func (c *Client) RefreshTemplateIndex(ctx context.Context) error {
	if _, err := c.run.Run(ctx, c.tools.PVEAM, "update"); err != nil {
		return fmt.Errorf("failed to refresh template catalog: %w", err)
	}
	return nil
}

// ListAvailableTemplates returns the downloadable template names for a
// catalog section.
func (c *Client) ListAvailableTemplates(ctx context.Context, section string) ([]string, error) {
	args := []string{"available"}
	if section != "" {
		args = append(args, "-section", section)
	}
	out, err := c.run.Run(ctx, c.tools.PVEAM, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog templates: %w", err)
	}
	return parseAvailableTemplates(out), nil
}

// ListLocalTemplates returns the template names already downloaded to a
// storage.
func (c *Client) ListLocalTemplates(ctx context.Context, storage string) ([]string, error) {
	out, err := c.run.Run(ctx, c.tools.PVEAM, "list", storage)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloaded templates: %w", err)
	}
	return parseLocalTemplates(out), nil
}

// DownloadTemplate fetches a catalog template into a storage.
func (c *Client) DownloadTemplate(ctx context.Context, storage, name string) error {
	if _, err := c.run.Run(ctx, c.tools.PVEAM, "download", storage, name); err != nil {
		return fmt.Errorf("failed to download template %s: %w", name, err)
	}
	return nil
}

// AllocateDisk creates a disk volume owned by a container id. Size takes
// pvesm units, e.g. "8G".
func (c *Client) AllocateDisk(ctx context.Context, storage string, ctid int, name, size, format string) error {
	args := []string{"alloc", storage, strconv.Itoa(ctid), name, size, "--format", format}
	if _, err := c.run.Run(ctx, c.tools.PVESM, args...); err != nil {
		return fmt.Errorf("failed to allocate disk %s on %s: %w", name, storage, err)
	}
	return nil
}

// FreeDisk releases a disk volume by its volume id.
func (c *Client) FreeDisk(ctx context.Context, volid string) error {
	if _, err := c.run.Run(ctx, c.tools.PVESM, "free", volid); err != nil {
		return fmt.Errorf("failed to free disk %s: %w", volid, err)
	}
	return nil
}

// DiskPath resolves a volume id to its path on the host filesystem.
func (c *Client) DiskPath(ctx context.Context, volid string) (string, error) {
	out, err := c.run.Run(ctx, c.tools.PVESM, "path", volid)
	if err != nil {
		return "", fmt.Errorf("failed to resolve disk path for %s: %w", volid, err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("no path reported for disk %s", volid)
	}
	return path, nil
}

// ListVolumes returns the volumes a storage tracks for one owner id.
func (c *Client) ListVolumes(ctx context.Context, storage string, ctid int) ([]Volume, error) {
	out, err := c.run.Run(ctx, c.tools.PVESM, "list", storage, "--vmid", strconv.Itoa(ctid))
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes on %s: %w", storage, err)
	}
	return parseVolumeList(out)
}

// MakeFilesystem writes an ext filesystem onto a raw disk device.
func (c *Client) MakeFilesystem(ctx context.Context, device string) error {
	if _, err := c.run.Run(ctx, c.tools.Mke2fs, device); err != nil {
		return fmt.Errorf("failed to create filesystem on %s: %w", device, err)
	}
	return nil
}

// CreateContainer creates an LXC container from a template volume id.
func (c *Client) CreateContainer(ctx context.Context, ctid int, template string, opts CreateOptions) error {
	args := []string{"create", strconv.Itoa(ctid), template,
		"-arch", opts.Arch,
		"-hostname", opts.Hostname,
		"-memory", strconv.Itoa(opts.MemoryMB),
		"-net0", opts.Network,
		"-rootfs", opts.RootFS,
		"-swap", strconv.Itoa(opts.SwapMB),
	}
	if opts.Nesting {
		args = append(args, "-features", "nesting=1")
	}
	if opts.OnBoot {
		args = append(args, "-onboot", "1")
	}
	if _, err := c.run.Run(ctx, c.tools.PCT, args...); err != nil {
		return fmt.Errorf("failed to create container %d: %w", ctid, err)
	}
	return nil
}

// Mount mounts a container's root filesystem on the host and returns the
// mountpoint.
func (c *Client) Mount(ctx context.Context, ctid int) (string, error) {
	out, err := c.run.Run(ctx, c.tools.PCT, "mount", strconv.Itoa(ctid))
	if err != nil {
		return "", fmt.Errorf("failed to mount container %d: %w", ctid, err)
	}
	if mp := parseMountpoint(out); mp != "" {
		return mp, nil
	}
	// pct prints the mountpoint on stdout; fall back to the conventional
	// location if the message format ever changes.
	return fmt.Sprintf("/var/lib/lxc/%d/rootfs", ctid), nil
}

// Unmount unmounts a container's root filesystem.
func (c *Client) Unmount(ctx context.Context, ctid int) error {
	if _, err := c.run.Run(ctx, c.tools.PCT, "unmount", strconv.Itoa(ctid)); err != nil {
		return fmt.Errorf("failed to unmount container %d: %w", ctid, err)
	}
	return nil
}

// Start starts a container.
func (c *Client) Start(ctx context.Context, ctid int) error {
	if _, err := c.run.Run(ctx, c.tools.PCT, "start", strconv.Itoa(ctid)); err != nil {
		return fmt.Errorf("failed to start container %d: %w", ctid, err)
	}
	return nil
}

// Stop force-stops a container.
func (c *Client) Stop(ctx context.Context, ctid int) error {
	if _, err := c.run.Run(ctx, c.tools.PCT, "stop", strconv.Itoa(ctid)); err != nil {
		return fmt.Errorf("failed to stop container %d: %w", ctid, err)
	}
	return nil
}

// DestroyContainer removes a stopped container and the volumes it owns.
func (c *Client) DestroyContainer(ctx context.Context, ctid int) error {
	if _, err := c.run.Run(ctx, c.tools.PCT, "destroy", strconv.Itoa(ctid)); err != nil {
		return fmt.Errorf("failed to destroy container %d: %w", ctid, err)
	}
	return nil
}

// PushFile copies a host file into a running container. Perms takes an
// octal mode string, e.g. "755"; empty keeps pct's default.
func (c *Client) PushFile(ctx context.Context, ctid int, local, remote, perms string) error {
	args := []string{"push", strconv.Itoa(ctid), local, remote}
	if perms != "" {
		args = append(args, "-perms", perms)
	}
	if _, err := c.run.Run(ctx, c.tools.PCT, args...); err != nil {
		return fmt.Errorf("failed to push %s into container %d: %w", local, ctid, err)
	}
	return nil
}

// Exec runs a command inside a running container and waits for it to
// finish. A non-zero exit inside the container surfaces as an error.
func (c *Client) Exec(ctx context.Context, ctid int, command ...string) error {
	if len(command) == 0 {
		return fmt.Errorf("no command given for container %d", ctid)
	}
	args := append([]string{"exec", strconv.Itoa(ctid), "--"}, command...)
	if _, err := c.run.Run(ctx, c.tools.PCT, args...); err != nil {
		return fmt.Errorf("failed to run %s in container %d: %w", command[0], ctid, err)
	}
	return nil
}

// InterfaceAddress queries the IPv4 address of an interface inside a
// running container.
func (c *Client) InterfaceAddress(ctx context.Context, ctid int, iface string) (string, error) {
	out, err := c.run.Run(ctx, c.tools.PCT, "exec", strconv.Itoa(ctid), "--",
		"ip", "-4", "addr", "show", "dev", iface)
	if err != nil {
		return "", fmt.Errorf("failed to query %s address in container %d: %w", iface, ctid, err)
	}
	addr := parseInterfaceAddress(out)
	if addr == "" {
		return "", fmt.Errorf("no IPv4 address reported on %s in container %d", iface, ctid)
	}
	return addr, nil
}

// SetDescription persists a description on the container record.
func (c *Client) SetDescription(ctx context.Context, ctid int, description string) error {
	if _, err := c.run.Run(ctx, c.tools.PCT, "set", strconv.Itoa(ctid), "-description", description); err != nil {
		return fmt.Errorf("failed to set description on container %d: %w", ctid, err)
	}
	return nil
}

// Status reports whether a container is defined on the host and whether it
// is running. A container that does not exist yields a zero status with no
// error.
func (c *Client) Status(ctx context.Context, ctid int) (ContainerStatus, error) {
	out, err := c.run.Run(ctx, c.tools.PCT, "status", strconv.Itoa(ctid))
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return ContainerStatus{}, nil
		}
		return ContainerStatus{}, fmt.Errorf("failed to query container %d status: %w", ctid, err)
	}
	return ContainerStatus{
		Defined: true,
		Running: strings.Contains(string(out), "running"),
	}, nil
}
