package pve

// Pool describes a storage pool as reported by pvesm status. Sizes are in
// bytes.
type Pool struct {
	Name      string
	Kind      string // pvesm storage type: dir, nfs, zfspool, lvmthin, ...
	Active    bool
	Total     uint64
	Used      uint64
	Available uint64
}

// Volume describes a disk volume as reported by pvesm list. Size is in
// bytes.
type Volume struct {
	VolID   string // storage-qualified id, e.g. "local:105/vm-105-disk-0.raw"
	Format  string
	Content string
	Size    uint64
	VMID    int
}

// ContainerStatus reports whether a container exists on the host and
// whether it is running.
type ContainerStatus struct {
	Defined bool
	Running bool
}

// CreateOptions carries the pct create settings for a new container.
type CreateOptions struct {
	Arch     string // amd64, arm64, armhf, i386, riscv64
	Hostname string
	MemoryMB int
	SwapMB   int
	RootFS   string // volume id of the allocated root filesystem
	Network  string // net0 value, e.g. "name=eth0,bridge=vmbr0,ip=dhcp"
	Nesting  bool   // enable the nesting feature
	OnBoot   bool   // start the container with the host
}
