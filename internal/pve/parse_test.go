package pve

import (
	"strings"
	"testing"
)

func TestParsePoolStatus(t *testing.T) {
	out := []byte(`Name             Type     Status           Total            Used       Available        %
local             dir     active        98559220         7364672        86144500    7.47%
backup            nfs   disabled               0               0               0    0.00%
tank          zfspool     active       942669824         1024000       941645824    0.11%
`)

	pools, err := parsePoolStatus(out)
	if err != nil {
		t.Fatalf("parsePoolStatus failed: %v", err)
	}

	if len(pools) != 3 {
		t.Fatalf("Expected 3 pools, got %d", len(pools))
	}

	local := pools[0]
	if local.Name != "local" {
		t.Errorf("Expected pool name 'local', got %q", local.Name)
	}
	if local.Kind != "dir" {
		t.Errorf("Expected pool kind 'dir', got %q", local.Kind)
	}
	if !local.Active {
		t.Error("Expected local pool to be active")
	}
	// pvesm reports KiB
	if local.Total != 98559220*1024 {
		t.Errorf("Expected total %d bytes, got %d", 98559220*1024, local.Total)
	}
	if local.Available != 86144500*1024 {
		t.Errorf("Expected available %d bytes, got %d", 86144500*1024, local.Available)
	}

	if pools[1].Active {
		t.Error("Expected disabled pool to be inactive")
	}
	if pools[2].Kind != "zfspool" {
		t.Errorf("Expected pool kind 'zfspool', got %q", pools[2].Kind)
	}
}

func TestParsePoolStatus_Empty(t *testing.T) {
	pools, err := parsePoolStatus([]byte("Name Type Status Total Used Available %\n"))
	if err != nil {
		t.Fatalf("parsePoolStatus failed: %v", err)
	}
	if len(pools) != 0 {
		t.Errorf("Expected no pools, got %d", len(pools))
	}
}

func TestParsePoolStatus_BadNumber(t *testing.T) {
	out := []byte("local dir active many 0 0 0%\n")

	_, err := parsePoolStatus(out)
	if err == nil {
		t.Fatal("Expected error for non-numeric size, got nil")
	}
	if !strings.Contains(err.Error(), "unexpected pvesm status line") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}

func TestParseAvailableTemplates(t *testing.T) {
	out := []byte(`section   name
system    alpine-3.12-default_20200823_amd64.tar.xz
system    debian-10.0-standard_10.0-1_amd64.tar.gz
system    debian-10.7-standard_10.7-1_amd64.tar.gz
`)

	names := parseAvailableTemplates(out)

	if len(names) != 3 {
		t.Fatalf("Expected 3 templates, got %d", len(names))
	}
	if names[1] != "debian-10.0-standard_10.0-1_amd64.tar.gz" {
		t.Errorf("Unexpected template name %q", names[1])
	}
}

func TestParseLocalTemplates(t *testing.T) {
	out := []byte(`NAME                                                         SIZE
local:vztmpl/alpine-3.12-default_20200823_amd64.tar.xz       2.46MB
local:vztmpl/debian-10.7-standard_10.7-1_amd64.tar.gz        211.67MB
`)

	names := parseLocalTemplates(out)

	if len(names) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(names))
	}
	if names[1] != "debian-10.7-standard_10.7-1_amd64.tar.gz" {
		t.Errorf("Unexpected template name %q", names[1])
	}
}

func TestParseVolumeList(t *testing.T) {
	out := []byte(`Volid                            Format  Type     Size       VMID
local:105/vm-105-disk-0.raw      raw     rootdir  8589934592 105
`)

	vols, err := parseVolumeList(out)
	if err != nil {
		t.Fatalf("parseVolumeList failed: %v", err)
	}

	if len(vols) != 1 {
		t.Fatalf("Expected 1 volume, got %d", len(vols))
	}
	vol := vols[0]
	if vol.VolID != "local:105/vm-105-disk-0.raw" {
		t.Errorf("Unexpected volid %q", vol.VolID)
	}
	if vol.Format != "raw" {
		t.Errorf("Expected format 'raw', got %q", vol.Format)
	}
	if vol.Size != 8589934592 {
		t.Errorf("Expected size 8589934592, got %d", vol.Size)
	}
	if vol.VMID != 105 {
		t.Errorf("Expected vmid 105, got %d", vol.VMID)
	}
}

func TestParseVolumeList_BadVMID(t *testing.T) {
	out := []byte("local:105/vm-105-disk-0.raw raw rootdir 8589934592 host\n")

	_, err := parseVolumeList(out)
	if err == nil {
		t.Fatal("Expected error for non-numeric vmid, got nil")
	}
}

func TestParseMountpoint(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "standard message",
			out:  "mounted CT 105 in '/var/lib/lxc/105/rootfs'\n",
			want: "/var/lib/lxc/105/rootfs",
		},
		{
			name: "no quotes",
			out:  "mounted CT 105\n",
			want: "",
		},
		{
			name: "unterminated quote",
			out:  "mounted CT 105 in '/var/lib/lxc/105/rootfs\n",
			want: "",
		},
		{
			name: "empty output",
			out:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseMountpoint([]byte(tt.out)); got != tt.want {
				t.Errorf("parseMountpoint(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestParseInterfaceAddress(t *testing.T) {
	out := []byte(`2: eth0@if6: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP group default qlen 1000
    inet 192.168.4.50/24 brd 192.168.4.255 scope global dynamic eth0
       valid_lft 86255sec preferred_lft 86255sec
`)

	if got := parseInterfaceAddress(out); got != "192.168.4.50" {
		t.Errorf("Expected address '192.168.4.50', got %q", got)
	}
}

func TestParseInterfaceAddress_NoAddress(t *testing.T) {
	out := []byte("2: eth0@if6: <BROADCAST,MULTICAST,UP> mtu 1500 state DOWN\n")

	if got := parseInterfaceAddress(out); got != "" {
		t.Errorf("Expected no address, got %q", got)
	}
}

func TestParseInterfaceAddress_InvalidAddress(t *testing.T) {
	out := []byte("    inet not-an-address/24 scope global eth0\n")

	if got := parseInterfaceAddress(out); got != "" {
		t.Errorf("Expected no address for invalid input, got %q", got)
	}
}
