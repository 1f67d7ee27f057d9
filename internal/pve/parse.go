package pve

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// parsePoolStatus parses pvesm status output:
//
//	Name             Type     Status           Total            Used       Available        %
//	local             dir     active        98559220         7364672        86144500    7.47%
//	tank          zfspool     active       942669824         1024000       941645824    0.11%
//
// Sizes are reported in KiB and converted to bytes.
func parsePoolStatus(out []byte) ([]Pool, error) {
	var pools []Pool

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		if fields[0] == "Name" && fields[1] == "Type" {
			continue
		}

		total, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected pvesm status line %q: %w", line, err)
		}
		used, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected pvesm status line %q: %w", line, err)
		}
		available, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected pvesm status line %q: %w", line, err)
		}

		pools = append(pools, Pool{
			Name:      fields[0],
			Kind:      fields[1],
			Active:    fields[2] == "active",
			Total:     total * 1024,
			Used:      used * 1024,
			Available: available * 1024,
		})
	}

	return pools, sc.Err()
}

// parseAvailableTemplates parses pveam available output, which lists one
// template per line as "<section>  <name>".
func parseAvailableTemplates(out []byte) []string {
	var names []string

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] == "section" {
			continue
		}
		names = append(names, fields[1])
	}

	return names
}

// parseLocalTemplates parses pveam list output into bare template names.
// Lines look like "local:vztmpl/debian-10.7-standard_10.7-1_amd64.tar.gz  211.67MB".
func parseLocalTemplates(out []byte) []string {
	var names []string

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "NAME" {
			continue
		}
		if i := strings.Index(fields[0], "vztmpl/"); i >= 0 {
			names = append(names, fields[0][i+len("vztmpl/"):])
		}
	}

	return names
}

// parseVolumeList parses pvesm list output:
//
//	Volid                            Format  Type     Size       VMID
//	local:105/vm-105-disk-0.raw      raw     rootdir  8589934592 105
//
// Sizes here are already in bytes.
func parseVolumeList(out []byte) ([]Volume, error) {
	var vols []Volume

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] == "Volid" {
			continue
		}

		size, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected pvesm list line %q: %w", line, err)
		}
		vmid, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("unexpected pvesm list line %q: %w", line, err)
		}

		vols = append(vols, Volume{
			VolID:   fields[0],
			Format:  fields[1],
			Content: fields[2],
			Size:    size,
			VMID:    vmid,
		})
	}

	return vols, sc.Err()
}

// parseMountpoint extracts the quoted path from pct mount output, e.g.
// "mounted CT 105 in '/var/lib/lxc/105/rootfs'". Returns "" when no quoted
// path is present.
func parseMountpoint(out []byte) string {
	s := string(out)
	start := strings.Index(s, "'")
	if start < 0 {
		return ""
	}
	end := strings.Index(s[start+1:], "'")
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// parseInterfaceAddress extracts the first IPv4 address from ip addr
// output. The address line looks like:
//
//	inet 192.168.4.50/24 brd 192.168.4.255 scope global dynamic eth0
func parseInterfaceAddress(out []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "inet" {
			continue
		}
		addr := strings.SplitN(fields[1], "/", 2)[0]
		if net.ParseIP(addr) != nil {
			return addr
		}
	}
	return ""
}
