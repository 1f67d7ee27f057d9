// Package pve provides a client for driving a Proxmox VE host through its
// control tools.
//
// This package wraps the host CLIs to provide:
//   - Storage queries and volume lifecycle (pvesm status, alloc, free, path, list)
//   - Container template catalog access (pveam update, available, list, download)
//   - Container lifecycle (pct create, mount, unmount, start, stop, destroy)
//   - In-container operations (pct push, pct exec)
//   - Cluster queries (pvesh get /cluster/nextid, /version)
//
// The Client type is the only place kiln executes host commands. Output
// parsing lives in parse.go, so the text formats of the individual tools
// are isolated from everything built on top.
//
// Command Execution:
//
// All commands run through the Runner interface. The production runner
// executes via os/exec, captures stdout and stderr separately, and folds
// the stderr tail into the returned error so failures carry the tool's
// own diagnostic:
//
//	client := pve.New(pve.DefaultTools())
//	pools, err := client.ListStoragePools(ctx, "rootdir")
//	if err != nil {
//	    return err // "pvesm status ...: exit status 2: <stderr detail>"
//	}
//
// Consumer-Side Interfaces:
//
// This package does not define interfaces for its own client. Consumers
// (internal/provision, internal/template) define their own narrow
// interfaces naming only the operations they need; *Client satisfies
// those implicitly, which keeps provisioning logic testable without a
// Proxmox host.
package pve
