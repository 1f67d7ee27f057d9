// Package provision creates the UniFi Network Controller container on a
// Proxmox VE host.
//
// One Run call provisions one container end to end: reserve an id,
// allocate and prepare the root filesystem on the chosen pool, create the
// container from the resolved template, mirror the host timezone into it,
// start it, and run the controller setup script inside it. The container
// profile (hostname, resources, network) is fixed; only the storage pool
// and template vary between runs.
//
// Error Handling:
//
// Run uses best-effort rollback on failure. Whatever was created before
// the failing step is removed again: the container if it exists (stopped
// first if running), otherwise any root volume already allocated to the
// reserved id. Rollback never fails a run further; its own errors are
// logged as warnings and the original error is returned. Rollback decides
// what exists by querying the host rather than trusting session
// bookkeeping.
//
// Context Support:
//
// All operations accept a context.Context. If the context is cancelled
// mid-run, rollback is still attempted with the same context.
package provision
