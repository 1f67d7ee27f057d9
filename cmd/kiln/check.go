package main

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the host control tools are available",
	Long: `Check that the Proxmox VE control tools kiln depends on resolve through
PATH and that the host API answers. Run this before the first provision
on a new host.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newHostClient()
		tools := client.Tools()

		missing := 0
		for _, tool := range []string{tools.PVESM, tools.PVESH, tools.PVEAM, tools.PCT, tools.Mke2fs} {
			path, err := exec.LookPath(tool)
			if err != nil {
				color.Red("✗ %s: not found in PATH", tool)
				missing++
				continue
			}
			fmt.Printf("✓ %s (%s)\n", tool, path)
		}
		if missing > 0 {
			return fmt.Errorf("%d host control tool(s) unavailable", missing)
		}

		version, err := client.Version(ctx)
		if err != nil {
			return fmt.Errorf("host API not answering: %w", err)
		}
		fmt.Printf("✓ Proxmox VE %s\n", version)

		fmt.Println("\nHost check successful!")
		return nil
	},
}
