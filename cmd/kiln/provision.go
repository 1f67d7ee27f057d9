package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jbweber/kiln/internal/logging"
	"github.com/jbweber/kiln/internal/provision"
	"github.com/jbweber/kiln/internal/storage"
	"github.com/jbweber/kiln/internal/template"
)

var provisionSetupScript string

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision the UniFi Network Controller container",
	Long: `Provision a new LXC container running the UniFi Network Controller.

The container profile is fixed: Debian template, 8 GB root filesystem,
2048 MB memory with equal swap, one DHCP interface on vmbr0, hostname
UnifiNetworkController. The storage pool is picked automatically when
only one qualifies; otherwise an interactive menu asks.

Any failure rolls back the steps already completed, so a failed run
leaves no container and no allocated disk behind.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newHostClient()

		if err := client.VerifyTools(); err != nil {
			return err
		}

		script := cfg.SetupScript
		if provisionSetupScript != "" {
			script = provisionSetupScript
		}
		if _, err := os.Stat(script); err != nil {
			return fmt.Errorf("setup script not usable: %w", err)
		}

		log := logging.WithComponent("storage")
		log.Info().Msg("Querying storage pools for container root filesystems")
		pools, err := client.ListStoragePools(ctx, "rootdir")
		if err != nil {
			return err
		}
		pool, err := storage.Select(pools, storage.SurveyPrompt)
		if err != nil {
			return err
		}
		log.Info().Str("pool", pool.Name).Str("kind", pool.Kind).Msg("Using storage pool")

		resolver := template.NewResolver(client, logging.WithComponent("template"))
		tmpl, err := resolver.Resolve(ctx, provision.TemplateFamily, provision.TemplateVersion)
		if err != nil {
			return err
		}

		prov := provision.New(client, logging.WithComponent("provision"), provision.Options{SetupScript: script})
		result, err := prov.Run(ctx, pool, tmpl)
		if err != nil {
			return err
		}

		fmt.Println()
		color.Green("✓ Container %d provisioned", result.CTID)
		fmt.Println("\nThe UniFi Network Controller should be reachable shortly at:")
		for _, endpoint := range result.Endpoints {
			fmt.Printf("    %s\n", color.CyanString(endpoint))
		}
		fmt.Println("\nThe controller can take a few minutes to come up on first start.")
		return nil
	},
}

func init() {
	provisionCmd.Flags().StringVar(&provisionSetupScript, "setup-script", "", "path to the controller setup script (overrides config)")
}
