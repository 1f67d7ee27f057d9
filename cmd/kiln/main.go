// Command kiln provisions a UniFi Network Controller LXC container on the
// Proxmox VE host it runs on.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbweber/kiln/internal/config"
	"github.com/jbweber/kiln/internal/logging"
	"github.com/jbweber/kiln/internal/pve"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgPath   string
	logLevel  string
	logFormat string

	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "Kiln - UniFi Network Controller provisioning for Proxmox VE",
	Long: `Kiln provisions a UniFi Network Controller LXC container on the
Proxmox VE host it runs on.

It picks a storage pool for the container root filesystem, resolves the
newest matching OS template, creates and starts the container, and runs
the controller install inside it. Failures roll back whatever was
already created, so a failed run leaves the host clean.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		logging.Init(logging.Config{
			Level:  cfg.Log.Level,
			Format: logging.Format(cfg.Log.Format),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a kiln config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(storageCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(checkCmd)
}

// newHostClient builds the host client from the loaded configuration.
func newHostClient() *pve.Client {
	return pve.New(pve.Tools{
		PCT:    cfg.Tools.PCT,
		PVESM:  cfg.Tools.PVESM,
		PVEAM:  cfg.Tools.PVEAM,
		PVESH:  cfg.Tools.PVESH,
		Mke2fs: cfg.Tools.Mke2fs,
	})
}
