package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/jbweber/kiln/internal/logging"
)

var (
	destroyStorage string
	destroyYes     bool
)

var destroyCmd = &cobra.Command{
	Use:   "destroy <ctid>",
	Short: "Destroy a provisioned container",
	Long: `Destroy a container by numeric id: stop it if it runs, then remove it
and its root filesystem from the host.

With --storage, a leftover root volume still registered to the id is
freed even when the container itself no longer exists. That covers the
rare case where an interrupted run could not finish its own rollback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctid, err := strconv.Atoi(args[0])
		if err != nil || ctid <= 0 {
			return fmt.Errorf("invalid container id %q", args[0])
		}

		ctx := context.Background()
		client := newHostClient()
		log := logging.WithComponent("destroy")

		if !destroyYes {
			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Destroy container %d and its root filesystem?", ctid),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				if errors.Is(err, terminal.InterruptErr) {
					return errors.New("destroy cancelled")
				}
				return err
			}
			if !confirmed {
				fmt.Println("Aborted")
				return nil
			}
		}

		st, err := client.Status(ctx, ctid)
		if err != nil {
			return err
		}

		if st.Defined {
			// A filesystem left mounted by an interrupted run blocks
			// destroy; unmounting an unmounted container is harmless.
			if err := client.Unmount(ctx, ctid); err != nil {
				log.Debug().Err(err).Msg("Unmount skipped")
			}
			if st.Running {
				log.Info().Int("ctid", ctid).Msg("Stopping container")
				if err := client.Stop(ctx, ctid); err != nil {
					return err
				}
			}
			log.Info().Int("ctid", ctid).Msg("Destroying container")
			if err := client.DestroyContainer(ctx, ctid); err != nil {
				return err
			}
			fmt.Printf("✓ Container %d destroyed\n", ctid)
			return nil
		}

		if destroyStorage == "" {
			return fmt.Errorf("container %d does not exist (use --storage to free a leftover volume)", ctid)
		}

		vols, err := client.ListVolumes(ctx, destroyStorage, ctid)
		if err != nil {
			return err
		}
		if len(vols) == 0 {
			fmt.Printf("Nothing to clean up for container %d on %s\n", ctid, destroyStorage)
			return nil
		}
		for _, vol := range vols {
			log.Info().Str("volume", vol.VolID).Msg("Freeing volume")
			if err := client.FreeDisk(ctx, vol.VolID); err != nil {
				return err
			}
		}
		fmt.Printf("✓ Freed %d volume(s) for container %d\n", len(vols), ctid)
		return nil
	},
}

func init() {
	destroyCmd.Flags().StringVar(&destroyStorage, "storage", "", "also free leftover volumes for the id on this storage pool")
	destroyCmd.Flags().BoolVarP(&destroyYes, "yes", "y", false, "skip the confirmation prompt")
}
