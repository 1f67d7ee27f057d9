package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/kiln/internal/output"
)

var storageOutputFormat string

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect host storage",
	Long:  `Inspect the storage pools that can hold container root filesystems.`,
}

var storageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage pools eligible for container root filesystems",
	Long: `Show the storage pools advertising container root filesystem support,
with their backend kind, state, and free space. These are the pools the
provision command chooses between.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.ValidateFormat(storageOutputFormat); err != nil {
			return err
		}

		ctx := context.Background()
		client := newHostClient()

		pools, err := client.ListStoragePools(ctx, "rootdir")
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(output.Options{Format: output.Format(storageOutputFormat)})
		if err != nil {
			return err
		}
		text, err := formatter.FormatPools(output.PoolRows(pools))
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	storageCmd.AddCommand(storageStatusCmd)
	storageStatusCmd.Flags().StringVarP(&storageOutputFormat, "output", "o", "table", "output format (table, yaml, json)")
}
