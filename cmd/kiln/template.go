package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jbweber/kiln/internal/logging"
	"github.com/jbweber/kiln/internal/output"
	"github.com/jbweber/kiln/internal/provision"
	"github.com/jbweber/kiln/internal/template"
)

var (
	templateFamily       string
	templateVersion      string
	templateOutputFormat string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect container templates",
	Long:  `Inspect the OS container templates available on the host.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog templates for an OS family",
	Long: `Refresh the host's template catalog and list the entries matching an OS
family and version, ordered oldest to newest. The last entry is the one
the provision command would use. The downloaded column shows whether a
template is already present on local storage.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.ValidateFormat(templateOutputFormat); err != nil {
			return err
		}

		ctx := context.Background()
		client := newHostClient()
		log := logging.WithComponent("template")

		log.Info().Msg("Refreshing container template catalog")
		if err := client.RefreshTemplateIndex(ctx); err != nil {
			return err
		}

		available, err := client.ListAvailableTemplates(ctx, template.DefaultSection)
		if err != nil {
			return err
		}
		names := template.Candidates(available, templateFamily, templateVersion)

		local, err := client.ListLocalTemplates(ctx, template.DefaultStorage)
		if err != nil {
			return err
		}

		rows := make([]output.TemplateRow, 0, len(names))
		for _, name := range names {
			rows = append(rows, output.TemplateRow{
				Name:       name,
				Downloaded: slices.Contains(local, name),
			})
		}

		formatter, err := output.NewFormatter(output.Options{Format: output.Format(templateOutputFormat)})
		if err != nil {
			return err
		}
		text, err := formatter.FormatTemplates(rows)
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateListCmd.Flags().StringVar(&templateFamily, "family", provision.TemplateFamily, "OS template family")
	templateListCmd.Flags().StringVar(&templateVersion, "version", provision.TemplateVersion, "OS template version prefix")
	templateListCmd.Flags().StringVarP(&templateOutputFormat, "output", "o", "table", "output format (table, yaml, json)")
}
