package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robby/deckctl/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		dumpFlag     string
		templateFlag string
		noOverdue    bool
		noUsers      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown overview over all tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(cmd, dumpFlag)
			if err != nil {
				return err
			}
			data, err := report.Build(d, report.Options{
				Overdue: !noOverdue,
				Users:   !noUsers,
			})
			if err != nil {
				return err
			}
			var source string
			if templateFlag != "" {
				raw, err := os.ReadFile(templateFlag)
				if err != nil {
					return err
				}
				source = string(raw)
			}
			return report.Render(cmd.OutOrStdout(), source, data)
		},
	}

	cmd.Flags().StringVar(&dumpFlag, "dump", "", "Read the deck from a dump file instead of the API.")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Custom report template file.")
	cmd.Flags().BoolVar(&noOverdue, "no-overdue", false, "Skip the overdue section.")
	cmd.Flags().BoolVar(&noUsers, "no-users", false, "Skip the per-user section.")

	return cmd
}

func newReportTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report-template PATH",
		Short: "Save the default report template for customization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return os.WriteFile(args[0], []byte(report.DefaultTemplate()), 0o644)
		},
	}
}
