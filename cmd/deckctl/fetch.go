package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robby/deckctl/internal/deck"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch PATH",
		Short: "Fetch all boards and save them as a dump file",
		Long: `Fetch retrieves every board visible to the configured user together
with its stacks, normalizes the result and writes it as a YAML dump.
Reports and queries can later run against the dump without network
access.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(cmd, "")
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return deck.WriteDump(f, d)
		},
	}
}
