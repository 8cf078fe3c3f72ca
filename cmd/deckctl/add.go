package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/robby/deckctl/internal/tui"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Interactively add a new card to the deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			model := tui.NewAddModel(cmd.Context(), newClient(cfg))
			p := tea.NewProgram(model)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("program error: %w", err)
			}
			result, ok := final.(tui.AddModel)
			if !ok {
				return nil
			}
			if result.Err() != nil {
				return result.Err()
			}
			if card := result.Card(); card != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Created card %d: %s\n", card.ID, card.Title)
			}
			return nil
		},
	}
}
