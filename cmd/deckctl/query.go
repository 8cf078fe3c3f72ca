package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robby/deckctl/internal/deck"
)

func newQueryCmd() *cobra.Command {
	var dumpFlag string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the deck content",
	}
	cmd.PersistentFlags().StringVar(&dumpFlag, "dump", "", "Read the deck from a dump file instead of the API.")

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List all users of the deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(cmd, dumpFlag)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(d.Users))
			for _, user := range d.Users {
				rows = append(rows, []string{user.Username, user.FullName})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Username", "Full Name"}, rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	overdueCmd := &cobra.Command{
		Use:   "overdue",
		Short: "List all overdue cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(cmd, dumpFlag)
			if err != nil {
				return err
			}
			rows := make([][]string, 0)
			for _, card := range d.OverdueCards() {
				assignees := make([]string, 0, len(card.AssignedUsers))
				for _, user := range card.AssignedUsers {
					assignees = append(assignees, user.Username)
				}
				rows = append(rows, []string{
					card.Name,
					card.BoardName,
					card.StackName,
					card.DueDate.Format("2006-01-02 15:04"),
					strings.Join(assignees, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Card", "Board", "Stack", "Due", "Assigned"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	userCmd := &cobra.Command{
		Use:   "user USERNAME",
		Short: "Show the card buckets of one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(cmd, dumpFlag)
			if err != nil {
				return err
			}
			buckets, err := deck.UsersWithCards(d)
			if err != nil {
				return err
			}
			for _, bucket := range buckets {
				if bucket.User.Username != args[0] {
					continue
				}
				printBucket(cmd, "In Progress", bucket.ProgressCards)
				printBucket(cmd, "Backlog", bucket.BacklogCards)
				printBucket(cmd, "Done", bucket.DoneCards)
				printBucket(cmd, "Other", bucket.OtherCards)
				return nil
			}
			return fmt.Errorf("no user %q in deck", args[0])
		},
	}

	cmd.AddCommand(usersCmd, overdueCmd, userCmd)
	return cmd
}

func printBucket(cmd *cobra.Command, name string, cards []deck.Card) {
	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		due := ""
		if card.DueDate != nil {
			due = card.DueDate.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{card.Name, card.BoardName, due})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", name, renderTable(
		[]string{"Card", "Board", "Due"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))
}
