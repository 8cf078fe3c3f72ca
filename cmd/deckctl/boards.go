package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func newBoardsCmd() *cobra.Command {
	var openFlag int

	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List the boards visible to the configured user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)
			boards, err := client.Boards(cmd.Context())
			if err != nil {
				return err
			}

			if openFlag != 0 {
				for _, board := range boards {
					if board.ID == openFlag {
						url := fmt.Sprintf("%s/index.php/apps/deck/#/board/%d", cfg.URL, board.ID)
						return browser.OpenURL(url)
					}
				}
				return fmt.Errorf("no board with id %d", openFlag)
			}

			rows := make([][]string, 0, len(boards))
			for _, board := range boards {
				archived := ""
				if board.Archived {
					archived = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(board.ID),
					board.Title,
					board.Owner.DisplayName,
					archived,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Owner", "Archived"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&openFlag, "open", 0, "Open the board with this id in the browser.")
	return cmd
}
