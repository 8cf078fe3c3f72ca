package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/robby/deckctl/internal/api"
	"github.com/robby/deckctl/internal/config"
	"github.com/robby/deckctl/internal/deck"
)

var configFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "deckctl",
		Short: "CLI tools for the Deck app of Nextcloud",
		Long: `deckctl is a collection of CLI tools for working with the Deck app
from Nextcloud: fetch boards, generate task reports, query overdue
cards and per-user workloads, and add cards interactively.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the configuration file.")

	rootCmd.AddCommand(
		newConfigCmd(),
		newFetchCmd(),
		newReportCmd(),
		newReportTemplateCmd(),
		newQueryCmd(),
		newBoardsCmd(),
		newAddCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newConfigCmd writes a default configuration file for a fresh install.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config PATH",
		Short: "Write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().Write(args[0])
		},
	}
}

func loadConfig() (config.Config, error) {
	path := configFlag
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Config{}, err
		}
		path = filepath.Join(home, ".config", "deckctl", "config.yaml")
	}
	return config.Load(path)
}

func newClient(cfg config.Config) *api.Client {
	return api.New(cfg.URL, cfg.User, cfg.Password, api.WithProgress(printProgress))
}

// printProgress reports each step of a bulk fetch on stderr, keeping
// stdout clean for report and query output.
func printProgress(current, total int, message string) {
	fmt.Fprintf(os.Stderr, "(%d/%d) %s\n", current+1, total, message)
}

// loadDeck builds the normalized snapshot either from a live fetch or
// from a previously saved dump file.
func loadDeck(cmd *cobra.Command, dumpPath string) (deck.Deck, error) {
	cfg, err := loadConfig()
	if err != nil {
		return deck.Deck{}, err
	}
	if dumpPath != "" {
		f, err := os.Open(dumpPath)
		if err != nil {
			return deck.Deck{}, err
		}
		defer f.Close()
		return deck.ReadDump(f)
	}
	boards, err := newClient(cfg).BoardsWithStacks(cmd.Context())
	if err != nil {
		return deck.Deck{}, err
	}
	return deck.Normalize(boards, cfg.StackNames()), nil
}
