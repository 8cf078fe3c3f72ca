// Package config loads and writes the YAML configuration file of the
// CLI. Only the three stack-name lists are consumed by the core; the
// remaining fields belong to the transport and reporting layers.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robby/deckctl/internal/deck"
)

// Config describes the configuration file of the application.
type Config struct {
	// URL is the base URL of the Nextcloud instance.
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Stack titles mapped to workflow states, matched case-sensitively
	// in backlog, progress, done order.
	BacklogStacks  []string `yaml:"backlog_stacks"`
	ProgressStacks []string `yaml:"progress_stacks"`
	DoneStacks     []string `yaml:"done_stacks"`

	// MailCachePath points to the username-to-address cache used by
	// mail notifications.
	MailCachePath string `yaml:"mail_cache_path,omitempty"`
}

// Default returns a configuration skeleton for a fresh install.
func Default() Config {
	return Config{
		URL:            "https://nc.example.com",
		User:           "usr",
		Password:       "secret",
		BacklogStacks:  []string{"Backlog"},
		ProgressStacks: []string{"In Progress"},
		DoneStacks:     []string{"Done"},
	}
}

// StackNames returns the workflow mapping consumed by the normalizer.
func (c Config) StackNames() deck.StackNames {
	return deck.StackNames{
		Backlog:  c.BacklogStacks,
		Progress: c.ProgressStacks,
		Done:     c.DoneStacks,
	}
}

// Load reads a configuration file from the given path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.URL == "" {
		return Config{}, fmt.Errorf("config %s: url must be set", path)
	}
	return cfg, nil
}

// Write saves the configuration to the given path.
func (c Config) Write(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
