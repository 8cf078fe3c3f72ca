// Package mailcache persists the username-to-mail-address mapping used
// for mail notifications. The addresses are not part of the Deck API
// response and have to be queried per user from the provisioning API,
// so they are cached in a YAML file between runs.
package mailcache

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Cache maps usernames to mail addresses. It remembers the state it
// was loaded with so Save can skip the write when nothing changed.
type Cache struct {
	Mails map[string]string `yaml:"mails"`

	loaded map[string]string
}

// Open reads the cache file at path. A missing file yields an empty
// cache rather than an error.
func Open(path string) (*Cache, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Cache{Mails: make(map[string]string)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading mail cache: %w", err)
	}
	var c Cache
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing mail cache %s: %w", path, err)
	}
	if c.Mails == nil {
		c.Mails = make(map[string]string)
	}
	c.loaded = maps.Clone(c.Mails)
	return &c, nil
}

// Lookup returns the cached address for a username.
func (c *Cache) Lookup(username string) (string, bool) {
	addr, ok := c.Mails[username]
	return addr, ok
}

// Set records an address for a username.
func (c *Cache) Set(username, address string) {
	c.Mails[username] = address
}

// Save writes the cache back to path if its content changed since Open.
func (c *Cache) Save(path string) error {
	if maps.Equal(c.Mails, c.loaded) {
		return nil
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding mail cache: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing mail cache: %w", err)
	}
	c.loaded = maps.Clone(c.Mails)
	return nil
}
