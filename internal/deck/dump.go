package deck

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteDump serializes a deck snapshot as YAML. A dump replaces a live
// fetch for offline report generation; reloading it yields a deck whose
// derived views match the original.
func WriteDump(w io.Writer, d Deck) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding deck dump: %w", err)
	}
	return enc.Close()
}

// ReadDump loads a deck snapshot written by WriteDump.
func ReadDump(r io.Reader) (Deck, error) {
	var d Deck
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Deck{}, fmt.Errorf("decoding deck dump: %w", err)
	}
	return d, nil
}
