// Package report renders a deck snapshot as a markdown document. The
// template is customizable; the embedded default covers the overdue
// and per-user sections.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/robby/deckctl/internal/deck"
)

//go:embed report.tmpl.md
var defaultTemplate string

// DefaultTemplate returns the embedded report template, for users who
// want to save and customize it.
func DefaultTemplate() string {
	return defaultTemplate
}

// Options selects which report sections are rendered.
type Options struct {
	Overdue bool
	Users   bool
}

// Data is the root object a report template is executed against.
type Data struct {
	GeneratedAt    time.Time
	Options        Options
	OverdueByBoard []deck.BoardCards
	Users          []deck.UserWithCards
}

// Build derives the template data from a deck snapshot.
func Build(d deck.Deck, opts Options) (Data, error) {
	users, err := deck.UsersWithCards(d)
	if err != nil {
		return Data{}, err
	}
	return Data{
		GeneratedAt:    time.Now().UTC(),
		Options:        opts,
		OverdueByBoard: deck.GroupByBoard(d.OverdueCards()),
		Users:          users,
	}, nil
}

// Render executes a report template with the given data. An empty
// source falls back to the embedded default template.
func Render(w io.Writer, source string, data Data) error {
	if source == "" {
		source = defaultTemplate
	}
	tmpl, err := template.New("report").Funcs(funcMap()).Parse(source)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"duedate": func(t *time.Time) string {
			if t == nil {
				return "no due date"
			}
			return t.Format("2006-01-02 15:04")
		},
		"wrap": func(width int, s string) string {
			return wordwrap.String(s, width)
		},
	}
}
