package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerItem is a plain string entry for bubbles/list.
type pickerItem string

func (i pickerItem) FilterValue() string { return string(i) }

// pickerDelegate renders one entry per line with a selection marker.
type pickerDelegate struct{}

func (d pickerDelegate) Height() int                             { return 1 }
func (d pickerDelegate) Spacing() int                            { return 0 }
func (d pickerDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(pickerItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+string(i)))
		return
	}
	fmt.Fprint(w, NormalItemStyle.Render("  "+string(i)))
}

// newPicker builds a filterable single-choice list over titles.
func newPicker(title string, entries []string) list.Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = pickerItem(entry)
	}
	l := list.New(items, pickerDelegate{}, 60, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle
	return l
}
