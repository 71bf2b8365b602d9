package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fileItem adapts a filename to the bubbles list item interface.
type fileItem string

func (f fileItem) FilterValue() string { return string(f) }

type fileDelegate struct {
	styles Styles
}

func (d fileDelegate) Height() int                             { return 1 }
func (d fileDelegate) Spacing() int                            { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	name := string(item.(fileItem))
	if index == m.Index() {
		fmt.Fprint(w, d.styles.Title.Render("> "+name))
		return
	}
	fmt.Fprint(w, d.styles.Body.Render("  "+name))
}

// PickerModel is the bubbletea model for choosing one QC file out of
// several found in the working directory.
type PickerModel struct {
	list     list.Model
	Choice   string
	Canceled bool
}

// NewPicker builds the picker over the candidate filenames.
func NewPicker(files []string, styles Styles) PickerModel {
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = fileItem(f)
	}

	l := list.New(items, fileDelegate{styles: styles}, 60, len(files)+6)
	l.Title = "Multiple QC files found; pick the one to scale"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Title
	l.Styles.TitleBar = lipgloss.NewStyle()

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd { return nil }

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Canceled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(fileItem); ok {
				m.Choice = string(item)
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View()
}

// PickFile runs the picker and returns the chosen filename. A cancel is
// reported as ok=false, not as an error.
func PickFile(files []string, styles Styles) (string, bool, error) {
	p := tea.NewProgram(NewPicker(files, styles))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("file picker failed: %w", err)
	}
	m := final.(PickerModel)
	if m.Canceled || m.Choice == "" {
		return "", false, nil
	}
	return m.Choice, true, nil
}
