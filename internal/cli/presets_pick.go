package cli

import (
	"fmt"

	"draftkit/internal/preset"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var presetsPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a preset interactively and add it to the stack",
	RunE:  runPresetsPick,
}

func runPresetsPick(cmd *cobra.Command, args []string) error {
	store := newPresetStore()

	model := newPickModel(store)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}

	m := final.(pickModel)
	if m.err != nil {
		return m.err
	}
	if m.chosen == "" {
		styler.PrintInfo("No preset selected")
		return nil
	}
	if err := store.SaveActive(); err != nil {
		return err
	}
	styler.PrintSuccess(fmt.Sprintf("Added %s to the stack", m.chosen))
	return nil
}

// presetItem adapts a preset for the bubbles list component.
type presetItem struct {
	name        string
	description string
	source      string
	active      bool
}

func (i presetItem) Title() string {
	if i.active {
		return i.name + " (active)"
	}
	return i.name
}

func (i presetItem) Description() string {
	return fmt.Sprintf("%s • %s", i.source, i.description)
}

func (i presetItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.name, i.description)
}

// pickModel drives the preset picker. Enter activates the highlighted
// preset and quits; esc quits without touching the stack.
type pickModel struct {
	list   list.Model
	store  *preset.Store
	chosen string
	err    error
}

func newPickModel(store *preset.Store) pickModel {
	active := map[string]bool{}
	for _, name := range store.ActiveStack() {
		active[name] = true
	}

	items := make([]list.Item, 0)
	for _, p := range store.List() {
		items = append(items, presetItem{
			name:        p.Name,
			description: p.Description,
			source:      p.Source.String(),
			active:      active[p.Name],
		})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Pick a preset to add to the stack"
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return pickModel{list: l, store: store}
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	case tea.KeyMsg:
		// Let the list consume keys while its filter input is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(presetItem); ok {
				m.err = m.store.Activate(item.name)
				if m.err == nil {
					m.chosen = item.name
				}
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	return m.list.View()
}
