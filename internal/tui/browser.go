// Package tui holds wmproj's interactive terminal surfaces: the project
// browser and the project picker.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what the user chose in the browser.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionEdit
)

// Result is the browser's outcome once it quits.
type Result struct {
	Action  Action
	Project string
}

// Entry is one project shown in the browser.
type Entry struct {
	Name string
	// Summary is the one-line description under the name.
	Summary string
	// Detail fills the preview pane. It may span several lines.
	Detail string
	// Invalid marks entries whose project file failed to parse.
	Invalid bool
}

func (e Entry) Title() string {
	if e.Invalid {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗") + " " + e.Name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●") + " " + e.Name
}

func (e Entry) Description() string { return e.Summary }

func (e Entry) FilterValue() string { return e.Name }

// Browser is the bubbletea model listing projects.
type Browser struct {
	list   list.Model
	result Result
	width  int
	height int
}

// NewBrowser builds a browser over entries in the given order.
func NewBrowser(entries []Entry) Browser {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Projects"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	b := Browser{list: l}
	b.resize(80, 24)
	return b
}

// Result reports what the user picked. It is only meaningful after the
// program has quit.
func (b Browser) Result() Result { return b.result }

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			b.result = Result{}
			return b, tea.Quit
		case "enter":
			if e, ok := b.list.SelectedItem().(Entry); ok {
				b.result = Result{Action: ActionStart, Project: e.Name}
				return b, tea.Quit
			}
			return b, nil
		case "e":
			if e, ok := b.list.SelectedItem().(Entry); ok {
				b.result = Result{Action: ActionEdit, Project: e.Name}
				return b, tea.Quit
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *Browser) resize(width, height int) {
	b.width = width
	b.height = height
	// Leave a line for the help bar.
	b.list.SetSize(b.leftWidth(), max(height-1, 1))
}

func (b Browser) leftWidth() int {
	return max(b.width*2/5, 20)
}

// View implements tea.Model.
func (b Browser) View() string {
	if b.width == 0 || b.height == 0 {
		return ""
	}

	left := lipgloss.NewStyle().
		Width(b.leftWidth()).
		Height(b.height - 1).
		Render(b.list.View())

	rightWidth := max(b.width-b.leftWidth()-2, 10)
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(b.height - 1).
		PaddingLeft(2).
		Render(b.preview())

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("enter start · e edit · ↑/↓ move · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (b Browser) preview() string {
	e, ok := b.list.SelectedItem().(Entry)
	if !ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
			Render("No projects. Create one with `wmproj new NAME`.")
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render(e.Name)
	return fmt.Sprintf("%s\n\n%s", title, e.Detail)
}

// RunBrowser shows the browser on the terminal and returns the user's choice.
func RunBrowser(entries []Entry) (Result, error) {
	final, err := tea.NewProgram(NewBrowser(entries), tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, fmt.Errorf("browser: %w", err)
	}
	b, ok := final.(Browser)
	if !ok {
		return Result{}, fmt.Errorf("browser: unexpected final model %T", final)
	}
	return b.Result(), nil
}
