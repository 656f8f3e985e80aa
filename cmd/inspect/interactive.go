package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vesselworks/wasm-bundle/loader"
	"github.com/vesselworks/wasm-bundle/unit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectModel struct {
	err      error
	bundle   *loader.LoadedBundle
	filename string
	units    []*unit.Unit
	visible  []*unit.Unit
	filter   textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateList modelState = iota
	stateFilter
	stateDetail
)

func newInspectModel(filename string) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "unit name"
	ti.Prompt = "/ "
	ti.Width = 40

	return &inspectModel{
		filename: filename,
		filter:   ti,
		state:    stateList,
	}
}

type loadedMsg struct {
	err    error
	bundle *loader.LoadedBundle
}

func (m *inspectModel) Init() tea.Cmd {
	return m.loadBundle
}

func (m *inspectModel) loadBundle() tea.Msg {
	ctx := context.Background()

	lb, err := loader.New().LoadAll(ctx, m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{bundle: lb}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.bundle != nil {
				m.bundle.Close(context.Background())
			}
			return m, tea.Quit

		case "q":
			if m.state != stateFilter {
				if m.bundle != nil {
					m.bundle.Close(context.Background())
				}
				return m, tea.Quit
			}

		case "/":
			if m.state == stateList {
				m.state = stateFilter
				m.filter.Focus()
				return m, nil
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateList:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateFilter:
				m.filter.Blur()
				m.state = stateList
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateList
			case stateFilter:
				m.filter.Blur()
				m.filter.SetValue("")
				m.applyFilter()
				m.state = stateList
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.bundle = msg.bundle
		m.units = msg.bundle.Matches
		m.visible = m.units
	}

	if m.state == stateFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	return m, nil
}

// applyFilter narrows the visible units to those containing the filter
// text, keeping the selection in range.
func (m *inspectModel) applyFilter() {
	query := m.filter.Value()
	if query == "" {
		m.visible = m.units
	} else {
		m.visible = nil
		for _, u := range m.units {
			if strings.Contains(u.Name, query) {
				m.visible = append(m.visible, u)
			}
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.bundle == nil {
		return "Loading bundle..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bundle Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList, stateFilter:
		if len(m.units) == 0 {
			b.WriteString("Bundle contains no compiled units.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString("No units match the filter.\n")
		}
		for i, u := range m.visible {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + u.Name))
			} else {
				b.WriteString(cursor + unitStyle.Render(u.Name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • q quit"))
		}

	case stateDetail:
		u := m.visible[m.selected]
		b.WriteString(unitStyle.Render(u.Name))
		b.WriteString("\n\n")
		b.WriteString(m.formatList("tags", u.Descriptor.Tags))
		b.WriteString(m.formatList("extends", u.Descriptor.Extends))
		b.WriteString(m.formatList("implements", u.Descriptor.Implements))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *inspectModel) formatList(label string, items []string) string {
	if len(items) == 0 {
		return fieldStyle.Render(label) + ": (none)\n"
	}
	return fieldStyle.Render(label) + ": " + strings.Join(items, ", ") + "\n"
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInspectModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
