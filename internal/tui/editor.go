// Package tui is the terminal suffix-list editor behind `igridvu edit`:
// a bubbletea model over one suffix file, for fixing up a dataset over ssh
// where the GUI dialog is not available.
package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the editor state: the in-memory suffix list plus a cursor and an
// optional insert-mode text input.
type Model struct {
	path     string
	maxItems int

	suffixes []string
	cursor   int
	input    textinput.Model
	editing  bool
	modified bool
	status   string
	statusOK bool
}

// New loads the suffix file at path into a fresh editor model. A missing
// file starts the editor empty.
func New(path string, maxItems int) *Model {
	suffixes, truncated, err := dataset.ReadSuffixes(path, maxItems)
	m := &Model{
		path:     path,
		maxItems: maxItems,
		suffixes: suffixes,
		statusOK: true,
	}

	switch {
	case err != nil:
		m.status = "new file"
	case truncated:
		m.status = fmt.Sprintf("truncated to %d entries", maxItems)
		m.statusOK = false
		m.modified = true
	default:
		m.status = fmt.Sprintf("%d entries", len(suffixes))
	}

	ti := textinput.New()
	ti.Placeholder = "_pass.png"
	ti.CharLimit = 256
	m.input = ti
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		return m.updateInsert(keyMsg)
	}
	return m.updateNormal(keyMsg)
}

func (m *Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		suffix := strings.TrimRightFunc(m.input.Value(), unicode.IsSpace)
		if suffix != "" {
			if len(m.suffixes) >= m.maxItems {
				m.setStatus(fmt.Sprintf("limit of %d entries reached", m.maxItems), false)
			} else {
				m.suffixes = append(m.suffixes, suffix)
				m.cursor = len(m.suffixes) - 1
				m.modified = true
				m.setStatus("added "+suffix, true)
			}
		}
		m.input.SetValue("")
		m.input.Blur()
		m.editing = false
		return m, nil
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.suffixes)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a", "i":
		m.editing = true
		m.input.Focus()
		return m, textinput.Blink
	case "d", "x":
		if len(m.suffixes) > 0 {
			removed := m.suffixes[m.cursor]
			m.suffixes = append(m.suffixes[:m.cursor], m.suffixes[m.cursor+1:]...)
			if m.cursor >= len(m.suffixes) && m.cursor > 0 {
				m.cursor--
			}
			m.modified = true
			m.setStatus("removed "+removed, true)
		}
	case "J", "shift+down":
		if m.cursor < len(m.suffixes)-1 {
			m.suffixes[m.cursor], m.suffixes[m.cursor+1] = m.suffixes[m.cursor+1], m.suffixes[m.cursor]
			m.cursor++
			m.modified = true
		}
	case "K", "shift+up":
		if m.cursor > 0 {
			m.suffixes[m.cursor], m.suffixes[m.cursor-1] = m.suffixes[m.cursor-1], m.suffixes[m.cursor]
			m.cursor--
			m.modified = true
		}
	case "w", "s":
		if err := dataset.WriteSuffixes(m.path, m.suffixes); err != nil {
			m.setStatus("save failed: "+err.Error(), false)
		} else {
			m.modified = false
			m.setStatus(fmt.Sprintf("saved %d entries to %s", len(m.suffixes), m.path), true)
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string, ok bool) {
	m.status = text
	m.statusOK = ok
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("igridvu suffix editor"))
	b.WriteString(dimStyle.Render("  " + m.path))
	if m.modified {
		b.WriteString(modifiedStyle.Render("  [modified]"))
	}
	b.WriteString("\n\n")

	if len(m.suffixes) == 0 {
		b.WriteString(dimStyle.Render("  (no suffixes, press 'a' to add)"))
		b.WriteString("\n")
	}
	for i, suffix := range m.suffixes {
		if i == m.cursor && !m.editing {
			b.WriteString(cursorStyle.Render("> " + suffix))
		} else {
			b.WriteString("  " + suffix)
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\nadd: " + m.input.View() + "\n")
	}

	b.WriteString("\n")
	if m.statusOK {
		b.WriteString(statusStyle.Render(m.status))
	} else {
		b.WriteString(errorStyle.Render(m.status))
	}

	b.WriteString(helpStyle.Render(
		"\na add · d delete · J/K move · w write · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Suffixes returns the current list, exposed for tests.
func (m *Model) Suffixes() []string {
	return m.suffixes
}

// Modified reports whether there are unsaved edits.
func (m *Model) Modified() bool {
	return m.modified
}

// Run starts the editor for the suffix file at path.
func Run(path string, maxItems int) error {
	p := tea.NewProgram(New(path, maxItems))
	_, err := p.Run()
	return err
}
