// Package tui implements the interactive approval surfaces for the concept
// and artwork gates, plus non-interactive presenters for unattended runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orizehavi/listingforge/internal/approval"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Faint(true)
)

// approveModel is the bubbletea model for one approve/reject question.
// Rejection optionally collects a short note that is threaded back into the
// next generation attempt.
type approveModel struct {
	title   string
	body    string
	attempt int

	input    textinput.Model
	noting   bool
	done     bool
	aborted  bool
	decision approval.Decision
}

func newApproveModel(title, body string, attempt int) approveModel {
	ti := textinput.New()
	ti.Placeholder = "optional note for the next attempt"
	ti.CharLimit = 200
	ti.Width = 60
	return approveModel{
		title:   title,
		body:    body,
		attempt: attempt,
		input:   ti,
	}
}

func (m approveModel) Init() tea.Cmd {
	return nil
}

func (m approveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.noting {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.decision = approval.Decision{Approved: false, Feedback: strings.TrimSpace(m.input.Value())}
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.decision = approval.Decision{Approved: false}
			m.done = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.decision = approval.Decision{Approved: true}
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.noting = true
		return m, m.input.Focus()
	case "q", "ctrl+c", "esc":
		m.aborted = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m approveModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	header := m.title
	if m.attempt > 1 {
		header = fmt.Sprintf("%s (attempt %d)", m.title, m.attempt)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.body))
	b.WriteString("\n")

	if m.noting {
		b.WriteString(labelStyle.Render("Why reject it?"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: reject with note • esc: reject without note"))
	} else {
		b.WriteString(helpStyle.Render("y/enter: approve • n: reject and regenerate • q: abort run"))
	}
	b.WriteString("\n")
	return b.String()
}
