package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"poolwatch/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmitMsg asks the app to sign in, or to register first when Email is set.
type SubmitMsg struct {
	Email    string
	Username string
	Password string
	Register bool
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldEmail = iota
	fieldUsername
	fieldPassword
	fieldCount
)

// Model is the sign-in form. ctrl+r toggles registration, which adds the
// email field.
type Model struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	register bool
	busy     bool
	err      string
	width    int
	height   int
}

func New() Model {
	var m Model
	placeholders := [fieldCount]string{"email", "username", "password"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		m.inputs[i] = ti
	}
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'
	m.focus = fieldUsername
	m.inputs[fieldUsername].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// SetBusy shows that a request is in flight and blocks resubmission.
func (m *Model) SetBusy(busy bool) { m.busy = busy }

// SetError shows the session's error message under the form.
func (m *Model) SetError(msg string) { m.err = msg }

// Reset clears the password so it is not kept after a successful sign-in.
func (m *Model) Reset() {
	m.inputs[fieldPassword].SetValue("")
	m.err = ""
	m.busy = false
}

func (m Model) Registering() bool { return m.register }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+r":
			m.register = !m.register
			if !m.register && m.focus == fieldEmail {
				return m, m.setFocus(fieldUsername)
			}
			return m, nil
		case "tab", "down":
			return m, m.setFocus(m.next(1))
		case "shift+tab", "up":
			return m, m.setFocus(m.next(-1))
		case "enter":
			if m.focus != fieldPassword {
				return m, m.setFocus(m.next(1))
			}
			if m.busy {
				return m, nil
			}
			submit := SubmitMsg{
				Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
				Password: m.inputs[fieldPassword].Value(),
				Register: m.register,
			}
			if m.register {
				submit.Email = strings.TrimSpace(m.inputs[fieldEmail].Value())
			}
			m.busy = true
			m.err = ""
			return m, func() tea.Msg { return submit }
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) next(step int) int {
	first := fieldUsername
	if m.register {
		first = fieldEmail
	}
	n := m.focus + step
	if n >= fieldCount {
		n = first
	}
	if n < first {
		n = fieldCount - 1
	}
	return n
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m.inputs[field].Focus()
}

func (m Model) View() string {
	var sb strings.Builder
	title := "Sign in"
	if m.register {
		title = "Create account"
	}
	sb.WriteString(theme.Title.Render("poolwatch · "+title) + "\n\n")
	for i, input := range m.inputs {
		if i == fieldEmail && !m.register {
			continue
		}
		marker := "  "
		if i == m.focus {
			marker = theme.Hot.Render("› ")
		}
		sb.WriteString(marker + input.View() + "\n")
	}
	sb.WriteString("\n")
	switch {
	case m.busy:
		sb.WriteString(theme.Dim.Render("working…") + "\n")
	case m.err != "":
		sb.WriteString(theme.Error.Render(m.err) + "\n")
	}
	sb.WriteString(theme.Dim.Render("enter: submit  tab: next field  ctrl+r: toggle register  ctrl+c: quit"))

	form := theme.PaneActive.Width(56).Render(sb.String())
	if m.width == 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
