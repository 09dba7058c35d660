package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"poolwatch/internal/ui/theme"
)

// PaletteSubmitMsg carries a confirmed command split into its name and
// arguments.
type PaletteSubmitMsg struct {
	Command string
	Args    []string
}

type PaletteCancelMsg struct{}

// Command describes one palette entry.
type Command struct {
	Name  string
	Usage string
	Admin bool
}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Background(theme.Surface).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
)

const maxHints = 5

// Palette is a command-palette overlay backed by bubbles/textinput. Admin
// commands are hidden from the hints unless the palette was opened by an
// admin; the app still checks permissions on submit.
type Palette struct {
	input    textinput.Model
	commands []Command
	admin    bool
	visible  bool
	width    int
}

func NewPalette(commands []Command) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command"
	ti.CharLimit = 128
	return Palette{input: ti, commands: commands}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open(admin bool) tea.Cmd {
	p.visible = true
	p.admin = admin
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			fields := strings.Fields(p.input.Value())
			p.close()
			if len(fields) == 0 {
				return p, func() tea.Msg { return PaletteCancelMsg{} }
			}
			submit := PaletteSubmitMsg{Command: strings.ToLower(fields[0]), Args: fields[1:]}
			return p, func() tea.Msg { return submit }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// Matches returns the usage lines whose command name starts with the typed
// prefix.
func (p Palette) Matches() []string {
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []string
	for _, c := range p.commands {
		if c.Admin && !p.admin {
			continue
		}
		if prefix != "" && !strings.HasPrefix(c.Name, prefix) {
			continue
		}
		out = append(out, c.Usage)
		if len(out) == maxHints {
			break
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if hints := p.Matches(); len(hints) > 0 {
		sb.WriteString("\n")
		for _, h := range hints {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
