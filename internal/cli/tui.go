package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qrterm/qrterm/pkg/qr"
	"github.com/qrterm/qrterm/pkg/render/term"
)

// tuiCommand creates the tui command for interactive live preview.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactively preview QR codes as you type",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := qr.ParseLevel(c.Config.Level)
			if err != nil {
				return err
			}

			model := newPreviewModel(level, c.Config.QuietZone)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// previewModel - Live QR preview
// =============================================================================

// previewModel is the bubbletea model for the live preview. Every keystroke
// re-encodes the input and re-renders the code below the prompt.
type previewModel struct {
	input    []rune
	level    qr.RecoveryLevel
	renderer *term.Renderer
	code     string
	err      error
}

// newPreviewModel creates an empty preview using the configured defaults.
func newPreviewModel(level qr.RecoveryLevel, quietZone int) previewModel {
	return previewModel{
		level:    level,
		renderer: term.New(term.WithQuietZone(quietZone)),
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	default:
		return m, nil
	}

	return m.refresh(), nil
}

// refresh re-encodes the current input.
func (m previewModel) refresh() previewModel {
	m.code, m.err = "", nil

	text := string(m.input)
	if text == "" {
		return m
	}

	grid, err := qr.Encode(text, m.level)
	if err != nil {
		m.err = err
		return m
	}

	var b strings.Builder
	if err := m.renderer.Render(&b, grid); err != nil {
		m.err = err
		return m
	}
	m.code = b.String()
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("QR Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type to encode  ⏎/esc quit"))
	b.WriteString("\n\n")

	b.WriteString("> " + StyleValue.Render(string(m.input)) + "█\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleError.Render(m.err.Error()))
		b.WriteString("\n")
	case m.code != "":
		b.WriteString(m.code)
	default:
		b.WriteString(StyleDim.Render("(waiting for input)"))
		b.WriteString("\n")
	}

	return b.String()
}
