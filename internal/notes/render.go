package notes

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer prints release notes with terminal styling
type Renderer struct {
	out     io.Writer
	heading lipgloss.Style
	code    lipgloss.Style
	bullet  lipgloss.Style
	table   lipgloss.Style
}

// NewRenderer creates a Renderer writing to out. Styling adapts to out:
// a non-terminal writer receives plain text.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)

	return &Renderer{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}),
		code:    r.NewStyle().Faint(true).TabWidth(lipgloss.NoTabConversion),
		bullet:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}),
		table:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}),
	}
}

// Render translates body and applies styling
func (r *Renderer) Render(body string) (string, error) {
	plain, err := Translate(Events(body))
	if err != nil {
		return "", fmt.Errorf("render release notes: %w", err)
	}
	return r.style(plain), nil
}

// Print renders body and writes it after a blank line
func (r *Renderer) Print(body string) error {
	styled, err := r.Render(body)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.out, "\n%s\n", styled)
	return err
}

// style decorates translated text line by line
func (r *Renderer) style(plain string) string {
	lines := strings.Split(plain, "\n")
	inCode := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCode = !inCode
			lines[i] = r.code.Render(line)
		case inCode:
			if line != "" {
				lines[i] = r.code.Render(line)
			}
		case strings.HasPrefix(line, "#"):
			lines[i] = r.heading.Render(line)
		case strings.HasPrefix(line, "|"):
			lines[i] = r.table.Render(line)
		default:
			trimmed := strings.TrimLeft(line, " ")
			if strings.HasPrefix(trimmed, "* ") {
				indent := line[:len(line)-len(trimmed)]
				lines[i] = indent + r.bullet.Render("*") + trimmed[1:]
			}
		}
	}

	return strings.Join(lines, "\n")
}
