// Package pause holds output on screen until the user presses a key.
package pause

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Prompt is shown while waiting
const Prompt = "Press any key to continue..."

// Gate blocks until a key press. There is no timeout.
type Gate struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// New creates a Gate reading from in and prompting on out.
// When in is a terminal, the wait is a raw-mode key read; otherwise it
// returns after one byte of input or at end of input.
func New(in io.Reader, out io.Writer) *Gate {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return &Gate{
		in:          in,
		out:         out,
		interactive: interactive,
	}
}

// Wait prints the prompt and blocks until a key is pressed
func (g *Gate) Wait(ctx context.Context) error {
	if g.interactive {
		return g.waitKey(ctx)
	}
	return g.waitInput()
}

// waitKey runs a one-shot bubbletea program. Bubbletea switches the terminal
// to raw mode and restores it on every exit path, including errors and panics.
func (g *Gate) waitKey(ctx context.Context) error {
	p := tea.NewProgram(
		keyModel{prompt: Prompt},
		tea.WithContext(ctx),
		tea.WithInput(g.in),
		tea.WithOutput(g.out),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wait for key press: %w", err)
	}

	_, _ = fmt.Fprintln(g.out)
	return nil
}

// waitInput covers piped or redirected stdin
func (g *Gate) waitInput() error {
	if _, err := fmt.Fprint(g.out, Prompt); err != nil {
		return fmt.Errorf("print prompt: %w", err)
	}
	if f, ok := g.out.(*os.File); ok {
		// Sync fails on terminals and pipes; the write above is unbuffered anyway.
		_ = f.Sync()
	}

	buf := make([]byte, 1)
	for {
		n, err := g.in.Read(buf)
		if n > 0 || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	_, _ = fmt.Fprintln(g.out)
	return nil
}

// keyModel quits on the first key press and ignores every other message
// (window resizes, focus changes, mouse events).
type keyModel struct {
	prompt  string
	pressed bool
}

func (m keyModel) Init() tea.Cmd {
	return nil
}

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.pressed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m keyModel) View() string {
	return m.prompt
}
