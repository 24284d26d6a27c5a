package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ruteri/failsafe/interfaces"
	"golang.org/x/term"
)

// Terminal is the interactive operator console.
type Terminal struct {
	rl    *readline.Instance
	color bool
}

type readResult struct {
	line string
	err  error
}

// NewTerminal opens a readline session on stdin/stdout. History is disabled
// so that no answer outlives the prompt.
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Terminal{
		rl:    rl,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}, nil
}

// Close releases the terminal.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

// Stdout returns a writer that coordinates with the active prompt.
func (t *Terminal) Stdout() io.Writer {
	return t.rl.Stdout()
}

// Ask reads one line. Ctrl-C and EOF return interfaces.ErrInterrupted, a
// done ctx returns its error without waiting for the operator.
func (t *Terminal) Ask(ctx context.Context, p interfaces.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	results := make(chan readResult, 1)
	go func() {
		if p.Masked {
			secret, err := t.rl.ReadPassword(p.Label)
			results <- readResult{line: string(secret), err: err}
			return
		}
		t.rl.SetPrompt(p.Label)
		line, err := t.rl.Readline()
		results <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		if res.err != nil {
			if errors.Is(res.err, readline.ErrInterrupt) || errors.Is(res.err, io.EOF) {
				return "", interfaces.ErrInterrupted
			}
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return answer(res.line, p), nil
	}
}

// Reveal prints lines in the given style.
func (t *Terminal) Reveal(style interfaces.Style, lines ...string) {
	w := t.rl.Stdout()
	for _, line := range lines {
		fmt.Fprintln(w, paint(style, line, t.color))
	}
}

// Clear wipes the screen when stdout is a terminal.
func (t *Terminal) Clear() {
	if !t.color {
		return
	}
	fmt.Fprint(t.rl.Stdout(), ansiClear)
}

// answer applies the prompt default to an empty reply.
func answer(line string, p interfaces.Prompt) string {
	if !p.Masked {
		line = strings.TrimSpace(line)
	}
	if strings.TrimSpace(line) == "" {
		return p.Default
	}
	return line
}
