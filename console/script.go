package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ruteri/failsafe/interfaces"
)

// EventKind tells what a transcript Event records.
type EventKind int

const (
	EventAsk EventKind = iota
	EventReveal
	EventClear
)

// Event is one entry in a Script transcript.
type Event struct {
	Kind  EventKind
	Style interfaces.Style

	// Text is the prompt label for asks and the line for reveals.
	Text string

	// Answer is the value returned to the caller. Masked answers are recorded
	// as typed so tests can check them; echo output hides them.
	Answer string
}

// Script is a headless Console that replays answers in order.
type Script struct {
	mu      sync.Mutex
	answers []string
	next    int
	events  []Event
	echo    io.Writer
}

// NewScript returns a Script answering prompts with answers in order. An
// empty answer selects the prompt default. Running out of answers behaves
// like an operator pressing Ctrl-D.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// LoadScript reads answers from a file, one per line. Lines starting with
// "#" are comments; blank lines are empty answers.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	var answers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		answers = append(answers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return NewScript(answers...), nil
}

// Echo mirrors the transcript to w as it happens.
func (s *Script) Echo(w io.Writer) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echo = w
	return s
}

// Ask returns the next scripted answer.
func (s *Script) Ask(ctx context.Context, p interfaces.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.answers) {
		s.events = append(s.events, Event{Kind: EventAsk, Text: p.Label})
		s.printf("%s\n", p.Label)
		return "", interfaces.ErrInterrupted
	}

	reply := answer(s.answers[s.next], p)
	s.next++
	s.events = append(s.events, Event{Kind: EventAsk, Text: p.Label, Answer: reply})

	if p.Masked {
		s.printf("%s%s\n", p.Label, maskedEcho)
	} else {
		s.printf("%s%s\n", p.Label, reply)
	}
	return reply, nil
}

// Reveal records lines.
func (s *Script) Reveal(style interfaces.Style, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		s.events = append(s.events, Event{Kind: EventReveal, Style: style, Text: line})
		s.printf("%s\n", line)
	}
}

// Clear records a screen wipe.
func (s *Script) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, Event{Kind: EventClear})
	s.printf("\n")
}

// Events returns a copy of the transcript.
func (s *Script) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Lines returns every revealed line in order.
func (s *Script) Lines() []string {
	return s.texts(EventReveal)
}

// Prompts returns every asked label in order.
func (s *Script) Prompts() []string {
	return s.texts(EventAsk)
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers) - s.next
}

func (s *Script) texts(kind EventKind) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, e := range s.events {
		if e.Kind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}

func (s *Script) printf(format string, args ...any) {
	if s.echo != nil {
		fmt.Fprintf(s.echo, format, args...)
	}
}
