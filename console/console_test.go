package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_AnswersAndDefaults(t *testing.T) {
	s := NewScript("3", "", "  7  ")
	ctx := context.Background()

	v, err := s.Ask(ctx, interfaces.Prompt{Label: "Users: ", Default: "1"})
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = s.Ask(ctx, interfaces.Prompt{Label: "Threshold: ", Default: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", v, "empty answer selects the default")

	v, err = s.Ask(ctx, interfaces.Prompt{Label: "Accounts: "})
	require.NoError(t, err)
	assert.Equal(t, "7", v, "visible answers are trimmed")

	_, err = s.Ask(ctx, interfaces.Prompt{Label: "Entropy: "})
	require.ErrorIs(t, err, interfaces.ErrInterrupted, "exhausted script acts like EOF")

	assert.Equal(t, []string{"Users: ", "Threshold: ", "Accounts: ", "Entropy: "}, s.Prompts())
	assert.Equal(t, 0, s.Remaining())
}

func TestScript_Transcript(t *testing.T) {
	var echo bytes.Buffer
	s := NewScript("secret words").Echo(&echo)

	s.Reveal(interfaces.StyleWarning, "first", "second")
	s.Clear()
	v, err := s.Ask(context.Background(), interfaces.Prompt{Label: "Passphrase: ", Masked: true})
	require.NoError(t, err)
	assert.Equal(t, "secret words", v)

	events := s.Events()
	require.Len(t, events, 4)
	assert.Equal(t, Event{Kind: EventReveal, Style: interfaces.StyleWarning, Text: "first"}, events[0])
	assert.Equal(t, EventClear, events[2].Kind)
	assert.Equal(t, "secret words", events[3].Answer)

	assert.Equal(t, []string{"first", "second"}, s.Lines())
	assert.Contains(t, echo.String(), "Passphrase: "+maskedEcho)
	assert.NotContains(t, echo.String(), "secret words", "masked answers are not echoed")
}

func TestScript_CanceledContext(t *testing.T) {
	s := NewScript("1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Ask(ctx, interfaces.Prompt{Label: "x"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Remaining(), "no answer consumed")
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte("# rehearsal\n3\n\n2\r\n"), 0600))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Remaining())

	v, err := s.Ask(context.Background(), interfaces.Prompt{Label: "a", Default: "d"})
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = s.Ask(context.Background(), interfaces.Prompt{Label: "b", Default: "d"})
	require.NoError(t, err)
	assert.Equal(t, "d", v)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "x", paint(interfaces.StyleWarning, "x", false))
	assert.Equal(t, ansiRed+"x"+ansiReset, paint(interfaces.StyleWarning, "x", true))
	assert.Equal(t, ansiBlue+"x"+ansiReset, paint(interfaces.StyleInfo, "x", true))
	assert.Equal(t, ansiGreen+"x"+ansiReset, paint(interfaces.StyleSuccess, "x", true))
	assert.Equal(t, "x", paint(interfaces.StylePlain, "x", true))
}
