package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type scriptedAsker struct {
	asked   []string
	answers map[string]string
	fail    map[string]error
}

func (a *scriptedAsker) AskText(_ context.Context, q string) (string, error) {
	a.asked = append(a.asked, q)
	if err := a.fail[q]; err != nil {
		return "", err
	}
	return a.answers[q], nil
}

func TestRun_AnswersUntilQuit(t *testing.T) {
	asker := &scriptedAsker{answers: map[string]string{"What is Go?": "A language."}}
	var out bytes.Buffer

	err := Run(context.Background(), strings.NewReader("What is Go?\n\nquit\nnever asked\n"), &out, asker, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"What is Go?", ""}, asker.asked)
	assert.Equal(t, Banner+"\nYou: Bot: A language.\nYou: Bot: \nYou: ", out.String())
}

func TestRun_SendsLinesAsTyped(t *testing.T) {
	asker := &scriptedAsker{}

	err := Run(context.Background(), strings.NewReader("  spaced out  \nexit\n"), &bytes.Buffer{}, asker, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"  spaced out  "}, asker.asked)
}

func TestRun_QuitWordsAreCaseInsensitive(t *testing.T) {
	for _, word := range []string{"quit", "EXIT", "  Quit  ", "exit"} {
		asker := &scriptedAsker{}
		err := Run(context.Background(), strings.NewReader(word+"\nhello\n"), &bytes.Buffer{}, asker, nil)
		require.NoError(t, err)
		assert.Empty(t, asker.asked, word)
	}
}

func TestRun_ErrorIsReportedAndLoopContinues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	asker := &scriptedAsker{
		answers: map[string]string{"second": "ok"},
		fail:    map[string]error{"first": errors.New("dial tcp: timeout")},
	}
	var out bytes.Buffer

	err := Run(context.Background(), strings.NewReader("first\nsecond\nexit\n"), &out, asker, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, asker.asked)
	assert.Contains(t, out.String(), "Bot: error: dial tcp: timeout")
	assert.Contains(t, out.String(), "Bot: ok")
	assert.Equal(t, 1, logs.FilterMessage("question failed").Len())
}

func TestRun_EndOfInput(t *testing.T) {
	err := Run(context.Background(), strings.NewReader("hello"), &bytes.Buffer{}, &scriptedAsker{}, nil)
	assert.NoError(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, strings.NewReader("hello\n"), &bytes.Buffer{}, &scriptedAsker{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	asker := &scriptedAsker{}

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, r, io.Discard, asker, nil)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Empty(t, asker.asked)
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit("Exit"))
	assert.False(t, IsQuit("quitting"))
	assert.False(t, IsQuit(""))
}
