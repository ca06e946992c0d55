// Package chat runs the line-oriented question loop.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"ragbot/internal/logging"
)

// Banner is printed once before the first prompt.
const Banner = "Chatbot ready! Type 'quit' to exit."

// Asker answers one question with the text to show.
type Asker interface {
	AskText(ctx context.Context, question string) (string, error)
}

// IsQuit reports whether line ends the session.
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return true
	}
	return false
}

// Run reads questions from in until quit, exit, end of input or ctx is done.
// Lines other than quit and exit are sent as typed. A failed question is
// logged and reported; the loop keeps going.
func Run(ctx context.Context, in io.Reader, out io.Writer, asker Asker, log *zap.Logger) error {
	log = logging.OrNop(log)
	lines, scanErr := scanLines(ctx, in)

	fmt.Fprintln(out, Banner)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "You: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			if err := ctx.Err(); err != nil {
				return err
			}
			return <-scanErr
		}
		if IsQuit(line) {
			return nil
		}
		answer, err := asker.AskText(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return ctx.Err()
			}
			log.Error("question failed", zap.String("question", line), zap.Error(err))
			fmt.Fprintf(out, "Bot: error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Bot: %s\n", answer)
	}
}

// scanLines feeds the lines of in to a channel so that a blocked read does
// not hold up cancellation. The channel is closed at end of input or when ctx
// is done; scanErr then carries the read error, if input ended.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()
	return lines, scanErr
}
