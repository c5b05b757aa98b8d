package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/couchcryptid/office-picker/internal/domain"
)

var errInputClosed = errors.New("input closed")

// terminal serializes prompts on a line-oriented terminal. Notification
// registration may prompt while the funnel is running, so each prompt holds
// the lock for its output and the answer.
type terminal struct {
	out   io.Writer
	lines chan string
	mu    sync.Mutex
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	t := &terminal{out: out, lines: make(chan string)}
	go func() {
		defer close(t.lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			t.lines <- sc.Text()
		}
	}()
	return t
}

func (t *terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}

// ask writes prompt and waits for one line of input.
func (t *terminal) ask(ctx context.Context, prompt string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.askLocked(ctx, prompt)
}

func (t *terminal) askLocked(ctx context.Context, prompt string) (string, error) {
	t.printf("%s", prompt)
	select {
	case line, ok := <-t.lines:
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *terminal) yesNo(ctx context.Context, question string) (bool, error) {
	answer, err := t.ask(ctx, question+" [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Confirm implements selection.Confirmer.
func (t *terminal) Confirm(ctx context.Context, f domain.Facility) (bool, error) {
	return t.yesNo(ctx, fmt.Sprintf("Select %q?", f.Name))
}

// AskNotificationPermission implements device.Prompter.
func (t *terminal) AskNotificationPermission(ctx context.Context) (bool, error) {
	return t.yesNo(ctx, "Allow notifications about your selected office?")
}
