package console_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/engine/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, out <-chan string, until string, timeout time.Duration) []string {
	t.Helper()

	deadline := time.After(timeout)
	var lines []string
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
			if strings.Contains(line, until) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q, got: %v", until, lines)
			return nil
		}
	}
}

func TestConsolePrintsBoardOnStartupAndMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	in := make(chan string, 10)
	d, out := console.NewDriver(ctx, e, in)

	banner := drain(t, out, "fen:", 2*time.Second)
	require.NotEmpty(t, banner)
	assert.Contains(t, banner[0], "engine test")

	in <- "e2e4"
	moved := drain(t, out, "fen:", 2*time.Second)
	assert.Contains(t, strings.Join(moved, "\n"), "4P3")

	in <- "quit"
	<-d.Closed()
}

func TestConsoleRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	in := make(chan string, 10)
	d, out := console.NewDriver(ctx, e, in)
	drain(t, out, "fen:", 2*time.Second)

	in <- "e2e5"
	lines := drain(t, out, "invalid move", 2*time.Second)
	assert.Contains(t, lines[len(lines)-1], "invalid move")

	in <- "quit"
	<-d.Closed()
}
