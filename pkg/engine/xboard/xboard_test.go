package xboard_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/engine/xboard"
	"github.com/stretchr/testify/assert"
)

func recvUntil(t *testing.T, out <-chan string, contains string, timeout time.Duration) []string {
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
			if strings.Contains(line, contains) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q, got: %v", contains, lines)
			return nil
		}
	}
}

func TestProtoverAnnouncesFeatures(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	in := make(chan string, 10)
	d, out := xboard.NewDriver(ctx, e, in)

	in <- "xboard"
	in <- "protover 2"
	lines := recvUntil(t, out, "feature", 2*time.Second)
	assert.Contains(t, lines[len(lines)-1], "done=1")

	in <- "quit"
	<-d.Closed()
}

func TestPingIsEchoedWithSameToken(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	in := make(chan string, 10)
	d, out := xboard.NewDriver(ctx, e, in)

	in <- "ping 7"
	lines := recvUntil(t, out, "pong", 2*time.Second)
	assert.Equal(t, "pong 7", lines[len(lines)-1])

	in <- "quit"
	<-d.Closed()
}

func TestForceModeAcceptsMovesWithoutSearching(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "corvid")

	in := make(chan string, 10)
	d, out := xboard.NewDriver(ctx, e, in)

	in <- "force"
	in <- "e2e4"
	in <- "ping 1"
	lines := recvUntil(t, out, "pong 1", 2*time.Second)
	assert.Equal(t, "pong 1", lines[len(lines)-1])

	assert.Equal(t, board.Black, e.Board().Turn())

	in <- "quit"
	<-d.Closed()
}
