// Package search implements iterative-deepening, principal-variation negamax search over
// corvid's legal move generator: null-move pruning, late move reductions, futility pruning,
// internal iterative deepening, killer-move ordering, quiescence, and a lock-free transposition
// table shared across a search's whole depth loop.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/climblabs/corvid/pkg/board"
)

// PV is the principal variation produced by one completed (or halted) iteration.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// Options hold the dynamic limits a caller places on a single iterative search.
type Options struct {
	DepthLimit int // 0 == no limit other than board.MaxPly
}

// ErrHalted indicates the search returned early because Handle.Halt was called.
var ErrHalted = errors.New("search halted")

// Searcher searches the game tree rooted at b to a fixed depth. deadline is a hard wall-clock
// cutoff the searcher polls directly (in addition to quit), matching the reference engine's
// belt-and-suspenders approach to time control: a timer closing quit might be delayed by
// scheduling, so the search also checks the clock itself. A single Searcher is never called
// concurrently with itself.
type Searcher interface {
	Search(ctx context.Context, b *board.Board, depth int, deadline time.Time, quit <-chan struct{}) (uint64, board.Score, []board.Move, error)
}

// Launcher starts a new iterative search.
type Launcher interface {
	// Launch starts searching from b, which it owns exclusively until the search ends or is
	// halted. It returns a Handle to manage the search and a channel of successively deeper PVs,
	// closed once the search is exhausted or halted.
	Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop a running search and retrieve the best result found so far.
type Handle interface {
	// Halt stops the search, if running, and returns the deepest completed PV. Idempotent.
	Halt() PV
}
