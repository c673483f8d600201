package search

import (
	"context"
	"sync"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Iterative is a search launcher that repeatedly calls Search at increasing depths, reporting
// each completed iteration's PV, until a depth limit, the clock's soft deadline, a found mate, or
// an explicit Halt stops it. Its hard deadline is enforced two ways: a timer closes quit, and
// Search itself polls the same deadline directly every 1024 nodes, so a delayed timer never lets
// the search overrun by more than a fraction of a millisecond's worth of nodes.
type Iterative struct {
	Search Searcher
	Clock  TimeControl
}

func (it Iterative) Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: make(chan struct{}),
		quit: make(chan struct{}),
	}
	go h.process(ctx, it.Search, it.Clock, b, opt, out)

	return h, out
}

type handle struct {
	init, quit        chan struct{}
	initialized, done atomic.Bool

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, s Searcher, tc TimeControl, b *board.Board, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	soft, strict := tc.Limits(b.Turn())
	start := time.Now()
	deadline := start.Add(strict)

	timer := time.AfterFunc(strict, func() { h.Halt() })
	defer timer.Stop()

	limit := opt.DepthLimit
	if limit <= 0 || limit > board.MaxPly {
		limit = board.MaxPly
	}

	depth := 1
	for !h.done.Load() && depth <= limit {
		iterStart := time.Now()

		nodes, score, moves, err := s.Search(ctx, b, depth, deadline, h.quit)
		if err != nil {
			if err == ErrHalted {
				return // Halt was called, or the hard deadline was reached mid-search.
			}
			logw.Errorf(ctx, "search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		pv := PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(iterStart),
		}

		logw.Debugf(ctx, "searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.markInitialized()

		if md, ok := score.MateDistance(); ok && md <= depth {
			return // a full-width forced mate was found; no deeper iteration can improve on it.
		}
		if time.Since(start) > soft {
			return
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		close(h.quit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}
