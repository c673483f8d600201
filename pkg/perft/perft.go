// Package perft counts leaf nodes of the legal move tree to a fixed depth, exercising move
// generation, make/undo, and Zobrist hashing all at once: a wrong node count at a well-known
// position (e.g. KiwiPete) means one of those three is broken. Package perft also doubles as the
// engine's only fan-out: counting is split across a worker pool, one root move per job, each
// worker operating on its own board clone so no shared mutable board state is ever touched by more
// than one goroutine at a time.
package perft

import (
	"runtime"
	"sync"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/movegen"
)

// table is a perft-local transposition table: depth + key + leaf count per slot, probed without
// synchronization and written under a mutex. A probe that races a concurrent store can observe a
// torn combination of fields, but every probe re-checks the key (and depth) it read, so a torn
// read can only ever cause a spurious miss (falling back to a real recount), never a wrong count
// silently accepted -- the same trade the reference engine's own unsynchronized hash table makes
// under threading.
type table struct {
	mu      sync.Mutex
	entries []entry
	mask    uint64
}

type entry struct {
	key   board.ZobristKey
	depth int
	nodes uint64
}

// newTable allocates a memo table sized to the next power of two at or below size entries.
func newTable(size uint64) *table {
	n := uint64(1)
	for n*2 <= size {
		n *= 2
	}
	if n == 0 {
		n = 1
	}
	return &table{entries: make([]entry, n), mask: n - 1}
}

func (t *table) probe(key board.ZobristKey, depth int) (uint64, bool) {
	e := &t.entries[uint64(key)&t.mask]
	if e.key == key && e.depth == depth {
		return e.nodes, true
	}
	return 0, false
}

func (t *table) store(key board.ZobristKey, depth int, nodes uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := &t.entries[uint64(key)&t.mask]
	if depth >= e.depth {
		e.key = key
		e.depth = depth
		e.nodes = nodes
	}
}

// defaultTableSize matches the reference engine's PERFT_HASH_SIZE.
const defaultTableSize = 0x200000

// Count returns the number of leaf positions reachable from b in exactly depth plies of legal
// play. It runs single-threaded; use Parallel for the root-level fan-out and divide breakdown.
func Count(b *board.Board, depth int) uint64 {
	return count(b, depth, newTable(defaultTableSize))
}

func count(b *board.Board, depth int, t *table) uint64 {
	if depth == 0 {
		return 1
	}

	if depth > 1 {
		if n, ok := t.probe(b.Key(), depth); ok {
			return n
		}
	}

	moves := movegen.Generate(b)
	if depth == 1 || moves.Size() == 0 {
		return uint64(moves.Size())
	}

	var nodes uint64
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		b.MakeMove(m)
		nodes += count(b, depth-1, t)
		b.UndoMove()
	}

	if depth > 1 {
		t.store(b.Key(), depth, nodes)
	}
	return nodes
}

// Divided is one root move's contribution to a perft count, in root move generation order.
type Divided struct {
	Move  board.Move
	Nodes uint64
}

// Parallel counts leaf nodes the same as Count, but distributes the root moves across a pool of
// workers goroutines (runtime.GOMAXPROCS(0) if workers <= 0), each working on its own clone of b
// so the caller's board is left untouched and no board is ever shared between goroutines. The
// memo table is shared across workers, guarded as described on table. Returns the total node
// count and, if divide is true, the per-root-move breakdown in root move order.
func Parallel(b *board.Board, depth int, workers int, divide bool) (uint64, []Divided) {
	if depth <= 0 {
		return 0, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := movegen.Generate(b)
	n := moves.Size()
	if n == 0 {
		return 0, nil
	}

	jobMoves := make([]board.Move, 0, n)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		jobMoves = append(jobMoves, m)
	}

	results := make([]uint64, len(jobMoves))
	t := newTable(defaultTableSize)

	jobs := make(chan int, len(jobMoves))
	for i := range jobMoves {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			worker := b.Clone()
			for i := range jobs {
				worker.MakeMove(jobMoves[i])
				results[i] = count(worker, depth-1, t)
				worker.UndoMove()
			}
		}()
	}
	wg.Wait()

	var total uint64
	var out []Divided
	for i, m := range jobMoves {
		total += results[i]
		if divide {
			out = append(out, Divided{Move: m, Nodes: results[i]})
		}
	}
	return total, out
}
