package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/seekerror/logw"
)

// Bound records how a stored score relates to the true value: exact (reusable outright, given
// sufficient depth), a lower bound (the search failed high: the true score is at least this
// good), or an upper bound (the search failed low: the true score is at most this good).
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results by position key so a transposition -- the same
// position reached by a different move order -- is scored once rather than re-searched. Must be
// thread-safe, though corvid's own search only ever probes and writes from one goroutine.
type TranspositionTable interface {
	// Read returns the bound, depth, score, and best move stored for key, if present.
	Read(key board.ZobristKey) (Bound, int, board.Score, board.Move, bool)
	// Write stores an entry, subject to the table's replacement policy.
	Write(key board.ZobristKey, bound Bound, ply, depth int, score board.Score, move board.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// metadata captures a node's precision and best move.
type metadata struct {
	bound      Bound
	from, to   board.Square
	promotion  board.Piece
	ply, depth uint16
}

// node is one transposition table entry.
type node struct {
	key   board.ZobristKey
	score board.Score
	md    metadata
}

// table is a lock-free transposition table: every slot is an atomically swapped pointer to an
// immutable node, so a Read racing a Write never observes a torn struct. 32 bytes/entry.
type table struct {
	table []*node
	mask  uint64
	used  uint64
}

// NewTranspositionTable allocates the largest power-of-2 entry count fitting in size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 5 - bits.LeadingZeros64(size)))

	logw.Infof(ctx, "allocating %vMB transposition table with %v entries", size>>20, n)

	return &table{
		table: make([]*node, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.table)) << 5
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.table))
}

func (t *table) Read(key board.ZobristKey) (Bound, int, board.Score, board.Move, bool) {
	idx := uint64(key) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[idx]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && ptr.key == key {
		move := board.Move{From: ptr.md.from, To: ptr.md.to, Promotion: ptr.md.promotion}
		return ptr.md.bound, int(ptr.md.depth), ptr.score, move, true
	}
	return 0, 0, 0, board.Move{}, false
}

func (t *table) Write(key board.ZobristKey, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
	idx := uint64(key) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[idx]))

	fresh := &node{
		key:   key,
		score: score,
		md: metadata{
			bound:     bound,
			from:      move.From,
			to:        move.To,
			promotion: move.Promotion,
			ply:       uint16(ply),
			depth:     uint16(depth),
		},
	}

	ptr := (*node)(atomic.LoadPointer(addr))
	for {
		if val(ptr) > val(fresh) {
			return false // skip: the existing entry is more valuable
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		}
		ptr = (*node)(atomic.LoadPointer(addr))
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// val orders nodes for replacement: prefer the deeper, more recently reached entry.
func val(n *node) uint16 {
	if n == nil {
		return 0
	}
	return n.md.ply + (n.md.depth << 1)
}

// WriteFilter is a predicate on the Write operation.
type WriteFilter func(key board.ZobristKey, bound Bound, ply, depth int, score board.Score, move board.Move) bool

// WriteLimited wraps a TranspositionTable and suppresses writes Filter rejects.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(key board.ZobristKey) (Bound, int, board.Score, board.Move, bool) {
	return w.TT.Read(key)
}

func (w WriteLimited) Write(key board.ZobristKey, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
	if w.Filter(key, bound, ply, depth, score, move) {
		return false
	}
	return w.TT.Write(key, bound, ply, depth, score, move)
}

func (w WriteLimited) Size() uint64  { return w.TT.Size() }
func (w WriteLimited) Used() float64 { return w.TT.Used() }

// NewMinDepthTranspositionTable rejects writes shallower than min, useful once entries below
// some depth aren't worth the cache pressure.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(key board.ZobristKey, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
				return depth < min
			},
			TT: NewTranspositionTable(ctx, size),
		}
	}
}

// NoTranspositionTable is a no-op table, useful for perft, which never wants search caching.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristKey) (Bound, int, board.Score, board.Move, bool) {
	return 0, 0, 0, board.Move{}, false
}

func (NoTranspositionTable) Write(board.ZobristKey, Bound, int, int, board.Score, board.Move) bool {
	return false
}

func (NoTranspositionTable) Size() uint64  { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
