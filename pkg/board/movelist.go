package board

import (
	"fmt"
	"math"
)

// MaxMoves bounds the number of moves a MoveList holds. Ordinary game positions stay well below
// it, but it is not a hard bound for chess: the known maximum for a legal position is 218.
const MaxMoves = 128

// MovePriority represents the move ordering priority: higher moves first.
type MovePriority int16

// MovePriorityFn assigns an ordering priority to a move.
type MovePriorityFn func(move Move) MovePriority

// First returns a MovePriorityFn that ranks the given move above everything else, falling back
// to fn for all other moves. Used to place the hash move or a killer first without a full sort.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first == m {
			return math.MaxInt16
		}
		return fn(m)
	}
}

// MoveList is a dense, fixed-capacity array of moves with a parallel priority array, used both
// as the move generator's output buffer and, via Next, as the search's move-ordering cursor. It
// never allocates past construction: Add panics if MaxMoves is exceeded.
type MoveList struct {
	moves      [MaxMoves]Move
	priorities [MaxMoves]MovePriority
	size       int
	next       int // selection-sort cursor consumed by Next
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move with priority 0. Use Prioritize to rank moves before consuming via Next.
func (ml *MoveList) Add(m Move) {
	if ml.size >= MaxMoves {
		panic("movelist: capacity exceeded")
	}
	ml.moves[ml.size] = m
	ml.priorities[ml.size] = 0
	ml.size++
}

// Prioritize assigns an ordering priority to every move currently in the list via fn. Call once
// after generation is complete and before consuming the list with Next.
func (ml *MoveList) Prioritize(fn MovePriorityFn) {
	for i := 0; i < ml.size; i++ {
		ml.priorities[i] = fn(ml.moves[i])
	}
}

// Next selects and returns the highest-priority remaining move via selection sort: it scans the
// unconsumed tail for the maximum, swaps it to the front of that tail, and returns it. Selection
// sort is intentional here over a full upfront sort -- most searches cut off long before the
// whole list is consumed, so the O(n) per-pick cost is paid only for moves actually examined.
func (ml *MoveList) Next() (Move, bool) {
	if ml.next >= ml.size {
		return Move{}, false
	}
	best := ml.next
	for i := ml.next + 1; i < ml.size; i++ {
		if ml.priorities[i] > ml.priorities[best] {
			best = i
		}
	}
	if best != ml.next {
		ml.moves[ml.next], ml.moves[best] = ml.moves[best], ml.moves[ml.next]
		ml.priorities[ml.next], ml.priorities[best] = ml.priorities[best], ml.priorities[ml.next]
	}
	m := ml.moves[ml.next]
	ml.next++
	return m, true
}

// Reset clears the list for reuse without releasing its backing array, avoiding per-node
// allocation during search.
func (ml *MoveList) Reset() {
	ml.size = 0
	ml.next = 0
}

// Size returns the number of moves added.
func (ml *MoveList) Size() int {
	return ml.size
}

// Remaining returns the number of moves not yet consumed via Next.
func (ml *MoveList) Remaining() int {
	return ml.size - ml.next
}

// At returns the i'th move as generated (ignores ordering/consumption), for iteration that does
// not need priority ordering (e.g. perft).
func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) String() string {
	return fmt.Sprintf("[size=%v, remaining=%v]", ml.size, ml.Remaining())
}
