package board

import "fmt"

// PositionInfo captures everything about a position that Board cannot cheaply recompute when
// undoing a move: it is pushed onto Board's arena-backed history stack by MakeMove/MakeNull and
// popped by UndoMove/UndoNull. The piece placement itself is not duplicated here -- Board's
// bitboards and mailbox are mutated in place and restored by replaying the move in reverse.
type PositionInfo struct {
	Castling       Castling
	EnPassant      Square
	EnPassantValid bool
	FiftyMove      int
	InCheck        bool

	Move Move // the move that produced this position (NullMove for the root / a pass)

	Key     ZobristKey
	PawnKey PawnZobristKey
}

// HasEnPassant reports whether an en-passant capture is available in this position.
func (pi PositionInfo) HasEnPassant() (Square, bool) {
	return pi.EnPassant, pi.EnPassantValid
}

func (pi PositionInfo) String() string {
	ep := "-"
	if pi.EnPassantValid {
		ep = pi.EnPassant.String()
	}
	return fmt.Sprintf("{castling=%v ep=%v fifty=%v check=%v move=%v key=%x}",
		pi.Castling, ep, pi.FiftyMove, pi.InCheck, pi.Move, pi.Key)
}
