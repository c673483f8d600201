// Package eval implements corvid's static evaluation: material, tapered piece-square tables,
// mobility, king safety, and pawn structure (including passed pawns), combined with a phase-based
// taper between opening and endgame terms.
package eval

import "github.com/climblabs/corvid/pkg/board"

// Evaluator holds the pawn hash table a search shares across a full game; it has no other state
// and is safe to reuse position after position.
type Evaluator struct {
	pawns *PawnHash
}

// NewEvaluator allocates an evaluator with a fresh pawn hash.
func NewEvaluator() *Evaluator {
	return &Evaluator{pawns: NewPawnHash()}
}

// Evaluate returns a static score for b from the perspective of the side to move: positive means
// that side stands better. The position must not be in check (quiescence search should never call
// this on a position with a pending check evasion).
func (e *Evaluator) Evaluate(b *board.Board) board.Score {
	var op, eg board.Score

	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := colorSign(c)

		m := material(b, c)
		op += sign * m
		eg += sign * m

		if material(b, c.Opponent()) > queenValue && b.Pieces(c.Opponent(), board.Queen) != 0 {
			op += sign * pawnShelterEval(b, c)
			op += sign * pawnStormEval(b, c)
		}

		pop, peg := evalPieces(b, c)
		op += sign * pop
		eg += sign * peg

		bishops := b.Pieces(c, board.Bishop)
		if bishops&whiteSquares != 0 && bishops&blackSquares != 0 {
			op += sign * doubleBishopsOp
			eg += sign * doubleBishopsEg
		}
	}

	pop, peg := e.pawns.evalPawns(b)
	op += pop
	eg += peg

	op += kingAttackEval(b)

	score := taper(b.Phase(), op, eg)
	return b.Turn().Unit() * score
}

// evalPieces scores every knight, bishop, rook, queen, and the king of color c.
func evalPieces(b *board.Board, c board.Color) (op, eg board.Score) {
	mask := b.Pieces(c, board.Knight)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		dop, deg := knightEval(b, c, sq)
		op += dop
		eg += deg
	}

	mask = b.Pieces(c, board.Bishop)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		dop, deg := bishopEval(b, c, sq)
		op += dop
		eg += deg
	}

	mask = b.Pieces(c, board.Rook)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		dop, deg := rookEval(b, c, sq)
		op += dop
		eg += deg
	}

	mask = b.Pieces(c, board.Queen)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		dop, deg := queenEval(b, c, sq)
		op += dop
		eg += deg
	}

	kop, keg := kingEval(c, b.King(c))
	op += kop
	eg += keg

	return op, eg
}
