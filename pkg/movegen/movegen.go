// Package movegen generates legal chess moves from a board.Board. Generation is legal-only: no
// move that would leave the mover in check is ever produced, which it achieves by computing a
// pin mask, a check-evader target mask, and (when in check) the set of checking pieces up front,
// rather than generating pseudo-legal moves and filtering them with a make/unmake probe per
// candidate.
package movegen

import "github.com/climblabs/corvid/pkg/board"

// Generate returns every legal move in b for the side to move.
func Generate(b *board.Board) *board.MoveList {
	ml := board.NewMoveList()
	gen(b, ml, false)
	return ml
}

// GenerateQuiescence returns captures and promotions; if the side to move is in check, it
// instead returns every legal evasion (quiet moves included), since quiescence must not stop
// searching in the middle of a check.
func GenerateQuiescence(b *board.Board) *board.MoveList {
	ml := board.NewMoveList()
	if b.IsChecked(b.Turn()) {
		gen(b, ml, false)
		return ml
	}
	gen(b, ml, true)
	return ml
}

// GenerateForPieceTo returns the legal moves of the given piece kind landing on `to`, used to
// parse short algebraic notation (where the origin square is implied by uniqueness) and to
// detect notation ambiguity.
func GenerateForPieceTo(b *board.Board, piece board.Piece, to board.Square) *board.MoveList {
	all := Generate(b)
	out := board.NewMoveList()
	for i := 0; i < all.Size(); i++ {
		m := all.At(i)
		if m.Piece == piece && m.To == to {
			out.Add(m)
		}
	}
	return out
}

// checkers returns the bitboard of opponent pieces currently attacking the side-to-move's king.
func checkers(b *board.Board) board.Bitboard {
	turn := b.Turn()
	opp := turn.Opponent()
	king := b.King(turn)
	occ := b.Occupied()

	var c board.Bitboard
	c |= board.PawnCaptureboard(turn, board.BitMask(king)) & b.Pieces(opp, board.Pawn)
	c |= board.KnightAttackboard(king) & b.Pieces(opp, board.Knight)
	c |= board.BishopAttackboard(occ, king) & b.BishopOrQueen(opp)
	c |= board.RookAttackboard(occ, king) & b.RookOrQueen(opp)
	return c
}

// pinnedMask returns, for each of the side to move's pieces that is pinned to its king by an
// opposing slider, the set of squares it may legally move to (the ray between king and attacker,
// inclusive of the attacker, exclusive of the king itself). Unpinned pieces have no entry (their
// mask defaults to FullBitboard when queried via allowedSquares).
func pinnedMask(b *board.Board) map[board.Square]board.Bitboard {
	turn := b.Turn()
	opp := turn.Opponent()
	king := b.King(turn)
	own := b.All(turn)
	occ := b.Occupied()

	pins := map[board.Square]board.Bitboard{}

	// A pinning slider is, by definition, not directly attacking the king (the pinned piece is in
	// the way), so this must walk every opponent slider of the right kind, not just the ones
	// BishopAttackboard/RookAttackboard(occ, king) already sees as attacking the king square.
	consider := func(attackers board.Bitboard, ray board.Piece) {
		for attackers != 0 {
			var sq board.Square
			sq, attackers = attackers.PopSquare()
			if !board.Attackboard(0, king, ray).IsSet(sq) {
				continue // not on a line this kind of slider moves along
			}
			between := board.BetweenMask(sq, king) &^ board.BitMask(king)
			blockers := between & occ
			if blockers.PopCount() != 1 {
				continue
			}
			if blockers&own == 0 {
				continue // the sole blocker is an enemy piece: no pin
			}
			pinnedSq := blockers.LSB()
			pins[pinnedSq] = between | board.BitMask(sq)
		}
	}
	consider(b.BishopOrQueen(opp), board.Bishop)
	consider(b.RookOrQueen(opp), board.Rook)
	return pins
}

func allowedSquares(pins map[board.Square]board.Bitboard, sq board.Square) board.Bitboard {
	if mask, ok := pins[sq]; ok {
		return mask
	}
	return board.FullBitboard
}

// evasionMask returns, when in check, the set of squares a non-king move may land on: the
// checking piece's square (capture it) plus, for a single sliding checker, the squares between
// checker and king (block it). Double check has no entry here -- gen handles that case by
// restricting to king moves only before consulting this mask.
func evasionMask(b *board.Board, checkersBB board.Bitboard) board.Bitboard {
	sq := checkersBB.LSB()
	_, p, _ := b.Square(sq)
	mask := board.BitMask(sq)
	switch p {
	case board.Bishop, board.Rook, board.Queen:
		king := b.King(b.Turn())
		mask |= board.BetweenMask(sq, king) &^ board.BitMask(king)
	}
	return mask
}
