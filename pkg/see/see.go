// Package see implements the static exchange evaluator: given a capture, it returns the net
// material outcome in centipawns of the full capture sequence on the destination square, as if
// both sides kept recapturing with their least valuable attacker until neither wants to
// continue.
package see

import "github.com/climblabs/corvid/pkg/board"

// Evaluate returns the net material swing of the capture sequence started by m, from the
// perspective of the side making m. A positive result means the exchange nets material; a
// negative result means the initiating side loses material if the opponent recaptures.
//
// It works outward in: swap assumes the side on move at each step plays on only when doing so
// doesn't lose material, so the recursion naturally stops the exchange at the right depth without
// a separate minimax pass over a flat gain list.
func Evaluate(b *board.Board, m board.Move) board.Score {
	turn := b.Turn()
	to := m.To

	occ := b.Occupied()
	if m.EnPassant {
		occ &^= board.BitMask(m.EPVictim)
	}

	occ &^= board.BitMask(m.From)

	captured := value(m.Captured)
	mover := value(movedPieceValue(m))
	return captured - swap(b, occ, to, turn.Opponent(), mover)
}

// swap returns the material side gains by recapturing the piece now sitting on `to`, worth
// atStake, assuming it continues optimally (declining to recapture, returning 0, whenever
// recapturing would lose material). Attackers are recomputed from scratch against the shrinking
// occupancy on every step rather than tracked incrementally, so a slider behind the piece that
// just captured is picked up automatically the moment the blocker's square leaves occ.
func swap(b *board.Board, occ board.Bitboard, to board.Square, side board.Color, atStake board.Score) board.Score {
	sq, piece, ok := leastValuableAttacker(b, attackersTo(b, occ, to), side)
	if !ok {
		return 0
	}
	occ &^= board.BitMask(sq)

	gain := atStake - swap(b, occ, to, side.Opponent(), value(piece))
	if gain < 0 {
		return 0
	}
	return gain
}

func movedPieceValue(m board.Move) board.Piece {
	if m.Promotion != board.NoPiece {
		return m.Promotion
	}
	return m.Piece
}

func value(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return board.PawnValue
	case board.Knight:
		return board.KnightValue
	case board.Bishop:
		return board.BishopValue
	case board.Rook:
		return board.RookValue
	case board.Queen:
		return board.QueenValue
	case board.King:
		return 20000
	default:
		return 0
	}
}

// attackersTo returns every piece of either color attacking sq given occupancy occ.
func attackersTo(b *board.Board, occ board.Bitboard, sq board.Square) board.Bitboard {
	var a board.Bitboard
	for c := board.ZeroColor; c < board.NumColors; c++ {
		a |= board.BishopAttackboard(occ, sq) & (b.Pieces(c, board.Bishop) | b.Pieces(c, board.Queen))
		a |= board.RookAttackboard(occ, sq) & (b.Pieces(c, board.Rook) | b.Pieces(c, board.Queen))
		a |= board.KnightAttackboard(sq) & b.Pieces(c, board.Knight)
		a |= board.KingAttackboard(sq) & b.Pieces(c, board.King)
		a |= board.PawnCaptureboard(c.Opponent(), board.BitMask(sq)) & b.Pieces(c, board.Pawn)
	}
	return a & occ
}

// leastValuableAttacker picks the cheapest attacker of color side from the attackers set.
func leastValuableAttacker(b *board.Board, attackers board.Bitboard, side board.Color) (board.Square, board.Piece, bool) {
	own := attackers & b.All(side)
	if own == 0 {
		return 0, board.NoPiece, false
	}
	for _, p := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		bb := own & b.Pieces(side, p)
		if bb != 0 {
			return bb.LSB(), p, true
		}
	}
	return 0, board.NoPiece, false
}
