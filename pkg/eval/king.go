package eval

import "github.com/climblabs/corvid/pkg/board"

var pawnStormPenalty = [8]board.Score{0, 0, 0, -10, -30, -60, 0, 0}

// pawnShelterEval scores the pawn cover in front of c's king: each file the king straddles (its
// own plus the two adjacent, or just one adjacent on the edge files) wants an unadvanced pawn
// still standing in it. Missing or over-advanced shelter pawns are penalized, more so directly in
// front of the king.
func pawnShelterEval(b *board.Board, c board.Color) board.Score {
	kingSq := b.King(c)
	kFile := kingSq.File()

	npawns := 3
	if kFile == board.FileA || kFile == board.FileH {
		npawns = 2
	}

	shelterPawns := board.ShelterMask(c, kingSq) & b.Pieces(c, board.Pawn)

	var score board.Score
	mask := shelterPawns
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		if board.ForwardMask(c.Opponent(), sq)&shelterPawns != 0 {
			// A pawn further back on this file, nearer the king, is the one counted; don't
			// double-count.
			continue
		}
		npawns--

		var dist int
		if c == board.White {
			dist = int(sq.Rank())
		} else {
			dist = 7 - int(sq.Rank())
		}
		penalty := 36 - dist*dist
		if sq.File() == kFile {
			penalty *= 2
		}
		score -= board.Score(penalty)
	}

	score -= board.Score(npawns) * 36
	if board.ForwardMask(c, kingSq)&shelterPawns == 0 {
		score -= 36
	}
	if score == 0 {
		score = -11
	}
	return score
}

// pawnStormEval penalizes enemy pawns advancing on the king's own file and its neighbors, the
// storm that precedes an attack on a castled king.
func pawnStormEval(b *board.Board, c board.Color) board.Score {
	kingSq := b.King(c)
	mask := board.PasserMask(c, kingSq) & b.Pieces(c.Opponent(), board.Pawn)

	var score board.Score
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		rank := int(sq.Rank())
		if c == board.Black {
			rank = 7 - rank
		}
		score += pawnStormPenalty[rank]
	}
	return score
}

// getAttackMask returns every square color c attacks (pawns, knights, bishops, rooks, queens;
// castling, pawn pushes, and king moves don't count), and a running weight of how many of those
// attacks reach the ring around the opposing king.
func getAttackMask(b *board.Board, c board.Color) (board.Bitboard, int) {
	opp := c.Opponent()
	ka := kingRingMask[b.King(opp)]
	oppKingAdjacent := board.KingAttackboard(b.King(opp))
	occ := b.Occupied()

	var sum int
	attacks := board.PawnCaptureboard(c, b.Pieces(c, board.Pawn))

	mask := b.Pieces(c, board.Knight)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		tmp := board.KnightAttackboard(sq)
		if tmp&oppKingAdjacent != 0 {
			sum += 3
		}
		attacks |= tmp
	}

	mask = b.Pieces(c, board.Bishop)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		tmp := board.BishopAttackboard(occ, sq)
		if tmp&ka != 0 {
			sum += 3
		}
		attacks |= tmp
	}

	mask = b.Pieces(c, board.Rook)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		tmp := board.RookAttackboard(occ, sq)
		if tmp&ka != 0 {
			sum += 6
		}
		attacks |= tmp
	}

	mask = b.Pieces(c, board.Queen)
	for mask != 0 {
		var sq board.Square
		sq, mask = mask.PopSquare()
		tmp := board.QueenAttackboard(occ, sq)
		if tmp&ka != 0 {
			sum += 12
		}
		attacks |= tmp
	}

	return attacks, sum
}

// kingAttackEval scores how much pressure each side is putting on the other's king, gated on
// having enough material left (a queen, plus more than a queen's worth of force) to make a real
// attack plausible. Opening-only: a king hunt that doesn't land doesn't change the endgame score.
func kingAttackEval(b *board.Board) board.Score {
	var doKA [board.NumColors]bool
	for c := board.ZeroColor; c < board.NumColors; c++ {
		if material(b, c) > queenValue && b.Pieces(c, board.Queen) != 0 {
			doKA[c] = true
		}
	}
	if !doKA[board.White] && !doKA[board.Black] {
		return 0
	}

	var attacks [board.NumColors]board.Bitboard
	var sum [board.NumColors]int
	for c := board.ZeroColor; c < board.NumColors; c++ {
		attacks[c], sum[c] = getAttackMask(b, c)
	}

	var total board.Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		if !doKA[c] {
			continue
		}
		atk := attacks[c] | board.KingAttackboard(b.King(c))

		ring := kingRingMask[b.King(c.Opponent())] & atk
		counter := ring.PopCount()
		ring &^= attacks[c.Opponent()]
		counter += ring.PopCount()

		score := sum[c] + (sum[c]*counter)/12
		score = (score * score) / 11
		total += c.Unit() * board.Score(score)
	}
	return total
}
