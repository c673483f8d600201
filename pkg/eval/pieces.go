package eval

import "github.com/climblabs/corvid/pkg/board"

// knightEval scores a knight's piece-square placement, mobility, and outpost bonus (a per-square
// bonus for advanced squares, given only when a friendly pawn defends the knight and doubled when
// two do; enemy pawns that could attack the square are not considered).
func knightEval(b *board.Board, c board.Color, sq board.Square) (op, eg board.Score) {
	rsq := relative(sq, c)
	op += pcsqKnightOp[rsq]
	eg += pcsqKnightEg[rsq]

	mob := board.Score((board.KnightAttackboard(sq) &^ b.All(c)).PopCount())
	mobility := (mob - 4) * 4
	op += mobility
	eg += mobility

	if bonus := knightOutpost[rsq]; bonus > 0 {
		supporters := b.Pieces(c, board.Pawn) & board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))
		if supporters != 0 {
			if supporters&(supporters-1) != 0 {
				bonus *= 2
			}
			op += bonus
			eg += bonus
		}
	}

	return op, eg
}

const bishopTrapMask board.Bitboard = 0x7e7e7e7e7e7e7e7e

// trappedBishopCount reports how exposed a bishop on sq is to being trapped by enemy pawns: 2 on
// the corners (a7/h7/b8/g8), 1 on the next diagonal step in (a6/h6), 0 otherwise.
func trappedBishopCount(b *board.Board, c board.Color, sq board.Square) int {
	oppPawns := b.Pieces(c.Opponent(), board.Pawn) & bishopTrapMask
	switch relative(sq, c) {
	case board.A7, board.B8, board.H7, board.G8:
		if board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))&oppPawns != 0 {
			return 2
		}
	case board.A6, board.H6:
		if board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))&oppPawns != 0 {
			return 1
		}
	}
	return 0
}

// blockedBishop reports the classic bishop-behind-its-own-pawn blockage on c1/f1, where the
// bishop's only diagonal escape is jammed by its own pawn and a piece sitting in front of it.
func blockedBishop(b *board.Board, c board.Color, sq board.Square) bool {
	switch relative(sq, c) {
	case board.C1:
		if b.Pieces(c, board.Pawn).IsSet(relative(board.D2, c)) {
			if _, _, ok := b.Square(relative(board.D3, c)); ok {
				return true
			}
		}
	case board.F1:
		if b.Pieces(c, board.Pawn).IsSet(relative(board.E2, c)) {
			if _, _, ok := b.Square(relative(board.E3, c)); ok {
				return true
			}
		}
	}
	return false
}

func bishopEval(b *board.Board, c board.Color, sq board.Square) (op, eg board.Score) {
	rsq := relative(sq, c)
	op += pcsqBishopOp[rsq]
	eg += pcsqBishopEg[rsq]

	occ := b.Occupied()
	mob := board.Score((board.BishopAttackboard(occ, sq) &^ b.All(c)).PopCount())
	mobility := (mob - 6) * 5
	op += mobility
	eg += mobility

	if tb := board.Score(trappedBishopCount(b, c, sq)) * trappedBishopPenalty; tb != 0 {
		op += tb
		eg += tb
	} else if blockedBishop(b, c, sq) {
		op += blockedBishopPenalty
	}

	return op, eg
}

// rookFileBonus scores a rook by whether its file is closed (blocked by an own pawn), semi-open
// (only enemy pawns on it), or fully open, weighted further by how that file sits relative to the
// enemy king.
func rookFileBonus(b *board.Board, c board.Color, sq board.Square) (op, eg board.Score) {
	file := sq.File()
	if b.Pieces(c, board.Pawn)&board.BitFile(file) != 0 {
		return rookClosedOp, rookClosedEg
	}

	kingFile := int(b.King(c.Opponent()).File())
	fileV := int(file)
	onKingFile := fileV == kingFile
	adjacentToKingFile := fileV == kingFile-1 || fileV == kingFile+1

	if b.Pieces(c.Opponent(), board.Pawn)&board.BitFile(file) != 0 {
		switch {
		case onKingFile:
			return rookSemiOpenSameOp, rookSemiOpenSameEg
		case adjacentToKingFile:
			return rookSemiOpenAdjacentOp, rookSemiOpenAdjacentEg
		}
		return 0, 0
	}

	switch {
	case onKingFile:
		return rookOpenSameOp, rookOpenSameEg
	case adjacentToKingFile:
		return rookOpenAdjacentOp, rookOpenAdjacentEg
	}
	return rookOpenOp, rookOpenEg
}

// blockedRook reports the rook-trapped-by-its-own-uncastled-king pattern on the corners.
func blockedRook(b *board.Board, c board.Color, sq board.Square) bool {
	kingSq := relative(b.King(c), c)
	switch relative(sq, c) {
	case board.A1, board.A2, board.B1:
		return kingSq == board.B1 || kingSq == board.C1
	case board.H1, board.H2, board.G1:
		return kingSq == board.F1 || kingSq == board.G1
	}
	return false
}

func rookEval(b *board.Board, c board.Color, sq board.Square) (op, eg board.Score) {
	op += pcsqRookOp[relative(sq, c)]

	fop, feg := rookFileBonus(b, c, sq)
	op += fop
	eg += feg

	if board.SeventhRankMask(c).IsSet(sq) &&
		(b.Pieces(c.Opponent(), board.Pawn)&board.SeventhRankMask(c) != 0 ||
			b.Pieces(c.Opponent(), board.King)&board.EighthRankMask(c) != 0) {
		op += rookOn7thOp
		eg += rookOn7thEg
	}

	occ := b.Occupied()
	mob := board.Score((board.RookAttackboard(occ, sq) &^ b.All(c)).PopCount())
	op += (mob - 7) * 2
	eg += (mob - 7) * 4

	if blockedRook(b, c, sq) {
		op += blockedRookPenalty
	}

	return op, eg
}

func queenEval(b *board.Board, c board.Color, sq board.Square) (op, eg board.Score) {
	rsq := relative(sq, c)
	op += pcsqQueenOp[rsq]
	eg += pcsqQueenEg[rsq]

	if board.SeventhRankMask(c).IsSet(sq) &&
		(b.Pieces(c.Opponent(), board.Pawn)&board.SeventhRankMask(c) != 0 ||
			b.Pieces(c.Opponent(), board.King)&board.EighthRankMask(c) != 0) {
		op += queenOn7thOp
		eg += queenOn7thEg
	}

	oppKing := b.King(c.Opponent())
	distFile := int(oppKing.File()) - int(sq.File())
	if distFile < 0 {
		distFile = -distFile
	}
	distRank := int(oppKing.Rank()) - int(sq.Rank())
	if distRank < 0 {
		distRank = -distRank
	}
	bonus := board.Score(10 - distFile - distRank)
	op += bonus
	eg += bonus

	return op, eg
}

func kingEval(c board.Color, sq board.Square) (op, eg board.Score) {
	rsq := relative(sq, c)
	return pcsqKingOp[rsq], pcsqKingEg[rsq]
}
