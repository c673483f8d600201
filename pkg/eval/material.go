package eval

import "github.com/climblabs/corvid/pkg/board"

// Piece values used for the static evaluation's material term. These differ slightly from
// board.PawnValue and friends (which exist for insufficient-material detection and SEE victim
// ordering): the pawn value alone is tapered, heavier in the endgame, matching classical endgame
// theory where a pawn's promotion threat grows as pieces come off.
const (
	pawnValueOp board.Score = 70
	pawnValueEg board.Score = 90
	knightValue board.Score = 325
	bishopValue board.Score = 326
	rookValue   board.Score = 500
	queenValue  board.Score = 975
)

// material returns color c's non-pawn material total, untapered (it's the same figure in the
// opening and the endgame): pawns are scored separately since their value is tapered.
func material(b *board.Board, c board.Color) board.Score {
	var total board.Score
	total += board.Score(b.Pieces(c, board.Knight).PopCount()) * knightValue
	total += board.Score(b.Pieces(c, board.Bishop).PopCount()) * bishopValue
	total += board.Score(b.Pieces(c, board.Rook).PopCount()) * rookValue
	total += board.Score(b.Pieces(c, board.Queen).PopCount()) * queenValue
	return total
}
