package eval

import "github.com/climblabs/corvid/pkg/board"

// Evaluation weights, opening (op) and endgame (eg) pairs where tapering matters.
const (
	backwardPawnOp     board.Score = -8
	backwardPawnEg     board.Score = -10
	backwardOpenPawnOp board.Score = -16
	backwardOpenPawnEg board.Score = -10
	doubledPawnOp      board.Score = -10
	doubledPawnEg      board.Score = -20
	isolatedPawnOp     board.Score = -10
	isolatedPawnEg     board.Score = -20
	isolatedOpenPawnOp board.Score = -20
	isolatedOpenPawnEg board.Score = -20

	rookClosedOp           board.Score = -10
	rookClosedEg           board.Score = -10
	rookSemiOpenAdjacentOp board.Score = 10
	rookSemiOpenAdjacentEg board.Score = 0
	rookSemiOpenSameOp     board.Score = 20
	rookSemiOpenSameEg     board.Score = 0
	rookOpenOp             board.Score = 10
	rookOpenEg             board.Score = 10
	rookOpenAdjacentOp     board.Score = 20
	rookOpenAdjacentEg     board.Score = 10
	rookOpenSameOp         board.Score = 30
	rookOpenSameEg         board.Score = 10
	rookOn7thOp            board.Score = 20
	rookOn7thEg            board.Score = 40

	queenOn7thOp board.Score = 10
	queenOn7thEg board.Score = 20

	doubleBishopsOp      board.Score = 50
	doubleBishopsEg      board.Score = 50
	trappedBishopPenalty board.Score = -50
	blockedBishopPenalty board.Score = -50
	blockedRookPenalty   board.Score = -50
)

// taper mixes an opening and an endgame term according to board.Board's own phase counter (0 =
// opening, board.MaxPhase = endgame), clamping it to that range first since it can run past
// either end mid-game.
func taper(phase int, op, eg board.Score) board.Score {
	if phase < 0 {
		phase = 0
	}
	if phase > board.MaxPhase {
		phase = board.MaxPhase
	}
	return board.Score((int(op)*(board.MaxPhase-phase) + int(eg)*phase) / board.MaxPhase)
}
