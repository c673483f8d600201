package search

import (
	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/movegen"
	"github.com/climblabs/corvid/pkg/see"
)

// quiescence extends search beyond the nominal horizon through captures, promotions, and check
// evasions, so the static evaluator is never asked to judge a position in the middle of a
// material exchange. Stand-pat: a side not in check may always decline to continue the exchange,
// since GenerateQuiescence returns every legal move (not just captures) the moment the side to
// move is in check.
func (r *runAlphaBeta) quiescence(ply int, alpha, beta board.Score) board.Score {
	r.nodes++
	if r.checkAbort() {
		return 0
	}

	inCheck := r.b.InCheck()
	if !inCheck {
		stand := r.eval.Evaluate(r.b)
		if stand >= beta {
			return stand
		}
		if stand > alpha {
			alpha = stand
		}
	}

	moves := movegen.GenerateQuiescence(r.b)
	if moves.Size() == 0 {
		if inCheck {
			return board.MatedIn(ply)
		}
		return alpha
	}

	moves.Prioritize(r.qsPriority())

	for {
		move, ok := moves.Next()
		if !ok {
			break
		}

		// Once a capture's exchange value can't even recoup a pawn, it's not worth searching --
		// unless it's a check evasion, which can't be declined regardless of material.
		if !inCheck && (move.IsCapture() || move.IsPromotion()) && see.Evaluate(r.b, move) <= -board.PawnValue {
			continue
		}

		r.b.MakeMove(move)
		score := -r.quiescence(ply+1, -beta, -alpha)
		r.b.UndoMove()

		if r.aborted {
			return 0
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}

	return alpha
}

// qsPriority orders quiescence moves by their static exchange value, so a clearly bad capture
// sorts last even before the SEE pruning above skips searching it.
func (r *runAlphaBeta) qsPriority() board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		if m.IsCapture() || m.IsPromotion() {
			return board.MovePriority(see.Evaluate(r.b, m))
		}
		if m.IsCheck {
			return -150
		}
		return -24000
	}
}
