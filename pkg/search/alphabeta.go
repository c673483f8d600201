package search

import (
	"context"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/climblabs/corvid/pkg/eval"
	"github.com/climblabs/corvid/pkg/movegen"
	"github.com/climblabs/corvid/pkg/see"
)

// Tuning constants for the pruning heuristics below, named for the technique they gate rather
// than tuned against any particular test suite.
const (
	nullMoveMinDepth  = 3
	nullMoveReduction = 3

	futilityDepth  = 3
	futilityMargin = board.Score(100)

	lmrMinDepth = 3
	lmrMinMove  = 3

	iidMinDepth = 5
)

// pollInterval is how often, in nodes, the search checks the quit channel and wall clock --
// checking on every node would spend more time polling than searching.
const pollInterval = 1024

// AlphaBeta is a principal-variation negamax search with null-move pruning, futility pruning,
// late move reductions, internal iterative deepening, and killer-move ordering, all searched
// over corvid's fully-legal move generator (no separate legality check per move is needed: every
// move produced by movegen is already legal). A single instance is meant to live across one
// iterative-deepening call: its killer table should be reset between different root positions,
// but its transposition table should not.
type AlphaBeta struct {
	Eval eval.Scorer
	TT   TranspositionTable
	EGBB egbb.Facade // nil is treated as egbb.NoFacade{}

	killers *killerTable
}

// NewAlphaBeta builds a searcher sharing e and tt, both of which typically outlive a single
// search call (tt across a whole game, e across the whole process). The facade defaults to
// egbb.NoFacade{}; set the returned *AlphaBeta's EGBB field directly to attach a real one.
func NewAlphaBeta(e eval.Scorer, tt TranspositionTable) *AlphaBeta {
	return &AlphaBeta{Eval: e, TT: tt, EGBB: egbb.NoFacade{}, killers: newKillerTable()}
}

// Reset clears move-ordering state that must not leak between searches of different root
// positions. Call once before starting a new iterative-deepening depth loop.
func (ab *AlphaBeta) Reset() {
	ab.killers.reset()
}

func (ab *AlphaBeta) Search(ctx context.Context, b *board.Board, depth int, deadline time.Time, quit <-chan struct{}) (uint64, board.Score, []board.Move, error) {
	e := ab.EGBB
	if e == nil {
		e = egbb.NoFacade{}
	}

	run := &runAlphaBeta{
		eval:     ab.Eval,
		tt:       ab.TT,
		egbb:     e,
		killers:  ab.killers,
		b:        b,
		quit:     quit,
		deadline: deadline,
		rootPly:  b.Ply(),
	}

	score, pv := run.search(depth, -board.MaxScore, board.MaxScore, true)
	if run.aborted {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runAlphaBeta struct {
	eval    eval.Scorer
	tt      TranspositionTable
	egbb    egbb.Facade
	killers *killerTable
	b       *board.Board

	quit     <-chan struct{}
	deadline time.Time
	rootPly  int

	nodes   uint64
	aborted bool
}

func (r *runAlphaBeta) checkAbort() bool {
	if r.aborted {
		return true
	}
	if r.nodes%pollInterval != 0 {
		return false
	}
	select {
	case <-r.quit:
		r.aborted = true
	default:
		if !r.deadline.IsZero() && time.Now().After(r.deadline) {
			r.aborted = true
		}
	}
	return r.aborted
}

// search returns the negamax score of the current position, from the side to move's perspective,
// searched depth plies (plus quiescence beyond that) within the window [alpha, beta], along with
// its principal variation. inPV marks a node lying on the search's principal variation so far:
// only PV nodes get a full window, qualify for internal iterative deepening, and are exempt from
// null-move/futility/LMR pruning (none of which are sound once the node might be the best line).
func (r *runAlphaBeta) search(depth int, alpha, beta board.Score, inPV bool) (board.Score, []board.Move) {
	r.nodes++
	if r.checkAbort() {
		return 0, nil
	}

	ply := r.b.Ply() - r.rootPly

	if ply > 0 {
		if r.b.Result().Outcome == board.Draw {
			return board.DrawScore, nil
		}

		// Mate distance pruning: a mate found deeper than one already known higher in the tree
		// can never be preferred, so narrow the window to the longest mate still worth finding.
		if v := board.MatedIn(ply); v > alpha {
			alpha = v
			if alpha >= beta {
				return alpha, nil
			}
		}
		if v := board.MateIn(ply + 1); v < beta {
			beta = v
			if beta <= alpha {
				return beta, nil
			}
		}
	}

	if depth <= 0 {
		return r.quiescence(ply, alpha, beta), nil
	}

	key := r.b.Key()
	var hashMove board.Move
	if bound, d, score, move, ok := r.tt.Read(key); ok {
		hashMove = move
		if d >= depth && !inPV {
			score = score.FromTT(ply)
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score >= beta {
					return score, nil
				}
			case UpperBound:
				if score <= alpha {
					return score, nil
				}
			}
		}
	}

	// Endgame-tablebase probe: a handful of pieces or fewer may already have a known, exact result
	// that search would otherwise spend many plies rediscovering.
	if n := r.b.Occupied().PopCount(); ply > 0 && n > 2 && n <= 5 {
		if score, ok := r.egbb.Probe(r.b, ply, depth); ok {
			return score, nil
		}
	}

	inCheck := r.b.InCheck()

	// Null-move pruning: if passing the move entirely still leaves the opponent unable to beat
	// beta, this position is good enough regardless of what's actually played. Skipped in check
	// (there's no legal null move), near the horizon, on windows a cutoff here would just be
	// mate-score noise against, and when the side to move holds only pawns and a king, where
	// passing risks walking straight into zugzwang.
	if !inPV && !inCheck && depth >= nullMoveMinDepth && !beta.IsMateScore() && hasNonPawnMaterial(r.b, r.b.Turn()) {
		if r.eval.Evaluate(r.b) >= beta {
			r.b.MakeNull()
			score, _ := r.search(depth-1-nullMoveReduction, -beta, -beta+1, false)
			score = -score
			r.b.UndoNull()

			if r.aborted {
				return 0, nil
			}
			if score >= beta {
				return beta, nil
			}
		}
	}

	moves := movegen.Generate(r.b)
	if moves.Size() == 0 {
		if inCheck {
			return board.MatedIn(ply), nil
		}
		return board.DrawScore, nil
	}
	if moves.Size() == 1 {
		depth++ // the only legal reply is forced either way; look one ply deeper into it.
	}

	// Internal iterative deepening: a PV node with no hash move from a previous iteration has
	// nothing to order by, so spend a shallow search just to seed one before paying for the full
	// depth.
	if hashMove.IsNull() && inPV && depth >= iidMinDepth {
		r.search(depth-2, alpha, beta, true)
		if _, d, _, move, ok := r.tt.Read(key); ok && d >= depth-2 {
			hashMove = move
		}
	}

	moves.Prioritize(board.First(hashMove, r.movePriority(ply)))

	var bestMove board.Move
	var pv []board.Move
	cutoff := false
	raisedAlpha := false

	var staticEval board.Score
	haveStatic := false

	i := 0
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}

		tactical := move.IsCheck || move.IsCapture() || move.IsPromotion() || isPawnThreat(move)

		// Futility pruning: near the leaves, a quiet move whose side can't plausibly close the
		// gap to alpha even with a generous margin isn't worth searching at all.
		if depth <= futilityDepth && !inCheck && !tactical && !inPV && i > 0 && !alpha.IsMateScore() {
			if !haveStatic {
				staticEval = r.eval.Evaluate(r.b)
				haveStatic = true
			}
			if staticEval+futilityMargin*board.Score(depth) <= alpha {
				i++
				continue
			}
		}

		r.b.MakeMove(move)

		newDepth := depth - 1
		if move.IsCheck || isPawnThreat(move) {
			newDepth++ // checks and imminent promotions are extended, not reduced.
		}

		reduced := newDepth
		if i >= lmrMinMove && depth >= lmrMinDepth && !inCheck && !inPV && !tactical {
			reduced--
		}

		var score board.Score
		var rem []board.Move
		if i == 0 {
			score, rem = r.search(newDepth, -beta, -alpha, true)
			score = -score
		} else {
			score, rem = r.search(reduced, -alpha-1, -alpha, false)
			score = -score
			if !r.aborted && score > alpha {
				if reduced != newDepth {
					// The reduced search beat alpha: confirm it wasn't an artifact of the
					// reduction before trusting it.
					score, rem = r.search(newDepth, -alpha-1, -alpha, false)
					score = -score
				}
				if !r.aborted && score > alpha && score < beta {
					// Genuine PVS fail-high inside the window: re-search with the full window to
					// get an exact score and principal variation.
					score, rem = r.search(newDepth, -beta, -alpha, true)
					score = -score
				}
			}
		}

		r.b.UndoMove()
		i++

		if r.aborted {
			return 0, nil
		}

		if score > alpha {
			alpha = score
			raisedAlpha = true
			bestMove = move
			pv = append([]board.Move{move}, rem...)
		}
		if alpha >= beta {
			cutoff = true
			if !tactical {
				r.killers.update(ply, move)
			}
			break
		}
	}

	bound := UpperBound
	switch {
	case cutoff:
		bound = LowerBound
	case raisedAlpha:
		bound = ExactBound
	}
	r.tt.Write(key, bound, ply, depth, alpha.ToTT(ply), bestMove)
	return alpha, pv
}

// movePriority orders moves for the main search: the hash move is handled separately via
// board.First, so this only needs to rank captures/promotions by their static exchange value,
// checks above ordinary quiet moves, and killers above everything else quiet.
func (r *runAlphaBeta) movePriority(ply int) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		if m.IsCapture() || m.IsPromotion() {
			return board.MovePriority(see.Evaluate(r.b, m))
		}
		if primary, secondary := r.killers.is(ply, m); primary {
			return 4
		} else if secondary {
			return 3
		}
		if m.IsCheck {
			return -150
		}
		return -24000
	}
}

// isPawnThreat reports whether m lands a pawn one step from promotion, the reference engine's
// signal to extend search by a ply rather than let it get reduced or pruned like an ordinary
// quiet move.
func isPawnThreat(m board.Move) bool {
	if m.Piece != board.Pawn {
		return false
	}
	r := m.To.Rank()
	return r == board.Rank7 || r == board.Rank2
}

// hasNonPawnMaterial reports whether c has any piece besides pawns and its king, the guard
// against null-move pruning walking straight into zugzwang in king-and-pawn endings.
func hasNonPawnMaterial(b *board.Board, c board.Color) bool {
	return b.All(c)&^(b.Pieces(c, board.Pawn)|b.Pieces(c, board.King)) != 0
}
