// Package engine wires board state, evaluation, search, the opening book, and endgame-bitbase
// probing into the single mutable game-playing core both protocol drivers (console, xboard) sit
// on top of, mirroring the reference engine's pkg/engine split.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/book"
	"github.com/climblabs/corvid/pkg/egbb"
	"github.com/climblabs/corvid/pkg/eval"
	"github.com/climblabs/corvid/pkg/movegen"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are search-relevant engine settings, overridable at any time.
type Options struct {
	// Depth is the search depth limit. Zero means no limit other than board.MaxPly.
	Depth int
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash int
	// Noise adds centipawn randomness to leaf evaluations. Zero is deterministic.
	Noise int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing state: the current position, its search apparatus, the
// opening book, and the time control both protocol drivers consult.
type Engine struct {
	name, author string

	factory search.TranspositionTableFactory
	bk      *book.Book
	egbb    egbb.Facade
	seed    int64
	opts    Options

	mu     sync.Mutex
	b      *board.Board
	keys   []board.ZobristKey // key at each ply played this game, for book learning
	tt     search.TranspositionTable
	ab     *search.AlphaBeta
	clock  search.TimeControl
	active search.Handle
}

// Option is an engine construction option.
type Option func(*Engine)

// WithOptions sets the initial search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithTableFactory overrides how the transposition table is allocated on Reset.
func WithTableFactory(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// WithBook attaches an opening book. A nil book (the default) disables book probing.
func WithBook(bk *book.Book) Option {
	return func(e *Engine) { e.bk = bk }
}

// WithEGBB attaches an endgame-bitbase facade. Defaults to egbb.NoFacade{}.
func WithEGBB(f egbb.Facade) Option {
	return func(e *Engine) { e.egbb = f }
}

// WithSeed sets the random seed used for evaluation noise (Options.Noise). Defaults to zero.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// New constructs an engine at the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		factory: search.NewTranspositionTable,
		egbb:    egbb.NoFacade{},
	}
	for _, fn := range opts {
		fn(e)
	}

	if err := e.Reset(ctx, fen.Initial); err != nil {
		logw.Exitf(ctx, "failed to initialize engine: %v", err)
	}

	logw.Infof(ctx, "initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = mb
	e.tt = e.buildTable(mb)
	e.ab.TT = e.tt
}

func (e *Engine) SetNoise(centipawns int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
	e.ab.Eval = e.buildEvaluator(centipawns)
}

// Clock returns the current time control.
func (e *Engine) Clock() search.TimeControl {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clock
}

// SetClock replaces the active time control, e.g. in response to a "level"/"st"/"time" command.
func (e *Engine) SetClock(tc search.TimeControl) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock = tc
}

// Board returns a clone of the current position, safe for the caller to mutate or search.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Clone()
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Reset resets the engine to the position described by a FEN string, halting any active search,
// clearing game history (and with it, book-learning eligibility), and reallocating the
// transposition table fresh.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "reset %v, options=%v", position, e.opts)

	e.haltSearchIfActive(ctx)

	b, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}
	e.b = b
	e.keys = []board.ZobristKey{b.Key()}

	e.tt = e.buildTable(e.opts.Hash)
	e.ab = search.NewAlphaBeta(e.buildEvaluator(e.opts.Noise), e.tt)
	e.ab.EGBB = e.egbb

	logw.Infof(ctx, "new board: %v", e.b)
	return nil
}

func (e *Engine) buildTable(mb int) search.TranspositionTable {
	if mb <= 0 {
		return search.NoTranspositionTable{}
	}
	return e.factory(context.Background(), uint64(mb)<<20)
}

func (e *Engine) buildEvaluator(noise int) eval.Scorer {
	return eval.Randomize(eval.NewEvaluator(), noise, e.seed)
}

// Move plays a single move, given in long algebraic notation, against the current position. It
// is used both for an opponent's move and for committing the engine's own chosen move once a
// search completes, exactly as the reference engine's Move does.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	m, ok := matchLegalMove(e.b, candidate)
	if !ok {
		return fmt.Errorf("illegal move: %v", move)
	}

	e.b.MakeMove(m)
	e.keys = append(e.keys, e.b.Key())

	logw.Infof(ctx, "move %v: %v", m, e.b)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if len(e.keys) <= 1 {
		return fmt.Errorf("no move to take back")
	}

	e.b.UndoMove()
	e.keys = e.keys[:len(e.keys)-1]

	logw.Infof(ctx, "takeback: %v", e.b)
	return nil
}

// Hint returns a single candidate move for the current position without committing to a full
// search: a book move if the book has one, else the transposition table's stored best move for
// this position, if any.
func (e *Engine) Hint(ctx context.Context) (board.Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bk != nil {
		if m, ok := e.bk.Probe(e.b); ok {
			return m, true
		}
	}
	if _, _, _, m, ok := e.tt.Read(e.b.Key()); ok {
		return m, true
	}
	return board.Move{}, false
}

// BookMoves returns every book move known for the current position, weighted, for a "bk"/"book"
// command. Empty if no book is attached or the book has nothing for this position.
func (e *Engine) BookMoves(ctx context.Context) map[board.Move]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bk == nil {
		return nil
	}
	return e.bk.Moves(e.b)
}

// Analyze starts a new iterative-deepening search of the current position.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opt.DepthLimit <= 0 {
		opt.DepthLimit = e.opts.Depth
	}

	logw.Infof(ctx, "analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	e.ab.Reset()
	launcher := search.Iterative{Search: e.ab, Clock: e.clock}
	handle, out := launcher.Launch(ctx, e.b.Clone(), opt)
	e.active = handle
	return out, nil
}

// Halt stops the active search and returns the principal variation found so far, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}

// Learn records the game's outcome into the opening book, if one is attached and in learning
// mode. Call once, at game end, with the winning side (either color, ignored for a draw).
func (e *Engine) Learn(ctx context.Context, winner board.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bk == nil {
		return
	}
	logw.Infof(ctx, "learning %v plies, winner=%v", len(e.keys), winner)
	e.bk.Learn(e.keys, winner)
}

// MoveScore is one line of a per-root-move breakdown report.
type MoveScore struct {
	Move  board.Move
	Score board.Score
	Nodes uint64
	PV    []board.Move
}

// ScoreMoves scores every legal move in the current position by searching the position it leads
// to, depth-1 plies deep with no transposition table and no evaluation noise, for the console
// driver's post-search breakdown report. depth is typically the depth an Analyze call just
// completed at.
func (e *Engine) ScoreMoves(ctx context.Context, depth int) []MoveScore {
	e.mu.Lock()
	b := e.b.Clone()
	e.mu.Unlock()

	if depth < 1 {
		depth = 1
	}
	ab := search.NewAlphaBeta(eval.NewEvaluator(), search.NoTranspositionTable{})
	deadline := time.Now().Add(time.Minute)

	var out []MoveScore
	for _, m := range legalMoves(b) {
		child := b.Clone()
		child.MakeMove(m)

		nodes, score, pv, err := ab.Search(ctx, child, depth-1, deadline, nil)
		if err != nil {
			continue
		}
		out = append(out, MoveScore{Move: m, Score: -score, Nodes: nodes, PV: pv})
	}
	return out
}

// matchLegalMove finds the legal move matching candidate's From/To/Promotion (the only fields
// ParseMove can fill in), giving it back with its Piece/Captured/EnPassant/Castling/IsCheck
// fields populated, since Make/Undo depend on those being correct.
func matchLegalMove(b *board.Board, candidate board.Move) (board.Move, bool) {
	moves := movegen.Generate(b)
	for {
		m, ok := moves.Next()
		if !ok {
			return board.Move{}, false
		}
		if m.From == candidate.From && m.To == candidate.To && m.Promotion == candidate.Promotion {
			return m, true
		}
	}
}

// legalMoves drains ml into a plain slice for callers that want to range over every legal move
// without threading selection-sort state (e.g. scoring every root move for a breakdown report).
func legalMoves(b *board.Board) []board.Move {
	ml := movegen.Generate(b)
	out := make([]board.Move, 0, ml.Size())
	for {
		m, ok := ml.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}
