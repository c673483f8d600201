// Package xboard implements the Chess Engine Communication Protocol (CECP, historically named
// after the GUI it shipped with, Xboard), the GUI-facing protocol this design's opening-book and
// endgame-bitbase conventions were originally paired with. It plays the role the reference
// engine's pkg/engine/uci plays for UCI: the GUI-facing driver sitting on the same engine.Engine
// core as the console driver.
package xboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

const ProtocolName = "xboard"

// cmdType classifies how an inbound line is dispatched relative to an in-progress search,
// reproducing original_source/chess.h's CmdType exactly: CONTINUE defers the command until the
// search finishes on its own; execAndContinue runs it immediately alongside a running search;
// finish stops the search, commits its best move, then runs the command; cancel stops the search,
// discards its result, then runs the command.
type cmdType int

const (
	cmdContinue cmdType = iota
	cmdExecAndContinue
	cmdFinish
	cmdCancel
)

// cmdTypes reproduces original_source/xboard.c's xbcmds[] table. Anything absent from this map
// (including a long-algebraic move string) is treated as cmdCancel, matching the table's
// catch-all XBID_MOVESTR entry.
var cmdTypes = map[string]cmdType{
	"xboard":    cmdExecAndContinue,
	"protover":  cmdExecAndContinue,
	"accepted":  cmdExecAndContinue,
	"rejected":  cmdExecAndContinue,
	"new":       cmdCancel,
	"quit":      cmdCancel,
	"force":     cmdCancel,
	"go":        cmdCancel,
	"playother": cmdCancel,
	"level":     cmdCancel,
	"st":        cmdCancel,
	"sd":        cmdCancel,
	"time":      cmdExecAndContinue,
	"otim":      cmdExecAndContinue,
	"?":         cmdFinish,
	"ping":      cmdExecAndContinue,
	"result":    cmdCancel,
	"setboard":  cmdCancel,
	"hint":      cmdExecAndContinue,
	"bk":        cmdExecAndContinue,
	"book":      cmdExecAndContinue,
	"undo":      cmdCancel,
	"remove":    cmdCancel,
	"post":      cmdExecAndContinue,
	"nopost":    cmdExecAndContinue,
	"analyze":   cmdCancel,
	"name":      cmdExecAndContinue,
	"computer":  cmdExecAndContinue,
	"memory":    cmdCancel,
	"exit":      cmdCancel,
}

func classify(cmd string) cmdType {
	if t, ok := cmdTypes[cmd]; ok {
		return t
	}
	return cmdCancel
}

// Driver implements the xboard/CECP protocol on top of an engine.Engine.
type Driver struct {
	iox.AsyncCloser

	e   *engine.Engine
	out chan<- string

	active atomic.Bool // a search is running

	auto     bool // engine has an assigned side (not "force" mode)
	cpuColor board.Color
	showPV   bool

	movesPerTC   int
	baseTime     time.Duration
	increment    time.Duration
	fixedSeconds time.Duration
	depthLimit   int
	engineTime   time.Duration
	opponent     string
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
		showPV:      true,
		baseTime:    5 * time.Minute,
		engineTime:  5 * time.Minute,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "xboard protocol initialized")

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "input stream broken. exiting")
				return
			}
			if d.dispatch(ctx, line) {
				return
			}

		case <-d.Closed():
			_, _ = d.e.Halt(ctx)
			logw.Infof(ctx, "driver closed")
			return
		}
	}
}

// dispatch handles one inbound line, returning true iff the driver should exit.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch classify(cmd) {
	case cmdExecAndContinue:
		return d.handle(ctx, cmd, args, line)

	case cmdFinish:
		// The CAS races against think()'s own completion goroutine: whichever side turns
		// active false is the one that commits the result, so it never happens twice.
		if d.active.CAS(true, false) {
			pv, _ := d.e.Halt(ctx)
			d.commitBestMove(ctx, pv)
		}
		return d.handle(ctx, cmd, args, line)

	case cmdContinue:
		// No command in the table above actually classifies as CONTINUE (matching
		// original_source/xboard.c's table, which never assigns it either); were one added,
		// it would need to be queued and replayed once the running search finishes.
		return d.handle(ctx, cmd, args, line)

	default: // cmdCancel
		if d.active.CAS(true, false) {
			_, _ = d.e.Halt(ctx)
		}
		return d.handle(ctx, cmd, args, line)
	}
}

func (d *Driver) handle(ctx context.Context, cmd string, args []string, line string) (quit bool) {
	switch cmd {
	case "xboard":
		// No-op: the driver only ever speaks this protocol.

	case "protover":
		d.out <- fmt.Sprintf("feature myname=\"%v\" ping=1 setboard=1 playother=1 san=0"+
			" usermove=0 time=1 draw=0 variants=\"normal\" colors=0 sigint=0 sigterm=0 reuse=1"+
			" analyze=1 ics=0 name=1 pause=0 nps=0 debug=0 memory=1 smp=0 done=1", d.e.Name())

	case "accepted", "rejected", "computer":
		// No-op.

	case "new":
		d.ensureFreshGame(ctx)
		d.auto = true
		d.cpuColor = board.Black

	case "quit":
		return true

	case "force":
		d.auto = false

	case "go":
		d.auto = true
		d.cpuColor = d.e.Board().Turn()
		d.think(ctx)

	case "playother":
		d.auto = true
		d.cpuColor = d.e.Board().Turn().Opponent()

	case "level":
		if len(args) >= 3 {
			d.movesPerTC, _ = strconv.Atoi(args[0])
			d.baseTime = parseTimeSpec(args[1])
			if secs, err := strconv.Atoi(args[2]); err == nil {
				d.increment = time.Duration(secs) * time.Second
			}
			d.fixedSeconds = 0
			d.engineTime = d.baseTime
		}

	case "st":
		if len(args) >= 1 {
			if secs, err := strconv.Atoi(args[0]); err == nil {
				d.fixedSeconds = time.Duration(secs) * time.Second
				d.movesPerTC = 0
				d.increment = 0
			}
		}

	case "sd":
		if len(args) >= 1 {
			if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
				d.depthLimit = n
			}
		}

	case "time":
		if len(args) >= 1 {
			if cs, err := strconv.Atoi(args[0]); err == nil && cs > 0 {
				d.engineTime = time.Duration(cs) * 10 * time.Millisecond
			}
		}

	case "otim":
		// Ignored, matching original_source/xboard.c's XBID_OTIM handler.

	case "?":
		// Handled by dispatch's cmdFinish branch; nothing left to do.

	case "ping":
		if len(args) >= 1 {
			d.out <- fmt.Sprintf("pong %v", args[0])
		}

	case "result":
		if len(args) >= 1 {
			d.handleResult(ctx, args[0])
		}

	case "setboard":
		pos := strings.Join(args, " ")
		if pos == "" {
			d.out <- "Error (setboard needs a FEN string)"
			break
		}
		if err := d.e.Reset(ctx, pos); err != nil {
			d.out <- fmt.Sprintf("Error (invalid FEN): %v", pos)
		}

	case "hint":
		if m, ok := d.e.Hint(ctx); ok {
			d.out <- fmt.Sprintf("Hint: %v", m)
		}

	case "bk", "book":
		moves := d.e.BookMoves(ctx)
		if len(moves) == 0 {
			d.out <- "Opening book is disabled or has no moves for this position"
			break
		}
		for m, w := range moves {
			d.out <- fmt.Sprintf("\t%v\t%.3f", m, w)
		}

	case "undo":
		_ = d.e.TakeBack(ctx)

	case "remove":
		_ = d.e.TakeBack(ctx)
		_ = d.e.TakeBack(ctx)

	case "post":
		d.showPV = true

	case "nopost":
		d.showPV = false

	case "analyze":
		d.auto = false
		out, err := d.e.Analyze(ctx, search.Options{})
		if err != nil {
			break
		}
		d.active.Store(true)
		go d.drainAnalysis(ctx, out)

	case "exit":
		// Already halted by dispatch's cmdCancel handling above; nothing left to do.

	case "name":
		d.opponent = strings.Join(args, " ")

	case "memory":
		if len(args) >= 1 {
			mb, err := strconv.Atoi(args[0])
			if err != nil || mb < 8 || mb > 1024 {
				d.out <- "Hash size must be between 8 and 1024 MB."
				break
			}
			d.e.SetHash(mb)
		}

	default:
		d.handleMove(ctx, cmd)
	}
	return false
}

func (d *Driver) handleMove(ctx context.Context, str string) {
	m, err := board.ParseMove(str)
	if err != nil {
		d.out <- fmt.Sprintf("Error (unknown command): %v", str)
		return
	}
	if err := d.e.Move(ctx, m.String()); err != nil {
		d.out <- fmt.Sprintf("Illegal move: %v", str)
		return
	}

	if d.checkGameOver(ctx) {
		return
	}
	if d.auto && d.e.Board().Turn() == d.cpuColor {
		d.think(ctx)
	}
}

func (d *Driver) handleResult(ctx context.Context, result string) {
	var winner board.Color
	switch result {
	case "1-0":
		winner = board.White
	case "0-1":
		winner = board.Black
	default:
		return
	}
	if !d.auto || winner != d.cpuColor {
		d.e.Learn(ctx, winner)
	}
}

// checkGameOver reports the game's result, if decided, and returns whether it ended.
func (d *Driver) checkGameOver(ctx context.Context) bool {
	res := d.e.Board().Result()
	if res.Outcome == board.Undecided {
		return false
	}
	d.out <- res.String()

	if d.auto {
		// Book learning only kicks in on a loss, matching original_source/xboard.c's xb_result
		// comment: "To keep the opening book reliable, book learning is used only when Sloppy
		// loses a game."
		var winner board.Color
		switch res.Outcome {
		case board.WhiteWins:
			winner = board.White
		case board.BlackWins:
			winner = board.Black
		default:
			return true
		}
		if winner != d.cpuColor {
			d.e.Learn(ctx, winner)
		}
	}
	return true
}

// think starts a search for the side to move and, once it completes, commits and announces the
// chosen move.
func (d *Driver) think(ctx context.Context) {
	if d.active.Load() {
		return
	}

	b := d.e.Board()
	tc := d.timeControl(b.Turn(), b.Ply())
	d.e.SetClock(tc)

	out, err := d.e.Analyze(ctx, search.Options{DepthLimit: d.depthLimit})
	if err != nil {
		logw.Errorf(ctx, "think failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			if d.showPV {
				d.out <- pv.String()
			}
		}
		if d.active.CAS(true, false) {
			d.commitBestMove(ctx, last)
		}
	}()
}

func (d *Driver) commitBestMove(ctx context.Context, pv search.PV) {
	if len(pv.Moves) == 0 {
		return
	}
	m := pv.Moves[0]
	if err := d.e.Move(ctx, m.String()); err != nil {
		logw.Errorf(ctx, "failed to commit search result %v: %v", m, err)
		return
	}
	d.out <- fmt.Sprintf("move %v", m)
	d.checkGameOver(ctx)
}

func (d *Driver) timeControl(c board.Color, ply int) search.TimeControl {
	white, black := d.engineTime, 5*time.Minute
	if c == board.Black {
		white, black = black, white
	}
	tc := search.TimeControl{
		White:       white,
		Black:       black,
		Moves:       d.movesPerTC,
		Increment:   d.increment,
		MovesPlayed: ply,
	}
	if d.fixedSeconds > 0 {
		tc.White, tc.Black = d.fixedSeconds, d.fixedSeconds
		tc.Moves = 1
		tc.Increment = 0
	}
	return tc
}

func (d *Driver) drainAnalysis(ctx context.Context, out <-chan search.PV) {
	for pv := range out {
		if d.showPV {
			d.out <- pv.String()
		}
	}
	d.active.Store(false)
}

func (d *Driver) ensureFreshGame(ctx context.Context) {
	if d.active.Load() {
		_, _ = d.e.Halt(ctx)
		d.active.Store(false)
	}
	if err := d.e.Reset(ctx, fen.Initial); err != nil {
		logw.Errorf(ctx, "reset failed: %v", err)
	}
	d.movesPerTC = 0
	d.fixedSeconds = 0
	d.depthLimit = 0
}

// parseTimeSpec parses a "level" command's TIME_PER_TC field, "MINUTES" or "MINUTES:SECONDS".
func parseTimeSpec(s string) time.Duration {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		mins, _ := strconv.Atoi(s[:i])
		secs, _ := strconv.Atoi(s[i+1:])
		return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second
	}
	mins, _ := strconv.Atoi(s)
	return time.Duration(mins) * time.Minute
}
