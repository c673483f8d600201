// Package console implements a line-oriented debugging protocol for corvid, independent of both
// xboard/CECP and any GUI: one command per line, free-form output, meant for a human or a test
// harness driving the engine directly from a terminal.
package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/engine"
	"github.com/climblabs/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

const ProtocolName = "console"

// Driver implements the console protocol for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out    chan<- string
	active atomic.Bool // user is waiting for the engine to finish searching
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "input stream broken. exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<fen...>] [moves <move>...]

				d.ensureInactive(ctx)

				pos := fen.Initial
				rest := args
				if len(args) > 0 && args[0] != "moves" {
					if len(args) < 6 {
						d.out <- fmt.Sprintf("invalid position: %v", line)
						break
					}
					pos = strings.Join(args[0:6], " ")
					rest = args[6:]
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					d.out <- fmt.Sprintf("invalid position: %v: %v", line, err)
					break
				}
				move := false
				for _, arg := range rest {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						d.out <- fmt.Sprintf("invalid move '%v': %v", arg, err)
						break
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				if err := d.e.TakeBack(ctx); err != nil {
					d.out <- err.Error()
				}
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt search.Options
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					opt.DepthLimit = depth
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					d.out <- fmt.Sprintf("analyze failed: %v", err)
					break
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(depth)
				}

			case "hash": // size in MB
				if len(args) > 0 {
					hash, _ := strconv.Atoi(args[0])
					d.e.SetHash(hash)
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(noise)
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "hint":
				if m, ok := d.e.Hint(ctx); ok {
					d.out <- fmt.Sprintf("Hint: %v", m)
				} else {
					d.out <- "Hint: none"
				}

			case "book", "bk":
				moves := d.e.BookMoves(ctx)
				if len(moves) == 0 {
					d.out <- "book: no moves"
					break
				}
				for m, w := range moves {
					d.out <- fmt.Sprintf("book: %v (%.3f)", m, w)
				}

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		// Search complete.

		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		}

		// Score every root move to depth-1 for a breakdown, same spirit as the reference
		// engine's ponder-each-move report: no transposition table, no noise.

		sub := d.e.ScoreMoves(ctx, pv.Depth)
		sort.Sort(byScore(sub))

		d.out <- fmt.Sprintf("Search, depth=%v", pv.Depth)
		for i, s := range sub {
			d.out <- fmt.Sprintf(" %2d. %v\t%v\t\t(%v nodes\tpv %v)", i+1, s.Move, s.Score, s.Nodes, printMoves(s.PV))
		}
	} // else: stale or duplicate result
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	b := d.e.Board()

	d.out <- ""
	d.out <- files
	d.out <- horizontal

	for rd := 8; rd >= 1; rd-- {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(rd) + vertical)
		for f := 0; f < 8; f++ {
			sq := board.NewSquare(board.File(f), board.Rank(8-rd))
			if c, p, ok := b.Square(sq); ok {
				sb.WriteString(printPiece(c, p))
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", d.e.Position())
	d.out <- fmt.Sprintf("result: %v, ply: %v, key: 0x%x", b.Result(), b.Ply(), uint64(b.Key()))
	d.out <- ""
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}

func printMoves(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// byScore orders a move breakdown best-first, from the side to move's perspective.
type byScore []engine.MoveScore

func (b byScore) Len() int           { return len(b) }
func (b byScore) Less(i, j int) bool { return b[j].Score < b[i].Score }
func (b byScore) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
