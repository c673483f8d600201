package search

import (
	"fmt"
	"time"

	"github.com/climblabs/corvid/pkg/board"
)

// suddenDeathFraction is the fraction of the remaining clock spent on a single move once there's
// no fixed number of moves left to the next time control.
const suddenDeathFraction = 45

// timeMargin is shaved off both sides' clocks to leave headroom for GUI and OS overhead before a
// flag could otherwise fall.
const timeMargin = 800 * time.Millisecond

// TimeControl describes how much time remains on each side's clock, mirroring a chess clock's
// own bookkeeping: the number of moves in each control period (0 meaning sudden death, i.e. the
// rest of the game), the plies played so far (MovesPlayed, from which the moves left in the
// current period follow), a per-move increment, and whether the position was just reached via an
// opening-book move (in which case a deeper think is warranted, since the book move didn't teach
// the engine anything about the resulting position).
type TimeControl struct {
	White, Black time.Duration
	Moves        int
	Increment    time.Duration
	MovesPlayed  int
	InBook       bool
}

func (t TimeControl) String() string {
	return fmt.Sprintf("%.1f<>%.1f[moves=%v inc=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves, t.Increment)
}

// Limits returns the soft deadline (stop deepening once exceeded, if a result is already in
// hand) and the strict deadline (stop searching unconditionally) for the side to move c.
//
// Both are built from a single per-move allowance: time left divided evenly across the moves
// remaining to the next control, or by a fixed fraction of the clock in sudden death. The soft
// deadline is that allowance plus the incoming increment; the strict deadline is six times as
// generous, since overrunning the soft deadline by a bit to finish a promising iteration is
// normal, but overrunning the strict deadline risks losing on time. A move played straight out of
// the opening book gets the allowance doubled, since it arrives at a position the search hasn't
// had any chance to think about yet.
func (t TimeControl) Limits(c board.Color) (soft, strict time.Duration) {
	remaining := t.White
	if c == board.Black {
		remaining = t.Black
	}
	remaining -= timeMargin
	if remaining < 0 {
		remaining = 0
	}

	var limit time.Duration
	if t.Moves > 0 {
		n := (t.MovesPlayed / 2) % t.Moves
		n = t.Moves - n
		limit = remaining / time.Duration(n)
	} else {
		limit = remaining / suddenDeathFraction
	}

	if t.InBook {
		limit *= 2
	}

	soft = limit + t.Increment
	strict = limit*6 + t.Increment
	if remaining > 0 && strict > remaining {
		strict = remaining
	}
	return soft, strict
}
