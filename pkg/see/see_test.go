package see_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/see"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := fen.Decode(s)
	require.NoError(t, err, s)
	return b
}

func TestEvaluateUndefendedCapture(t *testing.T) {
	// White rook takes an undefended black knight: a clean material win.
	b := mustDecode(t, "4k3/8/8/n7/8/8/8/R3K3 w - - 0 1")
	m := board.Move{From: board.A1, To: board.A5, Piece: board.Rook, Captured: board.Knight}
	assert.Equal(t, board.KnightValue, see.Evaluate(b, m))
}

func TestEvaluateLosingCapture(t *testing.T) {
	// White queen takes a pawn defended only by a rook: White ends down a queen for a pawn.
	b := mustDecode(t, "4k3/8/8/3p4/8/3r4/8/4K2Q w - - 0 1")
	m := board.Move{From: board.H1, To: board.D5, Piece: board.Queen, Captured: board.Pawn}
	assert.Equal(t, board.PawnValue-board.QueenValue, see.Evaluate(b, m))
}

func TestEvaluatePawnTradeIsEven(t *testing.T) {
	// Pawn takes a pawn defended only by another pawn: an even trade nets nothing.
	b := mustDecode(t, "4k3/8/2p5/3p4/4P3/8/8/4K3 w - - 0 1")
	m := board.Move{From: board.E4, To: board.D5, Piece: board.Pawn, Captured: board.Pawn}
	assert.Equal(t, board.Score(0), see.Evaluate(b, m))
}

func TestEvaluateStopsExchangeWhenContinuingLoses(t *testing.T) {
	// A rook battery on the d-file on both sides: White's rook takes the pawn, Black's rook
	// recaptures, and White declines to continue with its queen since trading queen for rook
	// loses material -- the exchange correctly stops two plies in.
	b := mustDecode(t, "3rk3/3r4/8/3p4/8/3R4/8/3QK3 w - - 0 1")
	m := board.Move{From: board.D3, To: board.D5, Piece: board.Rook, Captured: board.Pawn}
	assert.Equal(t, board.PawnValue-board.RookValue, see.Evaluate(b, m))
}
