package board_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := fen.Decode(s)
	require.NoError(t, err, s)
	return b
}

func TestMakeUndoRoundTrip(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	before := fen.Encode(b)
	beforeKey := b.Key()

	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}
	b.MakeMove(m)

	assert.Equal(t, board.Black, b.Turn())
	ep, ok := b.EnPassant()
	assert.True(t, ok)
	assert.Equal(t, board.E3, ep)

	b.UndoMove()

	assert.Equal(t, before, fen.Encode(b))
	assert.Equal(t, beforeKey, b.Key())
}

func TestZobristIncrementalMatchesScratch(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	assert.True(t, b.VerifyZobrist())

	moves := []board.Move{
		{From: board.E2, To: board.E4, Piece: board.Pawn},
		{From: board.E7, To: board.E5, Piece: board.Pawn},
		{From: board.G1, To: board.F3, Piece: board.Knight},
	}
	for _, m := range moves {
		b.MakeMove(m)
		assert.True(t, b.VerifyZobrist())
	}
}

func TestCastlingRightsLostByKingMove(t *testing.T) {
	b := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	b.MakeMove(board.Move{From: board.E1, To: board.E2, Piece: board.King})
	assert.False(t, b.Castling().IsAllowed(board.WhiteKingSideCastle))
	assert.False(t, b.Castling().IsAllowed(board.WhiteQueenSideCastle))
	assert.True(t, b.Castling().IsAllowed(board.BlackKingSideCastle))
	assert.True(t, b.Castling().IsAllowed(board.BlackQueenSideCastle))

	b.UndoMove()
	assert.Equal(t, board.FullCastlingRights, b.Castling())
}

func TestCastlingRightsLostByRookCapture(t *testing.T) {
	b := mustDecode(t, "r3k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")

	// Black's a-rook captures White's rook on a1: a capture landing on a1 should cost White the
	// queenside right tied to that square.
	b.MakeMove(board.Move{From: board.H1, To: board.H8, Piece: board.Rook})
	b.MakeMove(board.Move{From: board.A8, To: board.A1, Piece: board.Rook, Captured: board.Rook})
	assert.False(t, b.Castling().IsAllowed(board.WhiteQueenSideCastle))
}

func TestCastlingMove(t *testing.T) {
	b := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m := board.Move{From: board.E1, To: board.G1, Piece: board.King, IsCastling: true, CastlingSide: board.KingSide}
	b.MakeMove(m)

	_, p, ok := b.Square(board.F1)
	require.True(t, ok)
	assert.Equal(t, board.Rook, p)
	assert.Equal(t, board.G1, b.King(board.White))

	b.UndoMove()
	_, p, ok = b.Square(board.H1)
	require.True(t, ok)
	assert.Equal(t, board.Rook, p)
	assert.Equal(t, board.E1, b.King(board.White))
}

func TestEnPassantCapture(t *testing.T) {
	b := mustDecode(t, "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")

	m := board.Move{From: board.D4, To: board.E3, Piece: board.Pawn, Captured: board.Pawn, EnPassant: true, EPVictim: board.E4}
	b.MakeMove(m)

	_, _, ok := b.Square(board.E4)
	assert.False(t, ok, "captured pawn should be removed")
	_, p, ok := b.Square(board.E3)
	require.True(t, ok)
	assert.Equal(t, board.Pawn, p)

	b.UndoMove()
	_, p, ok = b.Square(board.E4)
	require.True(t, ok)
	assert.Equal(t, board.Pawn, p)
	_, _, ok = b.Square(board.E3)
	assert.False(t, ok)
}

func TestPromotion(t *testing.T) {
	b := mustDecode(t, "8/P6k/8/8/8/8/8/4K3 w - - 0 1")
	before := b.Material(board.White)

	b.MakeMove(board.Move{From: board.A7, To: board.A8, Piece: board.Pawn, Promotion: board.Queen})
	_, p, ok := b.Square(board.A8)
	require.True(t, ok)
	assert.Equal(t, board.Queen, p)
	assert.Equal(t, before+board.QueenValue-board.PawnValue, b.Material(board.White))

	b.UndoMove()
	_, p, ok = b.Square(board.A7)
	require.True(t, ok)
	assert.Equal(t, board.Pawn, p)
	assert.Equal(t, before, b.Material(board.White))
}

func TestFiftyMoveRule(t *testing.T) {
	b := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 99 1")
	b.MakeMove(board.Move{From: board.E1, To: board.D1, Piece: board.King})
	assert.Equal(t, board.Draw, b.Result().Outcome)
	assert.Equal(t, board.NoProgress, b.Result().Reason)
}

func TestInsufficientMaterial(t *testing.T) {
	b := mustDecode(t, "8/8/8/4k3/8/4n3/8/4K3 b - - 0 1")
	assert.True(t, b.HasInsufficientMaterial())

	b2 := mustDecode(t, "8/8/8/4k3/8/4q3/8/4K3 b - - 0 1")
	assert.False(t, b2.HasInsufficientMaterial())
}

func TestRepetitionCount(t *testing.T) {
	b := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	back, forth := board.Move{From: board.E1, To: board.D1, Piece: board.King}, board.Move{From: board.D1, To: board.E1, Piece: board.King}
	bback, bforth := board.Move{From: board.E8, To: board.D8, Piece: board.King}, board.Move{From: board.D8, To: board.E8, Piece: board.King}

	assert.Equal(t, 1, b.RepetitionCount(100))

	b.MakeMove(back)
	b.MakeMove(bback)
	b.MakeMove(forth)
	b.MakeMove(bforth)
	assert.Equal(t, 2, b.RepetitionCount(100))

	b.MakeMove(back)
	b.MakeMove(bback)
	b.MakeMove(forth)
	b.MakeMove(bforth)
	assert.Equal(t, 3, b.RepetitionCount(100))
	assert.Equal(t, board.Draw, b.Result().Outcome)
}
