package movegen_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/climblabs/corvid/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPositionMoveCount(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	ml := movegen.Generate(b)
	assert.Equal(t, 20, ml.Size())
}

func TestPinRestrictsMoves(t *testing.T) {
	// White king on e1, white rook on e2 pinned by black rook on e8; rook may only move along
	// the e-file.
	b, err := fen.Decode("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)

	ml := movegen.Generate(b)
	for i := 0; i < ml.Size(); i++ {
		m := ml.At(i)
		if m.Piece.String() == "r" {
			assert.Equal(t, m.From.File(), m.To.File(), "pinned rook must stay on file: %v", m)
		}
	}
}

func TestCheckRestrictsToEvasions(t *testing.T) {
	// Black rook on e8 gives check to the White king on e1; only blocking, capturing, or king
	// moves are legal.
	b, err := fen.Decode("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	ml := movegen.Generate(b)
	assert.Greater(t, ml.Size(), 0)
	for i := 0; i < ml.Size(); i++ {
		m := ml.At(i)
		assert.True(t, m.Piece.String() == "k" || m.To.File() == m.From.File())
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Contrived double-check position: both a rook and a knight attack the White king.
	b, err := fen.Decode("8/8/8/8/8/5n2/4r3/4K3 w - - 0 1")
	require.NoError(t, err)

	ml := movegen.Generate(b)
	for i := 0; i < ml.Size(); i++ {
		assert.Equal(t, "k", ml.At(i).Piece.String())
	}
}

func TestCastlingGenerated(t *testing.T) {
	b, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	ml := movegen.Generate(b)
	var sawKingSide, sawQueenSide bool
	for i := 0; i < ml.Size(); i++ {
		m := ml.At(i)
		if m.IsCastling {
			if m.CastlingSide.String() == "O-O" {
				sawKingSide = true
			} else {
				sawQueenSide = true
			}
		}
	}
	assert.True(t, sawKingSide)
	assert.True(t, sawQueenSide)
}

func TestEnPassantGenerated(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)

	ml := movegen.Generate(b)
	var sawEP bool
	for i := 0; i < ml.Size(); i++ {
		if ml.At(i).EnPassant {
			sawEP = true
		}
	}
	assert.True(t, sawEP)
}
