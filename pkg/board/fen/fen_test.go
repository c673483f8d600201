package fen_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/8/4K2k w - - 0 1",
	}

	for _, tt := range tests {
		b, err := fen.Decode(tt)
		require.NoError(t, err, tt)
		assert.Equal(t, tt, fen.Encode(b), tt)
	}
}

func TestDecodeInitialPosition(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, board.FullCastlingRights, b.Castling())
	assert.Equal(t, board.E1, b.King(board.White))
	assert.Equal(t, board.E8, b.King(board.Black))

	c, p, ok := b.Square(board.A8)
	require.True(t, ok)
	assert.Equal(t, board.Black, c)
	assert.Equal(t, board.Rook, p)

	_, _, ok = b.Square(board.E4)
	assert.False(t, ok)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"8/8/8/8/8/8/8/8 w KQkq - 0 1",        // no kings
		"not a fen string at all really truly",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad turn
	}
	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.Error(t, err, tt)
	}
}
