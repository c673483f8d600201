package board_test

import (
	"testing"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardPopCount(t *testing.T) {
	assert.Equal(t, 0, board.EmptyBitboard.PopCount())
	assert.Equal(t, 1, board.BitMask(board.G4).PopCount())
	assert.Equal(t, 2, (board.BitMask(board.G3) | board.BitMask(board.G4)).PopCount())
}

func TestBitboardString(t *testing.T) {
	assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/--------", board.EmptyBitboard.String())
	assert.Equal(t, "--------/--------/--------/--------/--------/--------/--------/-------X", board.BitMask(board.H1).String())
}

func TestKingAttackboard(t *testing.T) {
	// A corner king has 3 attacked squares.
	assert.Equal(t, 3, board.KingAttackboard(board.A1).PopCount())
	// A central king has 8.
	assert.Equal(t, 8, board.KingAttackboard(board.E4).PopCount())
	assert.True(t, board.KingAttackboard(board.E4).IsSet(board.D5))
	assert.True(t, board.KingAttackboard(board.E4).IsSet(board.F3))
	assert.False(t, board.KingAttackboard(board.E4).IsSet(board.E4))
}

func TestKnightAttackboard(t *testing.T) {
	assert.Equal(t, 2, board.KnightAttackboard(board.A1).PopCount())
	assert.Equal(t, 8, board.KnightAttackboard(board.E4).PopCount())
	assert.True(t, board.KnightAttackboard(board.E4).IsSet(board.F6))
	assert.True(t, board.KnightAttackboard(board.E4).IsSet(board.C3))
}

func TestRookAttackboard(t *testing.T) {
	// Empty board: rook on A1 attacks the whole first rank and file A.
	empty := board.RookAttackboard(board.EmptyBitboard, board.A1)
	assert.Equal(t, 14, empty.PopCount())
	assert.True(t, empty.IsSet(board.H1))
	assert.True(t, empty.IsSet(board.A8))

	// Blocked by a piece on D1: attacks stop there (inclusive).
	occ := board.BitMask(board.D1)
	blocked := board.RookAttackboard(occ, board.A1)
	assert.True(t, blocked.IsSet(board.D1))
	assert.False(t, blocked.IsSet(board.E1))
}

func TestBishopAttackboard(t *testing.T) {
	empty := board.BishopAttackboard(board.EmptyBitboard, board.D4)
	assert.True(t, empty.IsSet(board.A1))
	assert.True(t, empty.IsSet(board.H8))
	assert.True(t, empty.IsSet(board.A7))
	assert.True(t, empty.IsSet(board.G1))
}

func TestBetweenAndPinRay(t *testing.T) {
	between := board.BetweenMask(board.A1, board.A4)
	assert.True(t, between.IsSet(board.A2))
	assert.True(t, between.IsSet(board.A3))
	assert.True(t, between.IsSet(board.A4))
	assert.False(t, between.IsSet(board.A5))

	pin := board.PinRayMask(board.A1, board.A4)
	assert.True(t, pin.IsSet(board.A5))
	assert.True(t, pin.IsSet(board.A8))
	assert.False(t, pin.IsSet(board.A1))

	assert.Equal(t, board.EmptyBitboard, board.BetweenMask(board.A1, board.B3))
}
