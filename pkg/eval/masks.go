package eval

import "github.com/climblabs/corvid/pkg/board"

// Masks not already exposed by package board: the king-attack ring (used to weigh how many
// attacked squares cluster around the enemy king) and the backward-pawn support mask (adjacent
// files, current rank and behind -- a friendly pawn in this mask can come up alongside and
// support the pawn's advance).

// whiteSquares/blackSquares split the board into its two square colors, used to test for a
// bishop pair spanning both.
const (
	whiteSquares board.Bitboard = 0xaa55aa55aa55aa55
	blackSquares board.Bitboard = 0x55aa55aa55aa55aa
)

var (
	kingRingMask  [board.NumSquares]board.Bitboard
	backwPawnMask [board.NumColors][board.NumSquares]board.Bitboard
)

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		kingRingMask[sq] = buildKingRing(sq)
	}
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
			backwPawnMask[c][sq] = buildBackwPawnMask(c, sq)
		}
	}
}

// buildKingRing mirrors sloppy's ka_mask: every square within a file-distance of 2 from sq,
// restricted to a small diamond of ranks around it (the squares a piece would need to reach to
// threaten mates near the king, not merely adjacent squares).
func buildKingRing(sq board.Square) board.Bitboard {
	offsets := []int{
		0, -16,
		-9, -8, -7,
		-2, -1, 0, 1, 2,
		7, 8, 9,
		16, 0,
	}
	var mask board.Bitboard
	f := int(sq.File())
	for _, off := range offsets {
		sq2 := int(sq) + off
		if sq2 < 0 || sq2 > 63 {
			continue
		}
		df := f - int(board.Square(sq2).File())
		if df < 0 {
			df = -df
		}
		if df <= 2 {
			mask |= board.BitMask(board.Square(sq2))
		}
	}
	return mask
}

// buildBackwPawnMask returns the squares on files adjacent to sq, on sq's rank or behind it
// (from c's view). A pawn on sq can only be backward if no own pawn occupies this mask.
func buildBackwPawnMask(c board.Color, sq board.Square) board.Bitboard {
	var mask board.Bitboard
	f := sq.File()
	r := sq.Rank().V()
	for rr := r; rr >= 0 && rr <= 7; {
		mask |= adjacentFileBits(f, rr)
		if c == board.White {
			rr--
		} else {
			rr++
		}
	}
	return mask
}

func adjacentFileBits(f board.File, rankV int) board.Bitboard {
	var mask board.Bitboard
	sq := board.NewSquare(f, board.Rank(7-rankV))
	if f > board.FileA {
		mask |= board.BitMask(sq - 1)
	}
	if f < board.FileH {
		mask |= board.BitMask(sq + 1)
	}
	return mask
}
