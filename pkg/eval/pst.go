package eval

import "github.com/climblabs/corvid/pkg/board"

// flip mirrors a square vertically (A1<->A8, etc), turning a White-relative square into the
// equivalent Black-relative one for piece-square lookups: every table below is written from
// White's perspective with rank 8 first, so Black's own back rank needs the same entries White's
// does.
func flip(sq board.Square) board.Square {
	return sq ^ 0x38
}

// relative returns sq as seen by color: unchanged for White, flipped for Black.
func relative(sq board.Square, c board.Color) board.Square {
	if c == board.White {
		return sq
	}
	return flip(sq)
}

var pcsqPawnOp = [64]board.Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	-15, -5, 0, 5, 5, 0, -5, -15,
	-15, -5, 0, 5, 5, 0, -5, -15,
	-15, -5, 0, 15, 15, 0, -5, -15,
	-15, -5, 0, 25, 25, 0, -5, -15,
	-15, -5, 0, 15, 15, 0, -5, -15,
	-15, -5, 0, 5, 5, 0, -5, -15,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pcsqKnightOp = [64]board.Score{
	-135, -25, -15, -10, -10, -15, -25, -135,
	-20, -10, 0, 5, 5, 0, -10, -20,
	-5, 5, 15, 20, 20, 15, 5, -5,
	-5, 5, 15, 20, 20, 15, 5, -5,
	-10, 0, 10, 15, 15, 10, 0, -10,
	-20, -10, 0, 5, 5, 0, -10, -20,
	-35, -25, -15, -10, -10, -15, -25, -35,
	-50, -40, -30, -25, -25, -30, -40, -50,
}

var pcsqKnightEg = [64]board.Score{
	-40, -30, -20, -15, -15, -20, -30, -40,
	-30, -20, -10, -5, -5, -10, -20, -30,
	-20, -10, 0, 5, 5, 0, -10, -20,
	-15, -5, 5, 10, 10, 5, -5, -15,
	-15, -5, 5, 10, 10, 5, -5, -15,
	-20, -10, 0, 5, 5, 0, -10, -20,
	-30, -20, -10, -5, -5, -10, -20, -30,
	-40, -30, -20, -15, -15, -20, -30, -40,
}

var pcsqBishopOp = [64]board.Score{
	-8, -8, -6, -4, -4, -6, -8, -8,
	-8, 0, -2, 0, 0, -2, 0, -8,
	-6, -2, 4, 2, 2, 4, -2, -6,
	-4, 0, 2, 8, 8, 2, 0, -4,
	-4, 0, 2, 8, 8, 2, 0, -4,
	-6, -2, 4, 2, 2, 4, -2, -6,
	-8, 0, -2, 0, 0, -2, 0, -8,
	-18, -18, -16, -14, -14, -16, -18, -18,
}

var pcsqBishopEg = [64]board.Score{
	-18, -12, -9, -6, -6, -9, -12, -18,
	-12, -6, -3, 0, 0, -3, -6, -12,
	-9, -3, 0, 3, 3, 0, -3, -9,
	-6, 0, 3, 6, 6, 3, 0, -6,
	-6, 0, 3, 6, 6, 3, 0, -6,
	-9, -3, 0, 3, 3, 0, -3, -9,
	-12, -6, -3, 0, 0, -3, -6, -12,
	-18, -12, -9, -6, -6, -9, -12, -18,
}

var pcsqRookOp = [64]board.Score{
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
	-6, -3, 0, 3, 3, 0, -3, -6,
}

var pcsqQueenOp = [64]board.Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	-5, -5, -5, -5, -5, -5, -5, -5,
}

var pcsqQueenEg = [64]board.Score{
	-24, -16, -12, -8, -8, -12, -16, -24,
	-16, -8, -4, 0, 0, -4, -8, -16,
	-12, -4, 0, 4, 4, 0, -4, -12,
	-8, 0, 4, 8, 8, 4, 0, -8,
	-8, 0, 4, 8, 8, 4, 0, -8,
	-12, -4, 0, 4, 4, 0, -4, -12,
	-16, -8, -4, 0, 0, -4, -8, -16,
	-24, -16, -12, -8, -8, -12, -16, -24,
}

var pcsqKingOp = [64]board.Score{
	-40, -30, -50, -70, -70, -50, -30, -40,
	-30, -20, -40, -60, -60, -40, -20, -30,
	-20, -10, -30, -50, -50, -30, -10, -20,
	-10, 0, -20, -40, -40, -20, 0, -10,
	0, 10, -10, -30, -30, -10, 10, 0,
	10, 20, 0, -20, -20, 0, 20, 10,
	30, 40, 20, 0, 0, 20, 40, 30,
	40, 50, 30, 10, 10, 30, 50, 40,
}

var pcsqKingEg = [64]board.Score{
	-72, -48, -36, -24, -24, -36, -48, -72,
	-48, -24, -12, 0, 0, -12, -24, -48,
	-36, -12, 0, 12, 12, 0, -12, -36,
	-24, 0, 12, 24, 24, 12, 0, -24,
	-24, 0, 12, 24, 24, 12, 0, -24,
	-36, -12, 0, 12, 12, 0, -12, -36,
	-48, -24, -12, 0, 0, -12, -24, -48,
	-72, -48, -36, -24, -24, -36, -48, -72,
}

var knightOutpost = [64]board.Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 4, 5, 5, 4, 0, 0,
	0, 2, 5, 10, 10, 5, 2, 0,
	0, 2, 5, 10, 10, 5, 2, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}
