package board

import "fmt"

// Square represents a square on the board. Square 0 is A8 and square 63 is H1: file = square
// mod 8 (0=A .. 7=H), rank = square div 8 (0 = rank 8, the second-mover's back rank on the
// initial position, .. 7 = rank 1). This layout matches the natural top-to-bottom,
// left-to-right order FEN piece placement is written in, so FEN decode/encode need no
// per-square remapping. 6 bits.
type Square uint8

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
)

// Named squares, one constant per square, in standard algebraic notation.
const (
	A8 Square = 0
	B8 Square = 1
	C8 Square = 2
	D8 Square = 3
	E8 Square = 4
	F8 Square = 5
	G8 Square = 6
	H8 Square = 7
	A7 Square = 8
	B7 Square = 9
	C7 Square = 10
	D7 Square = 11
	E7 Square = 12
	F7 Square = 13
	G7 Square = 14
	H7 Square = 15
	A6 Square = 16
	B6 Square = 17
	C6 Square = 18
	D6 Square = 19
	E6 Square = 20
	F6 Square = 21
	G6 Square = 22
	H6 Square = 23
	A5 Square = 24
	B5 Square = 25
	C5 Square = 26
	D5 Square = 27
	E5 Square = 28
	F5 Square = 29
	G5 Square = 30
	H5 Square = 31
	A4 Square = 32
	B4 Square = 33
	C4 Square = 34
	D4 Square = 35
	E4 Square = 36
	F4 Square = 37
	G4 Square = 38
	H4 Square = 39
	A3 Square = 40
	B3 Square = 41
	C3 Square = 42
	D3 Square = 43
	E3 Square = 44
	F3 Square = 45
	G3 Square = 46
	H3 Square = 47
	A2 Square = 48
	B2 Square = 49
	C2 Square = 50
	D2 Square = 51
	E2 Square = 52
	F2 Square = 53
	G2 Square = 54
	H2 Square = 55
	A1 Square = 56
	B1 Square = 57
	C1 Square = 58
	D1 Square = 59
	E1 Square = 60
	F1 Square = 61
	G1 Square = 62
	H1 Square = 63
)

func NewSquare(f File, r Rank) Square {
	return Square(r)*8 + Square(f)
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", string(f))
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", string(r))
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

// File returns the file, 0 (A) .. 7 (H).
func (s Square) File() File {
	return File(s % 8)
}

// Rank returns the rank index, 0 (rank 8) .. 7 (rank 1).
func (s Square) Rank() Rank {
	return Rank(s / 8)
}

func (s Square) String() string {
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a board rank index, 0 = rank 8 (second-mover's home rank) .. 7 = rank 1.
type Rank uint8

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8

	Rank8 Rank = 0
	Rank7 Rank = 1
	Rank6 Rank = 2
	Rank5 Rank = 3
	Rank4 Rank = 4
	Rank3 Rank = 5
	Rank2 Rank = 6
	Rank1 Rank = 7
)

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	// '1' -> Rank1 (7), '8' -> Rank8 (0).
	return Rank('8' - r), true
}

func (r Rank) IsValid() bool {
	return r < NumRanks
}

// V returns the rank as the conventional 0-indexed distance from rank 1 (Rank1 -> 0, Rank8 -> 7).
func (r Rank) V() int {
	return 7 - int(r)
}

func (r Rank) String() string {
	return fmt.Sprintf("%v", r.V()+1)
}

// File represents a board file index, 0 (A) .. 7 (H).
type File uint8

const (
	ZeroFile File = 0
	NumFiles File = 8

	FileA File = 0
	FileB File = 1
	FileC File = 2
	FileD File = 3
	FileE File = 4
	FileF File = 5
	FileG File = 6
	FileH File = 7
)

func ParseFile(r rune) (File, bool) {
	switch {
	case r >= 'a' && r <= 'h':
		return File(r - 'a'), true
	case r >= 'A' && r <= 'H':
		return File(r - 'A'), true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f < NumFiles
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	return string(rune('a' + f))
}
