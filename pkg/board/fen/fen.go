// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/climblabs/corvid/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Board. Square 0 (A8) is the first square described by FEN's
// piece-placement field, so (unlike a reversed numbering) decoding walks the placement field and
// the Square index in the same direction -- no remapping needed.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Board, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}

	// (1) Piece placement, rank 8 down to rank 1, file a through h per rank.

	var placements []board.Placement
	sq := board.ZeroSquare
	for _, r := range parts[0] {
		switch {
		case r == '/':
			// Cosmetic rank separator.
		case unicode.IsDigit(r):
			sq += board.Square(r - '0')
		case unicode.IsLetter(r):
			c, p, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN: %q", r, s)
			}
			placements = append(placements, board.Placement{Square: sq, Color: c, Piece: p})
			sq++
		default:
			return nil, fmt.Errorf("invalid character %q in FEN: %q", r, s)
		}
	}
	if sq != board.NumSquares {
		return nil, fmt.Errorf("invalid number of squares in FEN: %q", s)
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling rights in FEN: %q", s)
	}

	// (4) En-passant target square.

	var ep board.Square
	var epValid bool
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square in FEN: %q: %w", s, err)
		}
		ep = sq
		epValid = true
	}

	// (5) Halfmove (fifty-move) clock.

	fifty, err := strconv.Atoi(parts[4])
	if err != nil || fifty < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number.

	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil || fullmoves < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	return board.NewBoard(placements, turn, castling, ep, epValid, fifty, fullmoves)
}

// Encode renders b as a FEN record.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if sq != 0 && sq%8 == 0 {
			sb.WriteRune('/')
		}
		c, p, ok := b.Square(sq)
		if !ok {
			sb.WriteRune('1')
			continue
		}
		sb.WriteRune(printPiece(c, p))
	}
	record := collapseBlanks(sb.String())

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", record, printColor(b.Turn()), printCastling(b.Castling()), ep, b.Info().FiftyMove, b.FullMoves())
}

// collapseBlanks merges consecutive "1" placeholders emitted by the per-square encode loop into
// the run-length digits FEN expects (e.g. "111" -> "3").
func collapseBlanks(s string) string {
	var sb strings.Builder
	run := 0
	flush := func() {
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
			run = 0
		}
	}
	for _, r := range s {
		if r == '1' {
			run++
			continue
		}
		flush()
		sb.WriteRune(r)
	}
	flush()
	return sb.String()
}

func parseCastling(s string) (board.Castling, bool) {
	var c board.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return c, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	return c.String()
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	c := board.White
	if unicode.IsLower(r) {
		c = board.Black
	}
	p, ok := board.ParsePiece(r)
	return c, p, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	return []rune(board.PieceGlyph(c, p))[0]
}
