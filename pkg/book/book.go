// Package book implements an opening book: a set of positions keyed by Zobrist hash, each
// carrying a game count and a win count, used to pick a move without searching and to learn from
// played games. The on-disk format is a flat run of 8+2+2 byte little-endian records (key, games,
// wins) sorted ascending by key, read and probed by binary search; the in-memory form keeps the
// same sorted-slice shape so loading, probing, and saving share one representation.
package book

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/climblabs/corvid/pkg/board"
	"github.com/climblabs/corvid/pkg/movegen"
	"github.com/seekerror/logw"
)

const recordSize = 8 + 2 + 2

// learnPlyLimit caps learning to the opening: positions reached later in the game say less about
// opening theory and more about how that particular game happened to go.
const learnPlyLimit = 26

// entry is one book position: a Zobrist key and the number of times it was reached (games) and
// turned into a win for the side that reached it (wins).
type entry struct {
	key   board.ZobristKey
	games uint16
	wins  uint16
}

// score weighs an entry for move selection: (wins^2)/games, so a position reached often and won
// often outranks one reached once and won once, without letting a single lucky game dominate a
// position with a long track record.
func (e entry) score() int {
	return int(e.wins) * int(e.wins) / int(e.games)
}

// Book is an opening book held in memory, sorted ascending by Zobrist key. The zero value is an
// empty book.
type Book struct {
	entries []entry
	rand    *rand.Rand

	learn    bool
	modified bool
}

// New returns an empty, usable book with learning enabled.
func New() *Book {
	return &Book{rand: rand.New(rand.NewSource(time.Now().UnixNano())), learn: true}
}

// SetLearn toggles whether Learn records anything; disabled books silently no-op Learn calls,
// matching a `learn=false` configuration setting.
func (b *Book) SetLearn(enabled bool) {
	b.learn = enabled
}

// Load reads a book file into memory, replacing any existing entries.
func Load(ctx context.Context, path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("book: open %v: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("book: stat %v: %w", path, err)
	}
	if info.Size()%recordSize != 0 {
		return nil, fmt.Errorf("book: %v: size %v is not a multiple of the %v-byte record size", path, info.Size(), recordSize)
	}

	n := int(info.Size() / recordSize)
	entries := make([]entry, 0, n)

	r := bufio.NewReader(f)
	var buf [recordSize]byte
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("book: %v: reading record %v: %w", path, i, err)
		}
		entries = append(entries, entry{
			key:   board.ZobristKey(binary.LittleEndian.Uint64(buf[0:8])),
			games: binary.LittleEndian.Uint16(buf[8:10]),
			wins:  binary.LittleEndian.Uint16(buf[10:12]),
		})
	}

	logw.Infof(ctx, "book: loaded %v positions from %v", len(entries), path)
	return &Book{entries: entries, rand: rand.New(rand.NewSource(time.Now().UnixNano())), learn: true}, nil
}

// Save writes the book to path in ascending-key order, the same layout Load reads. It is a no-op
// if the book has not changed since it was loaded (or since the last Save).
func (b *Book) Save(ctx context.Context, path string) error {
	if !b.modified {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("book: create %v: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var buf [recordSize]byte
	for _, e := range b.entries {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(e.key))
		binary.LittleEndian.PutUint16(buf[8:10], e.games)
		binary.LittleEndian.PutUint16(buf[10:12], e.wins)
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("book: writing %v: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("book: flushing %v: %w", path, err)
	}

	logw.Infof(ctx, "book: saved %v positions to %v", len(b.entries), path)
	b.modified = false
	return nil
}

// Len returns the number of positions in the book.
func (b *Book) Len() int {
	return len(b.entries)
}

func (b *Book) find(key board.ZobristKey) (entry, bool) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].key >= key })
	if i < len(b.entries) && b.entries[i].key == key {
		return b.entries[i], true
	}
	return entry{}, false
}

// candidate is a legal move from the current position together with the book score of the
// position it leads to.
type candidate struct {
	move  board.Move
	score int
}

// candidates returns every legal move from b whose resulting position is both a book hit and not
// an immediate repetition -- a move that merely repeats a position is never worth steering
// towards on book knowledge alone.
func (bk *Book) candidates(b *board.Board) []candidate {
	var out []candidate

	moves := movegen.Generate(b)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}

		b.MakeMove(m)
		if b.RepetitionCount(b.Info().FiftyMove) == 1 {
			if e, found := bk.find(b.Key()); found {
				out = append(out, candidate{move: m, score: e.score()})
			}
		}
		b.UndoMove()
	}
	return out
}

// Moves returns every book move available from the current position, along with each move's
// share of the total book weight (0 to 1), for display purposes (e.g. a "book" command).
func (bk *Book) Moves(b *board.Board) map[board.Move]float64 {
	cands := bk.candidates(b)

	total := 0
	for _, c := range cands {
		total += c.score
	}
	if total <= 0 {
		return nil
	}

	out := make(map[board.Move]float64, len(cands))
	for _, c := range cands {
		if c.score > 0 {
			out[c.move] = float64(c.score) / float64(total)
		}
	}
	return out
}

// Probe picks a book move for the current position by weighted random selection over the scored
// candidates: a draw from [0, total) is taken, and the first move whose cumulative weight passes
// the draw is returned. Returns ok=false if no book move is available.
func (bk *Book) Probe(b *board.Board) (board.Move, bool) {
	cands := bk.candidates(b)

	total := 0
	for _, c := range cands {
		total += c.score
	}
	if total <= 0 {
		return board.InvalidMove, false
	}

	draw := bk.rand.Intn(total)
	cum := 0
	for _, c := range cands {
		cum += c.score
		if cum > draw {
			return c.move, true
		}
	}
	return board.InvalidMove, false // unreachable if total was computed correctly
}

// Learn records the outcome of a finished game into the book: for every position reached within
// the first learnPlyLimit plies, the side that played the move leading to it is credited with a
// win (points=2) if it was winner, or nothing (points=0) otherwise. keys holds one Zobrist key per
// ply played so far (keys[i] is the position reached after the i-th move, 1-indexed; keys[0] is
// unused).
func (b *Book) Learn(keys []board.ZobristKey, winner board.Color) {
	if !b.learn {
		return
	}

	limit := len(keys)
	if limit > learnPlyLimit+1 {
		limit = learnPlyLimit + 1
	}

	for i := 1; i < limit; i++ {
		if keys[i] == 0 {
			continue
		}

		mover := board.White
		if i%2 == 0 {
			mover = board.Black
		}

		points := 0
		if mover == winner {
			points = 2
		}
		b.save(keys[i], points)
	}
}

// save records one game (and, if points > 0, one win) for key, creating a new entry if needed.
// Game and win counts saturate at 65535 rather than wrapping.
func (b *Book) save(key board.ZobristKey, points int) {
	b.modified = true

	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].key >= key })
	if i < len(b.entries) && b.entries[i].key == key {
		e := &b.entries[i]
		if e.games < 65535 {
			e.games++
			if points == 2 && e.wins < 65535 {
				e.wins++
			}
		}
		return
	}

	wins := uint16(0)
	if points == 2 {
		wins = 1
	}

	b.entries = append(b.entries, entry{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = entry{key: key, games: 1, wins: wins}
}
