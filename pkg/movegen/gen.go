package movegen

import "github.com/climblabs/corvid/pkg/board"

// gen fills ml with legal moves for the side to move. When capturesOnly is true (quiescence,
// not in check), only captures and promotions are produced.
func gen(b *board.Board, ml *board.MoveList, capturesOnly bool) {
	turn := b.Turn()
	opp := turn.Opponent()
	ownBB := b.All(turn)
	oppBB := b.All(opp)
	occ := b.Occupied()

	chk := checkers(b)
	numCheckers := chk.PopCount()

	genKingMoves(b, ml, capturesOnly)
	if numCheckers >= 2 {
		return // double check: only the king can move
	}

	var targetMask board.Bitboard
	if numCheckers == 0 {
		targetMask = board.FullBitboard &^ ownBB
	} else {
		targetMask = evasionMask(b, chk) &^ ownBB
	}
	if capturesOnly {
		targetMask &= oppBB
	}

	pins := pinnedMask(b)
	discovered := discoveredCheckMask(b)

	for _, p := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		bb := b.Pieces(turn, p)
		for bb != 0 {
			var from board.Square
			from, bb = bb.PopSquare()
			attacks := board.Attackboard(occ, from, p) &^ ownBB & targetMask & allowedSquares(pins, from)
			for attacks != 0 {
				var to board.Square
				to, attacks = attacks.PopSquare()
				_, captured, _ := b.Square(to)
				m := board.Move{From: from, To: to, Piece: p, Captured: captured}
				m.IsCheck = directCheck(b, occ, m) || discoveredGivesCheck(discovered, from, to)
				ml.Add(m)
			}
		}
	}

	genPawnMoves(b, ml, targetMask, pins, discovered, capturesOnly)

	if !capturesOnly && numCheckers == 0 {
		genCastling(b, ml)
	}
}

func genKingMoves(b *board.Board, ml *board.MoveList, capturesOnly bool) {
	turn := b.Turn()
	opp := turn.Opponent()
	king := b.King(turn)
	ownBB := b.All(turn)
	occWithoutKing := b.Occupied() &^ board.BitMask(king)

	dests := board.KingAttackboard(king) &^ ownBB
	if capturesOnly {
		dests &= b.All(opp)
	}
	for dests != 0 {
		var to board.Square
		to, dests = dests.PopSquare()
		if isAttackedWithOcc(b, opp, to, occWithoutKing) {
			continue
		}
		_, captured, _ := b.Square(to)
		ml.Add(board.Move{From: king, To: to, Piece: board.King, Captured: captured})
	}
}

func genPawnMoves(b *board.Board, ml *board.MoveList, targetMask board.Bitboard, pins map[board.Square]board.Bitboard, discovered map[board.Square]board.Bitboard, capturesOnly bool) {
	turn := b.Turn()
	occ := b.Occupied()
	oppBB := b.All(turn.Opponent())
	promoRank := board.PawnPromotionRank(turn)

	pawns := b.Pieces(turn, board.Pawn)
	for pawns != 0 {
		var from board.Square
		from, pawns = pawns.PopSquare()
		allowed := allowedSquares(pins, from)

		add := func(to board.Square, captured board.Piece, ep bool, epVictim board.Square) {
			if promoRank.IsSet(to) {
				for _, pr := range []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
					m := board.Move{From: from, To: to, Piece: board.Pawn, Captured: captured, Promotion: pr, EnPassant: ep, EPVictim: epVictim}
					m.IsCheck = directCheck(b, occ, m) || discoveredGivesCheck(discovered, from, to)
					ml.Add(m)
				}
				return
			}
			m := board.Move{From: from, To: to, Piece: board.Pawn, Captured: captured, EnPassant: ep, EPVictim: epVictim}
			m.IsCheck = directCheck(b, occ, m) || discoveredGivesCheck(discovered, from, to)
			ml.Add(m)
		}

		if !capturesOnly {
			adv := board.PawnAdvance(turn)
			to1 := board.Square(int(from) + adv)
			if to1.IsValid() && board.BitMask(to1)&occ == 0 {
				if board.BitMask(to1)&allowed&targetMask != 0 {
					add(to1, board.NoPiece, false, 0)
				}
				if board.PawnHomeRank(turn).IsSet(from) {
					to2 := board.Square(int(from) + 2*adv)
					if board.BitMask(to2)&occ == 0 && board.BitMask(to2)&allowed&targetMask != 0 {
						add(to2, board.NoPiece, false, 0)
					}
				}
			}
		}

		capTargets := board.PawnCaptureboard(turn, board.BitMask(from)) & oppBB & allowed & targetMask
		for capTargets != 0 {
			var to board.Square
			to, capTargets = capTargets.PopSquare()
			_, captured, _ := b.Square(to)
			add(to, captured, false, 0)
		}

		if epSq, ok := b.EnPassant(); ok && board.PawnCaptureboard(turn, board.BitMask(from)).IsSet(epSq) {
			victim := board.Square(int(epSq) - board.PawnAdvance(turn))
			// epSq itself is always empty, so it never satisfies a "block the check" target
			// mask; capturing the checking pawn via en passant is legal whenever victim does
			// (when in check) or unconditionally (when not in check).
			inTarget := targetMask == board.FullBitboard || targetMask.IsSet(victim)
			inPin := allowed == board.FullBitboard || allowed.IsSet(epSq)
			if inTarget && inPin && enPassantLegal(b, from, epSq, victim) {
				add(epSq, board.Pawn, true, victim)
			}
		}
	}
}

func genCastling(b *board.Board, ml *board.MoveList) {
	turn := b.Turn()
	king := b.King(turn)
	occ := b.Occupied()
	rights := b.Castling()

	try := func(side board.CastlingSide) {
		right := side.RightFor(turn)
		if !rights.IsAllowed(right) {
			return
		}
		var kingTo, rookFrom, rookTo board.Square
		var betweenEmpty board.Bitboard
		var kingPath []board.Square
		if turn == board.White {
			if side == board.KingSide {
				kingTo, rookFrom, rookTo = board.G1, board.H1, board.F1
				betweenEmpty = board.BitMask(board.F1) | board.BitMask(board.G1)
				kingPath = []board.Square{board.E1, board.F1, board.G1}
			} else {
				kingTo, rookFrom, rookTo = board.C1, board.A1, board.D1
				betweenEmpty = board.BitMask(board.B1) | board.BitMask(board.C1) | board.BitMask(board.D1)
				kingPath = []board.Square{board.E1, board.D1, board.C1}
			}
		} else {
			if side == board.KingSide {
				kingTo, rookFrom, rookTo = board.G8, board.H8, board.F8
				betweenEmpty = board.BitMask(board.F8) | board.BitMask(board.G8)
				kingPath = []board.Square{board.E8, board.F8, board.G8}
			} else {
				kingTo, rookFrom, rookTo = board.C8, board.A8, board.D8
				betweenEmpty = board.BitMask(board.B8) | board.BitMask(board.C8) | board.BitMask(board.D8)
				kingPath = []board.Square{board.E8, board.D8, board.C8}
			}
		}
		if _, p, ok := b.Square(rookFrom); !ok || p != board.Rook {
			return
		}
		if occ&betweenEmpty != 0 {
			return
		}
		for _, sq := range kingPath {
			if b.IsAttacked(turn, sq) {
				return
			}
		}

		m := board.Move{From: king, To: kingTo, Piece: board.King, IsCastling: true, CastlingSide: side}
		// A rook landing on rookTo may itself deliver check on the opponent's king.
		oppKing := b.King(turn.Opponent())
		if board.RookAttackboard(occ&^board.BitMask(rookFrom)|board.BitMask(rookTo), rookTo).IsSet(oppKing) {
			m.IsCheck = true
		}
		ml.Add(m)
	}

	try(board.KingSide)
	try(board.QueenSide)
}

// isAttackedWithOcc is IsAttacked but computed against a supplied occupancy, used when checking
// a king's escape squares (the king itself must not block its own slider check calculation).
func isAttackedWithOcc(b *board.Board, byColor board.Color, sq board.Square, occ board.Bitboard) bool {
	if bq := b.BishopOrQueen(byColor); bq != 0 && board.BishopAttackboard(occ, sq)&bq != 0 {
		return true
	}
	if rq := b.RookOrQueen(byColor); rq != 0 && board.RookAttackboard(occ, sq)&rq != 0 {
		return true
	}
	if n := b.Pieces(byColor, board.Knight); n != 0 && board.KnightAttackboard(sq)&n != 0 {
		return true
	}
	if k := b.Pieces(byColor, board.King); k != 0 && board.KingAttackboard(sq)&k != 0 {
		return true
	}
	return board.PawnCaptureboard(byColor, b.Pieces(byColor, board.Pawn)).IsSet(sq)
}

// enPassantLegal checks the one edge case pin masks don't cover: both the capturing and the
// captured pawn disappearing from the same rank can expose the king to a rook/queen along it.
func enPassantLegal(b *board.Board, from, epSq, victim board.Square) bool {
	turn := b.Turn()
	opp := turn.Opponent()
	king := b.King(turn)
	occ := b.Occupied()&^board.BitMask(from)&^board.BitMask(victim) | board.BitMask(epSq)
	if board.RookAttackboard(occ, king)&b.RookOrQueen(opp) != 0 {
		return false
	}
	if board.BishopAttackboard(occ, king)&b.BishopOrQueen(opp) != 0 {
		return false
	}
	return true
}

// directCheck reports whether the moving/promoted piece, once on m.To, attacks the opponent
// king, using the occupancy as it will be immediately after the move (for an en-passant capture,
// the victim's square m.EPVictim is cleared as well).
func directCheck(b *board.Board, occ board.Bitboard, m board.Move) bool {
	turn := b.Turn()
	oppKing := b.King(turn.Opponent())
	after := occ &^ board.BitMask(m.From) | board.BitMask(m.To)
	if m.EnPassant {
		after &^= board.BitMask(m.EPVictim)
	}
	piece := m.Piece
	if m.Promotion != board.NoPiece {
		piece = m.Promotion
	}
	switch piece {
	case board.Pawn:
		return board.PawnCaptureboard(turn, board.BitMask(m.To)).IsSet(oppKing)
	case board.Knight:
		return board.KnightAttackboard(m.To).IsSet(oppKing)
	case board.King:
		return false // kings never give check
	default:
		return board.Attackboard(after, m.To, piece).IsSet(oppKing)
	}
}

// discoveredCheckMask returns, for each of the side to move's own pieces sitting between one of
// its own sliders and the opponent king, the ray (inclusive of the slider's square) such that
// moving off that ray uncovers a check.
func discoveredCheckMask(b *board.Board) map[board.Square]board.Bitboard {
	turn := b.Turn()
	oppKing := b.King(turn.Opponent())
	own := b.All(turn)
	occ := b.Occupied()

	out := map[board.Square]board.Bitboard{}
	consider := func(sliders board.Bitboard, ray board.Piece) {
		for sliders != 0 {
			var sq board.Square
			sq, sliders = sliders.PopSquare()
			if !board.Attackboard(0, oppKing, ray).IsSet(sq) {
				continue // not on a line this kind of slider moves along
			}
			between := board.BetweenMask(sq, oppKing) &^ board.BitMask(oppKing)
			blockers := between & occ
			if blockers.PopCount() != 1 {
				continue
			}
			if blockers&own == 0 {
				continue
			}
			// The ray the blocker must leave to uncover the check: the squares between the
			// slider and the opponent king, plus the slider's own square (a capture of the
			// slider itself is not a discovered check either).
			out[blockers.LSB()] = between | board.BitMask(sq)
		}
	}
	consider(b.BishopOrQueen(turn), board.Bishop)
	consider(b.RookOrQueen(turn), board.Rook)
	return out
}

// discoveredGivesCheck reports whether moving `from` to `to` uncovers a discovered check,
// i.e. `from` sits on a discovered-check ray and `to` is not still on the segment between the
// revealing slider and the opponent king (which would still block it).
func discoveredGivesCheck(discovered map[board.Square]board.Bitboard, from, to board.Square) bool {
	ray, ok := discovered[from]
	if !ok {
		return false
	}
	return ray&board.BitMask(to) == 0
}
