package board

// maxMoveEntries bounds the per-source entries a list can hold. A side has
// at most sixteen pieces.
const maxMoveEntries = 18

// promotionOrder is the order promotion targets expand in.
var promotionOrder = [4]PieceType{Knight, Bishop, Rook, Queen}

// Moves is the destination set of one piece.
type Moves struct {
	Piece   Piece
	From    Square
	Targets Bitboard
}

// MoveList holds the legal destinations of a position grouped by source
// square. Next consumes it; re-query the board for a fresh list.
type MoveList struct {
	entries   [maxMoveEntries]Moves
	n         int
	side      Color
	enPassant Square
	promo     int // promotions already emitted for the current target
}

func newMoveList(side Color, enPassant Square) MoveList {
	return MoveList{side: side, enPassant: enPassant}
}

// push appends an entry; empty destination sets are dropped.
func (ml *MoveList) push(piece Piece, from Square, targets Bitboard) {
	if targets == 0 {
		return
	}
	ml.entries[ml.n] = Moves{Piece: piece, From: from, Targets: targets}
	ml.n++
}

// Entries returns the remaining per-piece destination sets.
func (ml *MoveList) Entries() []Moves {
	return ml.entries[:ml.n]
}

// IsEmpty reports whether no moves remain.
func (ml *MoveList) IsEmpty() bool {
	for i := 0; i < ml.n; i++ {
		if ml.entries[i].Targets != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of moves left without consuming any.
// Promotion targets count once per promotion piece.
func (ml *MoveList) Count() int {
	count := 0
	for i := 0; i < ml.n; i++ {
		e := ml.entries[i]
		count += e.Targets.PopCount()
		if e.Piece.Type() == Pawn {
			count += 3 * (e.Targets & (Rank1 | Rank8)).PopCount()
		}
	}
	return count - ml.promo
}

// Next pops the next move. Entries are drained from the back, destinations
// lowest square first.
func (ml *MoveList) Next() (Move, bool) {
	for ml.n > 0 {
		e := &ml.entries[ml.n-1]
		if e.Targets == 0 {
			ml.n--
			ml.promo = 0
			continue
		}

		to := e.Targets.LSB()
		pt := e.Piece.Type()

		if pt == Pawn && to.Bitboard()&(Rank1|Rank8) != 0 {
			promo := promotionOrder[ml.promo]
			ml.promo++
			if ml.promo == len(promotionOrder) {
				ml.promo = 0
				e.Targets &^= to.Bitboard()
			}
			return NewPromotion(e.From, to, promo), true
		}

		e.Targets &^= to.Bitboard()

		switch {
		// A push onto a stale en-passant square is an ordinary move.
		case pt == Pawn && to == ml.enPassant && to.File() != e.From.File():
			return NewEnPassant(e.From, to), true
		case pt == King && int(to)-int(e.From) == 2:
			return NewCastling(KingSide, e.From, to), true
		case pt == King && int(e.From)-int(to) == 2:
			return NewCastling(QueenSide, e.From, to), true
		}
		return NewMove(e.Piece, e.From, to), true
	}
	return NoMove, false
}

// All drains the list into a slice.
func (ml *MoveList) All() []Move {
	moves := make([]Move, 0, ml.Count())
	for {
		m, ok := ml.Next()
		if !ok {
			return moves
		}
		moves = append(moves, m)
	}
}
