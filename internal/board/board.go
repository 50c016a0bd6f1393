package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned when a move is not legal in the position.
var ErrIllegalMove = errors.New("illegal move")

// Board is a Position together with its derived check state. It is a value
// type: copy it to explore a line without touching the original.
type Board struct {
	Position

	Checkers Bitboard // enemy pieces attacking the king of the side to move
	Pinned   Bitboard // own pieces that may only move along their pin line
	Result   Result

	moves MoveList
}

// NewBoard validates p and derives checkers, pins, moves and result.
func NewBoard(p Position) (Board, error) {
	if err := p.Validate(); err != nil {
		return Board{}, fmt.Errorf("new board: %w", err)
	}
	b := Board{Position: p}
	b.refresh()
	return b, nil
}

// NewBoardFromFEN parses fen and builds a board from it.
func NewBoardFromFEN(fen string) (Board, error) {
	p, err := ParseFEN(fen)
	if err != nil {
		return Board{}, err
	}
	return NewBoard(p)
}

// StartBoard returns the standard starting position.
func StartBoard() Board {
	b, err := NewBoardFromFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// refresh recomputes everything derived from the position.
func (b *Board) refresh() {
	b.calculateCheckers()
	b.calculatePinned()
	b.moves = b.generateMoves()
	b.Result = classify(&b.Position, b.InCheck(), b.moves.IsEmpty())
}

// mustKing returns the king square of c. A board without one breaks the
// invariant every caller relies on.
func (b *Board) mustKing(c Color) Square {
	sq, ok := b.King(c)
	if !ok {
		panic(fmt.Sprintf("board: no %s king", c))
	}
	return sq
}

// mustChecker returns the single checking piece. Only valid in check.
func (b *Board) mustChecker() Square {
	if b.Checkers == 0 {
		panic("board: no checker while in check")
	}
	return b.Checkers.LSB()
}

// calculateCheckers finds enemy pieces attacking our king.
func (b *Board) calculateCheckers() {
	us := b.SideToMove
	them := us.Other()
	king := b.mustKing(us)
	occ := b.Occupied()

	b.Checkers = PawnAttacks(king, us)&b.PiecesOf(Pawn, them) |
		KnightAttacks(king)&b.PiecesOf(Knight, them) |
		BishopAttacks(king, occ)&(b.PiecesOf(Bishop, them)|b.PiecesOf(Queen, them)) |
		RookAttacks(king, occ)&(b.PiecesOf(Rook, them)|b.PiecesOf(Queen, them))
}

// calculatePinned finds own pieces shielding the king from an enemy slider.
// A slider seen from the king only once the own blockers are lifted is a
// pinner; the single own piece between them is pinned.
func (b *Board) calculatePinned() {
	us := b.SideToMove
	them := us.Other()
	king := b.mustKing(us)
	occ := b.Occupied()
	own := b.Colors[us]

	b.Pinned = 0

	queens := b.PiecesOf(Queen, them)
	sliders := [2]struct {
		attacks func(Square, Bitboard) Bitboard
		enemies Bitboard
	}{
		{BishopAttacks, b.PiecesOf(Bishop, them) | queens},
		{RookAttacks, b.PiecesOf(Rook, them) | queens},
	}

	for _, s := range sliders {
		seen := s.attacks(king, occ)
		blockers := own & seen
		pinners := (seen ^ s.attacks(king, occ^blockers)) & s.enemies
		for pinners != 0 {
			pinner := pinners.PopLSB()
			b.Pinned |= own & Direct(king, pinner)
		}
	}
}

// InCheck returns true if the side to move is in check.
func (b *Board) InCheck() bool {
	return b.Checkers != 0
}

// IsAttacked reports whether color by attacks sq given occupancy occ.
func (b *Board) IsAttacked(sq Square, by Color, occ Bitboard) bool {
	queens := b.PiecesOf(Queen, by)
	return PawnAttacks(sq, by.Other())&b.PiecesOf(Pawn, by) != 0 ||
		KnightAttacks(sq)&b.PiecesOf(Knight, by) != 0 ||
		KingAttacks(sq)&b.PiecesOf(King, by) != 0 ||
		BishopAttacks(sq, occ)&(b.PiecesOf(Bishop, by)|queens) != 0 ||
		RookAttacks(sq, occ)&(b.PiecesOf(Rook, by)|queens) != 0
}

// GenerateMoves returns a fresh copy of the cached move list. Draining the
// copy leaves the board's cache intact.
func (b *Board) GenerateMoves() MoveList {
	return b.moves
}

// LegalMoves returns every legal move in the position.
func (b *Board) LegalMoves() []Move {
	ml := b.GenerateMoves()
	return ml.All()
}

// MoveCount returns the number of legal moves.
func (b *Board) MoveCount() int {
	return b.moves.Count()
}

// IsLegal reports whether m is one of the position's legal moves.
func (b *Board) IsLegal(m Move) bool {
	ml := b.GenerateMoves()
	for {
		legal, ok := ml.Next()
		if !ok {
			return false
		}
		if sameMove(legal, m) {
			return true
		}
	}
}

// sameMove compares the fields that identify a move. A standard move built
// without its piece still matches.
func sameMove(a, b Move) bool {
	if a.Kind != b.Kind || a.From != b.From || a.To != b.To {
		return false
	}
	switch a.Kind {
	case KindPromotion:
		return a.Promotion == b.Promotion
	case KindStandard:
		return a.Piece == b.Piece || a.Piece == NoPiece || b.Piece == NoPiece
	case KindCastling:
		return a.Castle == b.Castle
	}
	return true
}

// MakeMove applies m without a legality check and recomputes the derived
// state. It returns false with the board unchanged when the move does not
// resolve or would leave either side without exactly one king.
func (b *Board) MakeMove(m Move) bool {
	next := b.Position
	if !next.MakeMove(m) {
		return false
	}
	if next.PiecesOf(King, White).PopCount() != 1 || next.PiecesOf(King, Black).PopCount() != 1 {
		return false
	}
	b.Position = next
	b.refresh()
	return true
}

// PlayMove applies m only if it is legal.
func (b *Board) PlayMove(m Move) bool {
	if !b.IsLegal(m) {
		return false
	}
	return b.MakeMove(m)
}

// WithMove returns a copy of the board with m applied.
func (b Board) WithMove(m Move) (Board, bool) {
	ok := b.MakeMove(m)
	return b, ok
}

// ParseMove resolves a UCI move string ("e2e4", "e7e8q") against the legal
// moves of the position.
func (b *Board) ParseMove(s string) (Move, error) {
	ml := b.GenerateMoves()
	for {
		m, ok := ml.Next()
		if !ok {
			return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
		}
		if m.String() == s {
			return m, nil
		}
	}
}
