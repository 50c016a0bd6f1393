package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingSideCastle != 0 {
		sb.WriteByte('K')
	}
	if cr&WhiteQueenSideCastle != 0 {
		sb.WriteByte('Q')
	}
	if cr&BlackKingSideCastle != 0 {
		sb.WriteByte('k')
	}
	if cr&BlackQueenSideCastle != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// castlingRight returns the flag for one side and wing.
func castlingRight(c Color, side CastleSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case side == KingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// CanCastle returns true if the given side still holds the right.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&castlingRight(c, side) != 0
}

// castlingMask[sq] is cleared from the rights whenever a move starts or
// ends on sq.
var castlingMask = func() (m [64]CastlingRights) {
	for sq := range m {
		m[sq] = AllCastling
	}
	m[A1] &^= WhiteQueenSideCastle
	m[H1] &^= WhiteKingSideCastle
	m[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	m[A8] &^= BlackQueenSideCastle
	m[H8] &^= BlackKingSideCastle
	m[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	return m
}()

// Position is the raw board state: placement, side to move, castling rights,
// en passant target and move counters. It knows nothing about legality.
type Position struct {
	Pieces [6]Bitboard // [PieceType], both colors
	Colors [2]Bitboard // [Color], all piece types

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// EmptyPosition returns a position with no pieces and White to move.
func EmptyPosition() Position {
	return Position{EnPassant: NoSquare, FullMoveNumber: 1}
}

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard {
	return p.Colors[White] | p.Colors[Black]
}

// Occupancy returns the squares held by color c.
func (p *Position) Occupancy(c Color) Bitboard {
	return p.Colors[c]
}

// PiecesOf returns the squares holding pieces of type pt and color c.
func (p *Position) PiecesOf(pt PieceType, c Color) Bitboard {
	return p.Pieces[pt] & p.Colors[c]
}

// King returns the king square of color c, or false when there is none.
func (p *Position) King(c Color) (Square, bool) {
	kings := p.PiecesOf(King, c)
	if kings == 0 {
		return NoSquare, false
	}
	return kings.LSB(), true
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := sq.Bitboard()

	var c Color
	switch {
	case p.Colors[White]&bb != 0:
		c = White
	case p.Colors[Black]&bb != 0:
		c = Black
	default:
		return NoPiece
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Occupied()&sq.Bitboard() == 0
}

// toggle flips piece on the given squares with XOR.
func (p *Position) toggle(piece Piece, squares Bitboard) {
	p.Pieces[piece.Type()] ^= squares
	p.Colors[piece.Color()] ^= squares
}

// setPiece places a piece on an empty square.
func (p *Position) setPiece(piece Piece, sq Square) {
	p.toggle(piece, sq.Bitboard())
}

// removePiece clears sq and returns what stood there.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece != NoPiece {
		p.toggle(piece, sq.Bitboard())
	}
	return piece
}

// movePiece relocates the piece on from to the empty square to.
func (p *Position) movePiece(piece Piece, from, to Square) {
	p.toggle(piece, from.Bitboard()|to.Bitboard())
}

// MakeMove applies m to the position. It returns false and leaves the
// position untouched when the move does not resolve against the board:
// no own piece on the origin, a missing en passant victim or castling
// rook, or a capture of an own piece. It does not check legality.
func (p *Position) MakeMove(m Move) bool {
	next := *p
	if !next.apply(m) {
		return false
	}
	*p = next
	return true
}

func (p *Position) apply(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	resetClock := false
	enPassant := NoSquare

	switch m.Kind {
	case KindStandard:
		if m.From >= NoSquare || m.To >= NoSquare {
			return false
		}
		piece := p.PieceAt(m.From)
		if piece == NoPiece || piece.Color() != us || m.From == m.To {
			return false
		}
		if m.Piece != NoPiece && m.Piece != piece {
			return false
		}
		captured := p.PieceAt(m.To)
		if captured != NoPiece {
			if captured.Color() == us {
				return false
			}
			p.toggle(captured, m.To.Bitboard())
			resetClock = true
		}
		p.movePiece(piece, m.From, m.To)

		if piece.Type() == Pawn {
			resetClock = true
			if d := int(m.To) - int(m.From); d == 16 || d == -16 {
				enPassant = Square((int(m.From) + int(m.To)) / 2)
			}
		}
		p.Castling &= castlingMask[m.From] & castlingMask[m.To]

	case KindPromotion:
		if m.From >= NoSquare || m.To >= NoSquare {
			return false
		}
		pawn := NewPiece(Pawn, us)
		if p.PieceAt(m.From) != pawn || m.Promotion < Knight || m.Promotion > Queen {
			return false
		}
		captured := p.PieceAt(m.To)
		if captured != NoPiece {
			if captured.Color() == us {
				return false
			}
			p.toggle(captured, m.To.Bitboard())
		}
		p.toggle(pawn, m.From.Bitboard())
		p.setPiece(NewPiece(m.Promotion, us), m.To)
		resetClock = true
		p.Castling &= castlingMask[m.From] & castlingMask[m.To]

	case KindEnPassant:
		pawn := NewPiece(Pawn, us)
		if p.PieceAt(m.From) != pawn || !p.IsEmpty(m.To) {
			return false
		}
		victimSq, ok := m.To.Shift(us.backward())
		if !ok || p.PieceAt(victimSq) != NewPiece(Pawn, them) {
			return false
		}
		p.toggle(NewPiece(Pawn, them), victimSq.Bitboard())
		p.movePiece(pawn, m.From, m.To)
		resetClock = true

	case KindCastling:
		kingFrom, kingTo, rookFrom, rookTo := castleSquares(us, m.Castle)
		if m.From != kingFrom || m.To != kingTo {
			return false
		}
		king, rook := NewPiece(King, us), NewPiece(Rook, us)
		if p.PieceAt(kingFrom) != king || p.PieceAt(rookFrom) != rook {
			return false
		}
		if !p.IsEmpty(kingTo) || !p.IsEmpty(rookTo) {
			return false
		}
		p.movePiece(king, kingFrom, kingTo)
		p.movePiece(rook, rookFrom, rookTo)
		p.Castling &= castlingMask[kingFrom] & castlingMask[rookFrom]

	case KindPut:
		if m.Piece >= NoPiece || m.To >= NoSquare || !p.IsEmpty(m.To) {
			return false
		}
		p.setPiece(m.Piece, m.To)

	case KindRemove:
		if m.From >= NoSquare || p.removePiece(m.From) == NoPiece {
			return false
		}
		p.Castling &= castlingMask[m.From]

	default:
		return false
	}

	p.EnPassant = enPassant
	if resetClock {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
	return true
}

// Validate checks the invariants move generation relies on.
func (p *Position) Validate() error {
	if p.Colors[White]&p.Colors[Black] != 0 {
		return fmt.Errorf("squares claimed by both colors: %#x", uint64(p.Colors[White]&p.Colors[Black]))
	}

	var union Bitboard
	for pt := Pawn; pt <= King; pt++ {
		if union&p.Pieces[pt] != 0 {
			return fmt.Errorf("squares claimed by more than one piece type")
		}
		union |= p.Pieces[pt]
	}
	if union != p.Occupied() {
		return fmt.Errorf("piece and color sets disagree")
	}

	// Check that each side has exactly one king
	if p.PiecesOf(King, White).PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.PiecesOf(King, Black).PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}

	// Check that pawns are not on rank 1 or 8
	if p.Pieces[Pawn]&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}

	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}
