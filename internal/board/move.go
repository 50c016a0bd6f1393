package board

import "fmt"

// MoveKind tags the variant a Move holds.
type MoveKind uint8

const (
	KindStandard MoveKind = iota
	KindPromotion
	KindEnPassant
	KindCastling
	KindPut    // editor: place a piece
	KindRemove // editor: take a piece off the board
)

// String returns the kind name.
func (k MoveKind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindPromotion:
		return "promotion"
	case KindEnPassant:
		return "en passant"
	case KindCastling:
		return "castling"
	case KindPut:
		return "put"
	case KindRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// CastleSide is the wing a king castles toward.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// Move is a tagged variant. Only the fields relevant to Kind are meaningful:
//
//	Standard:  Piece, From, To
//	Promotion: From, To, Promotion
//	EnPassant: From, To
//	Castling:  Castle, From, To (king squares)
//	Put:       Piece, To
//	Remove:    From
//
// A Move carries no legality guarantee by itself.
type Move struct {
	Kind      MoveKind
	Piece     Piece
	From      Square
	To        Square
	Promotion PieceType
	Castle    CastleSide
}

// NoMove represents an invalid or null move.
var NoMove = Move{Piece: NoPiece, From: NoSquare, To: NoSquare, Promotion: NoPieceType}

// NewMove creates a standard move of piece from one square to another.
func NewMove(piece Piece, from, to Square) Move {
	return Move{Kind: KindStandard, Piece: piece, From: from, To: to, Promotion: NoPieceType}
}

// NewPromotion creates a pawn promotion to the given piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{Kind: KindPromotion, Piece: NoPiece, From: from, To: to, Promotion: promo}
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move{Kind: KindEnPassant, Piece: NoPiece, From: from, To: to, Promotion: NoPieceType}
}

// NewCastling creates a castling move described by the king's movement.
func NewCastling(side CastleSide, from, to Square) Move {
	return Move{Kind: KindCastling, Piece: NoPiece, From: from, To: to, Promotion: NoPieceType, Castle: side}
}

// NewPut creates an editor move that places piece on sq.
func NewPut(piece Piece, sq Square) Move {
	return Move{Kind: KindPut, Piece: piece, From: NoSquare, To: sq, Promotion: NoPieceType}
}

// NewRemove creates an editor move that clears sq.
func NewRemove(sq Square) Move {
	return Move{Kind: KindRemove, Piece: NoPiece, From: sq, To: NoSquare, Promotion: NoPieceType}
}

// String returns the move in UCI format (e.g. "e2e4", "e7e8q").
// Editor moves render as "N@e4" and "-e4".
func (m Move) String() string {
	switch m.Kind {
	case KindPut:
		return fmt.Sprintf("%s@%s", m.Piece, m.To)
	case KindRemove:
		return "-" + m.From.String()
	case KindPromotion:
		return m.From.String() + m.To.String() + string(m.Promotion.Char())
	default:
		if m.From == NoSquare || m.To == NoSquare {
			return "0000"
		}
		return m.From.String() + m.To.String()
	}
}

// castleSquares returns the king and rook relocation for a castle.
func castleSquares(c Color, side CastleSide) (kingFrom, kingTo, rookFrom, rookTo Square) {
	if c == White {
		if side == KingSide {
			return E1, G1, H1, F1
		}
		return E1, C1, A1, D1
	}
	if side == KingSide {
		return E8, G8, H8, F8
	}
	return E8, C8, A8, D8
}
