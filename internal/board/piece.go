package board

import "strings"

type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

func (c Color) Other() Color {
	return c ^ 1
}

// forward is the direction this side's pawns advance in.
func (c Color) forward() Direction {
	if c == White {
		return North
	}
	return South
}

func (c Color) backward() Direction {
	if c == White {
		return South
	}
	return North
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoColor"
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return pieceTypeNames[pt]
}

// Char is the lowercase letter used in FEN and UCI promotion suffixes.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceChars[pt+6]
}

// Piece packs a type and a color as type + 6*color, so the twelve real
// pieces index pieceChars directly.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

const pieceChars = "PNBRQKpnbrqk"

func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String is the FEN letter, upper case for White.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar is the inverse of Piece.String. Unknown letters give NoPiece.
func PieceFromChar(c byte) Piece {
	if i := strings.IndexByte(pieceChars, c); i >= 0 {
		return Piece(i)
	}
	return NoPiece
}
