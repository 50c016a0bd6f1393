package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares: bit i is set when Square i is a member.
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA Bitboard = ^FileA
	NotFileH Bitboard = ^FileH

	// LightSquares holds b1, d1, ..., a2, c2, ...; a1 is dark.
	LightSquares Bitboard = 0x55AA55AA55AA55AA
	DarkSquares  Bitboard = ^LightSquares
)

// FileMask returns the file mask for a given file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask returns the rank mask for a given rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// Direction is one of the eight compass directions on the board.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions lists every direction; orthogonal ones first.
var Directions = [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Edge returns the board boundary squares from which a step in d would leave
// the board.
func (d Direction) Edge() Bitboard {
	switch d {
	case North:
		return Rank8
	case South:
		return Rank1
	case East:
		return FileH
	case West:
		return FileA
	case NorthEast:
		return Rank8 | FileH
	case NorthWest:
		return Rank8 | FileA
	case SouthEast:
		return Rank1 | FileH
	default:
		return Rank1 | FileA
	}
}

// Forward reports whether a step in d increases the square index. The
// nearest blocker along a forward ray is the lowest set bit.
func (d Direction) Forward() bool {
	return d == North || d == East || d == NorthEast || d == NorthWest
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// Overlaps reports whether the two sets share any square.
func (b Bitboard) Overlaps(other Bitboard) bool {
	return b&other != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest member, or NoSquare for an empty set.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest member, or NoSquare for an empty set.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest member.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotFileA
}

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotFileH
}

// NorthEast shifts the bitboard one square toward the h8 corner.
func (b Bitboard) NorthEast() Bitboard {
	return (b << 9) & NotFileA
}

// NorthWest shifts the bitboard one square toward the a8 corner.
func (b Bitboard) NorthWest() Bitboard {
	return (b << 7) & NotFileH
}

// SouthEast shifts the bitboard one square toward the h1 corner.
func (b Bitboard) SouthEast() Bitboard {
	return (b >> 7) & NotFileA
}

// SouthWest shifts the bitboard one square toward the a1 corner.
func (b Bitboard) SouthWest() Bitboard {
	return (b >> 9) & NotFileH
}

// Shift moves every member one step in dir, dropping squares that would
// wrap around a file edge.
func (b Bitboard) Shift(dir Direction) Bitboard {
	switch dir {
	case North:
		return b.North()
	case South:
		return b.South()
	case East:
		return b.East()
	case West:
		return b.West()
	case NorthEast:
		return b.NorthEast()
	case NorthWest:
		return b.NorthWest()
	case SouthEast:
		return b.SouthEast()
	default:
		return b.SouthWest()
	}
}

// String renders the set rank 8 first, 'x' for members.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Squares returns the members in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// BitboardOf builds a set from the given squares.
func BitboardOf(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b |= sq.Bitboard()
	}
	return b
}
