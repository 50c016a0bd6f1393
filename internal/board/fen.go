package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Well-known positions.
const (
	StartFEN    = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	EmptyFEN    = "8/8/8/8/8/8/8/8 w - - 0 1"
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

// ErrInvalidFEN wraps every FEN parsing failure.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string into a Position. Only placement and side to
// move are required; castling and en passant default to "-", the counters
// to 0 and 1.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 || len(parts) > 6 {
		return Position{}, fmt.Errorf("%w: need 2 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := EmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2, optional)
	if len(parts) > 2 {
		if err := parseCastlingRights(&pos, parts[2]); err != nil {
			return Position{}, err
		}
	}

	// Parse en passant square (field 3, optional)
	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, fmt.Errorf("%w: en passant square: %w", ErrInvalidFEN, err)
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return Position{}, fmt.Errorf("%w: en passant square %s not on rank 3 or 6", ErrInvalidFEN, sq)
		}
		pos.EnPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return Position{}, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return Position{}, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: piece character %q", ErrInvalidFEN, c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.Castling = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.Castling |= WhiteKingSideCastle
		case 'Q':
			pos.Castling |= WhiteQueenSideCastle
		case 'k':
			pos.Castling |= BlackKingSideCastle
		case 'q':
			pos.Castling |= BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: castling character %q", ErrInvalidFEN, c)
		}
	}

	return nil
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
