package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		EmptyFEN,
		KiwipeteFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 7 31",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		p, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.FEN())
	}
}

func TestFENOptionalFields(t *testing.T) {
	p, err := ParseFEN("8/8/8/8/8/8/8/8 w")
	require.NoError(t, err)
	assert.Equal(t, EmptyFEN, p.FEN())

	p, err = ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	require.NoError(t, err)
	assert.Equal(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", p.FEN())
}

func TestParseFENPlacement(t *testing.T) {
	p, err := ParseFEN(StartFEN)
	require.NoError(t, err)

	assert.Equal(t, WhiteRook, p.PieceAt(A1))
	assert.Equal(t, WhiteKing, p.PieceAt(E1))
	assert.Equal(t, BlackQueen, p.PieceAt(D8))
	assert.Equal(t, NoPiece, p.PieceAt(E4))
	assert.Equal(t, Rank1|Rank2, p.Occupancy(White))
	assert.Equal(t, Rank7|Rank8, p.Occupancy(Black))
	assert.Equal(t, AllCastling, p.Castling)
	assert.Equal(t, NoSquare, p.EnPassant)
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8 w - - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
		"7/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/7x w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"8/8/8/8/8/8/8/8 w KX - 0 1",
		"8/8/8/8/8/8/8/8 w - e4 0 1",
		"8/8/8/8/8/8/8/8 w - - a 1",
		"8/8/8/8/8/8/8/8 w - - 0 0",
		"8/8/8/8/8/8/8/8 w - - 0 1 extra",
	}

	for _, fen := range bad {
		_, err := ParseFEN(fen)
		assert.ErrorIs(t, err, ErrInvalidFEN, "%q", fen)
	}
}
