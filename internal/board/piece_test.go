package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPieceEncoding(t *testing.T) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			assert.Equal(t, pt, p.Type())
			assert.Equal(t, c, p.Color())
			assert.Equal(t, p, PieceFromChar(p.String()[0]))
		}
	}

	assert.Equal(t, "N", WhiteKnight.String())
	assert.Equal(t, "q", BlackQueen.String())
	assert.Equal(t, byte('r'), Rook.Char())
	assert.Equal(t, NoPiece, NewPiece(NoPieceType, White))
	assert.Equal(t, NoPiece, PieceFromChar('x'))
	assert.Equal(t, NoColor, NoPiece.Color())
	assert.Equal(t, North, White.forward())
	assert.Equal(t, North, Black.backward())
}
