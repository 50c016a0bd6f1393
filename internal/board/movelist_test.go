package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveListPromotionOrder(t *testing.T) {
	b := mustBoard(t, "1K6/P7/8/8/8/8/7p/7k w - - 1 1")
	ml := b.GenerateMoves()
	require.Equal(t, 8, ml.Count())

	var promos []PieceType
	for i := 0; i < 4; i++ {
		m, ok := ml.Next()
		require.True(t, ok)
		require.Equal(t, KindPromotion, m.Kind)
		assert.Equal(t, A7, m.From)
		assert.Equal(t, A8, m.To)
		promos = append(promos, m.Promotion)
		assert.Equal(t, 7-i, ml.Count())
	}
	assert.Equal(t, []PieceType{Knight, Bishop, Rook, Queen}, promos)

	rest := ml.All()
	assert.Len(t, rest, 4)
	for _, m := range rest {
		assert.Equal(t, B8, m.From)
	}

	_, ok := ml.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, ml.Count())
}

func TestMoveListDrainsLowestTargetFirst(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	ml := b.GenerateMoves()

	// Rook entry is pushed after the king, so it drains first.
	m, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, NewMove(WhiteRook, A1, B1), m)
	m, _ = ml.Next()
	assert.Equal(t, NewMove(WhiteRook, A1, C1), m)
}

func TestMoveListSpecialKinds(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	var castles []Move
	for _, m := range b.LegalMoves() {
		if m.Kind == KindCastling {
			castles = append(castles, m)
		}
	}
	assert.ElementsMatch(t, []Move{
		NewCastling(KingSide, E1, G1),
		NewCastling(QueenSide, E1, C1),
	}, castles)

	b = mustBoard(t, "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	assert.Contains(t, b.LegalMoves(), NewEnPassant(D4, E3))
}

func TestCastlingBlockedOrAttacked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []Move
	}{
		{"path attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", []Move{NewCastling(QueenSide, E1, C1)}},
		{"b-file attack allowed", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq - 0 1", []Move{NewCastling(KingSide, E1, G1), NewCastling(QueenSide, E1, C1)}},
		{"knight between", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", nil},
		{"in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			var got []Move
			for _, m := range b.LegalMoves() {
				if m.Kind == KindCastling {
					got = append(got, m)
				}
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(WhitePawn, E2, E4).String())
	assert.Equal(t, "e7e8q", NewPromotion(E7, E8, Queen).String())
	assert.Equal(t, "e1g1", NewCastling(KingSide, E1, G1).String())
	assert.Equal(t, "N@e4", NewPut(WhiteKnight, E4).String())
	assert.Equal(t, "-e4", NewRemove(E4).String())
	assert.Equal(t, "0000", NoMove.String())
}
