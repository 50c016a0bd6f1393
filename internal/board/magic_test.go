package board

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicKey(t *testing.T) {
	m := Magic{
		Mask:   18049651735527936,
		Magic:  2535528071299584,
		Shift:  58,
		Offset: 0,
	}
	assert.Equal(t, uint32(23), m.Key(Universe))

	m.Offset = 100
	assert.Equal(t, uint32(123), m.Key(Universe))
}

func TestRelevantMask(t *testing.T) {
	// Corner rook: both rays minus the far edge squares.
	want := (FileA | Rank1) &^ BitboardOf(A1, A8, H1)
	assert.Equal(t, want, relevantMask(RookSlider, A1))
	assert.Equal(t, 12, relevantMask(RookSlider, A1).PopCount())
	assert.Equal(t, 10, relevantMask(RookSlider, E4).PopCount())
	assert.Equal(t, 6, relevantMask(BishopSlider, A1).PopCount())
	assert.Equal(t, 9, relevantMask(BishopSlider, E4).PopCount())

	for sq := A1; sq <= H8; sq++ {
		assert.Equal(t, uint8(64-relevantMask(RookSlider, sq).PopCount()), RookMagics()[sq].Shift)
		assert.Equal(t, uint8(64-relevantMask(BishopSlider, sq).PopCount()), BishopMagics()[sq].Shift)
	}
}

func TestMagicsMatchRayWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.Uint64() & rng.Uint64())
			require.Equal(t, rookAttacksSlow(sq, occ), RookAttacks(sq, occ), "rook %s", sq)
			require.Equal(t, bishopAttacksSlow(sq, occ), BishopAttacks(sq, occ), "bishop %s", sq)
			require.Equal(t, RookAttacks(sq, occ)|BishopAttacks(sq, occ), QueenAttacks(sq, occ))
		}
	}
}

func TestMagicsMatchDragontooth(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 100; i++ {
			occ := rng.Uint64() & rng.Uint64()
			assert.Equal(t, dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ), uint64(RookAttacks(sq, Bitboard(occ))), "rook %s", sq)
			assert.Equal(t, dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ), uint64(BishopAttacks(sq, Bitboard(occ))), "bishop %s", sq)
		}
	}
}

func TestMagicSearchIsDeterministic(t *testing.T) {
	rook, rookTable := findMagics(RookSlider, rookSeed)
	assert.Equal(t, RookMagics(), rook)
	r, _ := Default().TableSize()
	assert.Equal(t, r, len(rookTable))
}

func TestNewMagicIndexRoundTrip(t *testing.T) {
	idx, err := NewMagicIndex(RookMagics(), BishopMagics())
	require.NoError(t, err)
	assert.True(t, idx.Equal(Default()))
	assert.Equal(t, RookAttacks(D4, BitboardOf(D6, B4)), idx.RookAttacks(D4, BitboardOf(D6, B4)))
	assert.Equal(t, BishopAttacks(D4, BitboardOf(F6)), idx.BishopAttacks(D4, BitboardOf(F6)))
}

func TestNewMagicIndexRejectsBadEntries(t *testing.T) {
	rook := RookMagics()
	rook[E4].Magic = 1 // maps every occupancy to a handful of slots
	_, err := NewMagicIndex(rook, BishopMagics())
	assert.ErrorIs(t, err, ErrMagicCollision)

	bishop := BishopMagics()
	bishop[C1].Mask = Universe
	_, err = NewMagicIndex(RookMagics(), bishop)
	assert.Error(t, err)

	bishop = BishopMagics()
	bishop[D4].Shift = 1
	_, err = NewMagicIndex(RookMagics(), bishop)
	assert.ErrorContains(t, err, "shift")

	rook = RookMagics()
	rook[H8].Offset = 1 << 31
	_, err = NewMagicIndex(rook, BishopMagics())
	assert.ErrorContains(t, err, "offset")
}
