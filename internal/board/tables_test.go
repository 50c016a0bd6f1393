package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRays(t *testing.T) {
	assert.Equal(t, FileA&^BitboardOf(A1), Ray(A1, North))
	assert.Equal(t, Rank1&^BitboardOf(A1), Ray(A1, East))
	assert.Equal(t, Empty, Ray(A1, South))
	assert.Equal(t, BitboardOf(B2, C3, D4, E5, F6, G7, H8), Ray(A1, NorthEast))
	assert.Equal(t, BitboardOf(D3, C2, B1), Ray(E4, SouthWest))
}

func TestLeaperTables(t *testing.T) {
	assert.Equal(t, BitboardOf(B3, C2), KnightAttacks(A1))
	assert.Equal(t, 8, KnightAttacks(E4).PopCount())
	assert.Equal(t, BitboardOf(A2, B1, B2), KingAttacks(A1))
	assert.Equal(t, 8, KingAttacks(E4).PopCount())

	assert.Equal(t, BitboardOf(D5, F5), PawnAttacks(E4, White))
	assert.Equal(t, BitboardOf(D3, F3), PawnAttacks(E4, Black))
	assert.Equal(t, BitboardOf(B3), PawnAttacks(A2, White))
	assert.Equal(t, Empty, PawnAttacks(E8, White))
}

func TestAxis(t *testing.T) {
	assert.Equal(t, FileE, Axis(E1, E5))
	assert.Equal(t, Rank4, Axis(B4, G4))
	assert.Equal(t, BitboardOf(A1, B2, C3, D4, E5, F6, G7, H8), Axis(C3, F6))
	assert.Equal(t, BitboardOf(A8, B7, C6, D5, E4, F3, G2, H1), Axis(H1, D5))
	assert.Equal(t, Empty, Axis(A1, B3))
	assert.Equal(t, Empty, Axis(E4, E4))

	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			assert.Equal(t, Axis(a, b), Axis(b, a))
		}
	}
}

func TestDirect(t *testing.T) {
	assert.Equal(t, BitboardOf(E2, E3, E4, E5), Direct(E1, E5))
	assert.Equal(t, BitboardOf(E4, E3, E2, E1), Direct(E5, E1))
	assert.Equal(t, BitboardOf(D4, E5), Direct(C3, E5))
	assert.Equal(t, BitboardOf(B1), Direct(A1, B1))
	assert.Equal(t, Empty, Direct(A1, B3))
	assert.Equal(t, Empty, Direct(E4, E4))

	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if a == b || Axis(a, b) == 0 {
				continue
			}
			d := Direct(a, b)
			assert.True(t, d.IsSet(b))
			assert.False(t, d.IsSet(a))
			assert.Equal(t, d, d&Axis(a, b))
		}
	}
}

func TestAligned(t *testing.T) {
	assert.True(t, Aligned(A1, C3, H8))
	assert.True(t, Aligned(E1, E8, E4))
	assert.False(t, Aligned(A1, C3, D3))
}
