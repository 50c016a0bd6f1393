package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// Magic bitboard implementation for sliding piece attacks.
// Multipliers are found at startup by a seeded random search, so every run
// produces the same entries.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard `json:"mask"`   // Relevant occupancy mask (excludes edges)
	Magic  uint64   `json:"magic"`  // Magic multiplier
	Shift  uint8    `json:"shift"`  // Bits to shift right
	Offset uint32   `json:"offset"` // Index into attack table
}

// Key returns the attack table slot for the given occupancy.
func (m Magic) Key(occupied Bitboard) uint32 {
	return uint32((uint64(occupied&m.Mask)*m.Magic)>>m.Shift) + m.Offset
}

// Slider selects one of the two sliding-piece classes.
type Slider uint8

const (
	RookSlider Slider = iota
	BishopSlider
)

// String returns the slider class name.
func (s Slider) String() string {
	if s == RookSlider {
		return "rook"
	}
	return "bishop"
}

// Fixed search seeds, one per slider class.
const (
	rookSeed   uint64 = 0xBEEFDEAD
	bishopSeed uint64 = 0xDEADBEEF
)

// ErrMagicCollision is returned when a set of magic entries maps two
// occupancies with different attack sets to the same slot.
var ErrMagicCollision = errors.New("magic collision")

// MagicIndex maps (square, occupancy) to sliding attacks in O(1).
type MagicIndex struct {
	rookMagics   [64]Magic
	bishopMagics [64]Magic
	rookTable    []Bitboard
	bishopTable  []Bitboard
}

var magics *MagicIndex

func initMagics() {
	rook, rookTable := findMagics(RookSlider, rookSeed)
	bishop, bishopTable := findMagics(BishopSlider, bishopSeed)
	magics = &MagicIndex{
		rookMagics:   rook,
		bishopMagics: bishop,
		rookTable:    rookTable,
		bishopTable:  bishopTable,
	}
}

// prng is an xorshift64* generator.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// sparse returns a candidate with roughly one bit in eight set.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}

// slowAttacks computes attacks by ray walking.
func slowAttacks(s Slider, sq Square, occupied Bitboard) Bitboard {
	if s == RookSlider {
		return rookAttacksSlow(sq, occupied)
	}
	return bishopAttacksSlow(sq, occupied)
}

// relevantMask returns the empty-board attacks of sq with the board edges
// removed, except the edges sq itself lies on.
func relevantMask(s Slider, sq Square) Bitboard {
	edges := ((Rank1 | Rank8) &^ RankMask[sq.Rank()]) | ((FileA | FileH) &^ FileMask[sq.File()])
	return slowAttacks(s, sq, Empty) &^ edges
}

// subsets enumerates every subset of mask (carry-rippler).
func subsets(mask Bitboard) []Bitboard {
	out := make([]Bitboard, 0, 1<<mask.PopCount())
	var sub Bitboard
	for {
		out = append(out, sub)
		sub = (sub - mask) & mask
		if sub == 0 {
			return out
		}
	}
}

// findMagics searches a collision-free multiplier for every square and
// returns the entries together with the packed attack table.
func findMagics(s Slider, seed uint64) ([64]Magic, []Bitboard) {
	var entries [64]Magic
	var table []Bitboard
	rng := newPRNG(seed)

	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(s, sq)
		n := mask.PopCount()
		shift := uint8(64 - n)

		occs := subsets(mask)
		attacks := make([]Bitboard, len(occs))
		for i, occ := range occs {
			attacks[i] = slowAttacks(s, sq, occ)
		}

		// Slider attacks are never empty, so Empty marks an unused slot.
		scratch := make([]Bitboard, 1<<n)
		for {
			candidate := rng.sparse()
			if bits.OnesCount64((uint64(mask)*candidate)&0xFF00000000000000) < 6 {
				continue
			}

			clear(scratch)
			m := Magic{Mask: mask, Magic: candidate, Shift: shift}
			maxKey := uint32(0)
			ok := true
			for i, occ := range occs {
				key := m.Key(occ)
				if scratch[key] != Empty && scratch[key] != attacks[i] {
					ok = false
					break
				}
				scratch[key] = attacks[i]
				maxKey = max(maxKey, key)
			}
			if !ok {
				continue
			}

			m.Offset = uint32(len(table))
			table = append(table, scratch[:maxKey+1]...)
			entries[sq] = m
			break
		}
	}

	return entries, table
}

// NewMagicIndex rebuilds an index from previously exported entries. Every
// blocker subset is checked against ray-walked attacks, so a returned index
// is bit-for-bit correct.
func NewMagicIndex(rook, bishop [64]Magic) (*MagicIndex, error) {
	rookTable, err := buildTable(RookSlider, rook)
	if err != nil {
		return nil, err
	}
	bishopTable, err := buildTable(BishopSlider, bishop)
	if err != nil {
		return nil, err
	}
	return &MagicIndex{
		rookMagics:   rook,
		bishopMagics: bishop,
		rookTable:    rookTable,
		bishopTable:  bishopTable,
	}, nil
}

func buildTable(s Slider, entries [64]Magic) ([]Bitboard, error) {
	var table []Bitboard
	for sq := A1; sq <= H8; sq++ {
		m := entries[sq]
		if m.Mask != relevantMask(s, sq) {
			return nil, fmt.Errorf("%s magic for %s: unexpected mask %#x", s, sq, uint64(m.Mask))
		}
		if int(m.Shift) != 64-m.Mask.PopCount() {
			return nil, fmt.Errorf("%s magic for %s: shift %d does not fit mask", s, sq, m.Shift)
		}
		// Tables are packed square after square.
		if int(m.Offset) > len(table) {
			return nil, fmt.Errorf("%s magic for %s: offset %d past table end %d", s, sq, m.Offset, len(table))
		}
		for _, occ := range subsets(m.Mask) {
			key := m.Key(occ)
			if int(key) >= len(table) {
				table = append(table, make([]Bitboard, int(key)+1-len(table))...)
			}
			want := slowAttacks(s, sq, occ)
			if table[key] != Empty && table[key] != want {
				return nil, fmt.Errorf("%s magic for %s: %w", s, sq, ErrMagicCollision)
			}
			table[key] = want
		}
	}
	return table, nil
}

// Default returns the index built at package initialization.
func Default() *MagicIndex {
	return magics
}

// RookMagics returns the rook entries of the index.
func (mi *MagicIndex) RookMagics() [64]Magic {
	return mi.rookMagics
}

// BishopMagics returns the bishop entries of the index.
func (mi *MagicIndex) BishopMagics() [64]Magic {
	return mi.bishopMagics
}

// TableSize returns the number of rook and bishop attack slots.
func (mi *MagicIndex) TableSize() (rook, bishop int) {
	return len(mi.rookTable), len(mi.bishopTable)
}

// Equal reports whether both indexes hold identical entries and tables.
func (mi *MagicIndex) Equal(other *MagicIndex) bool {
	if mi.rookMagics != other.rookMagics || mi.bishopMagics != other.bishopMagics {
		return false
	}
	return equalTables(mi.rookTable, other.rookTable) && equalTables(mi.bishopTable, other.bishopTable)
}

func equalTables(a, b []Bitboard) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RookAttacks returns rook attacks from sq for the given occupancy.
func (mi *MagicIndex) RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return mi.rookTable[mi.rookMagics[sq].Key(occupied)]
}

// BishopAttacks returns bishop attacks from sq for the given occupancy.
func (mi *MagicIndex) BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return mi.bishopTable[mi.bishopMagics[sq].Key(occupied)]
}

// RookAttacks returns rook attacks using the default index.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return magics.rookTable[magics.rookMagics[sq].Key(occupied)]
}

// BishopAttacks returns bishop attacks using the default index.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return magics.bishopTable[magics.bishopMagics[sq].Key(occupied)]
}

// QueenAttacks returns queen attacks (rook | bishop).
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}

// RookMagics returns the default rook entries.
func RookMagics() [64]Magic {
	return magics.rookMagics
}

// BishopMagics returns the default bishop entries.
func BishopMagics() [64]Magic {
	return magics.bishopMagics
}
