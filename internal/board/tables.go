package board

// Precomputed geometry. Filled once in init and read-only afterwards.
var (
	rays          [64][8]Bitboard // [Square][Direction], origin excluded
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	axisBB   [64][64]Bitboard // full line through both squares
	directBB [64][64]Bitboard // squares between, plus the second square
)

func init() {
	initRays()
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initConnections()
	initMagics() // From magic.go
}

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for _, dir := range Directions {
			bb := sq.Bitboard()
			for bb&dir.Edge() == 0 {
				bb = bb.Shift(dir)
				rays[sq][dir] |= bb
			}
		}
	}
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := sq.Bitboard()

		// One step orthogonally, then one step diagonally outward.
		attacks := bb.North().NorthEast() | bb.North().NorthWest()
		attacks |= bb.South().SouthEast() | bb.South().SouthWest()
		attacks |= bb.East().NorthEast() | bb.East().SouthEast()
		attacks |= bb.West().NorthWest() | bb.West().SouthWest()

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := sq.Bitboard()

		var attacks Bitboard
		for _, dir := range Directions {
			attacks |= bb.Shift(dir)
		}

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := sq.Bitboard()
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// initConnections derives the axis and direct tables from empty-board slider
// attacks, so it must run after initRays.
func initConnections() {
	for a := A1; a <= H8; a++ {
		aBB := a.Bitboard()
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}
			bBB := b.Bitboard()

			bishopA := bishopAttacksSlow(a, Empty)
			rookA := rookAttacksSlow(a, Empty)

			switch {
			case bishopA&bBB != 0:
				axisBB[a][b] = (bishopA | aBB) & (bishopAttacksSlow(b, Empty) | bBB)
				occ := aBB | bBB
				directBB[a][b] = bishopAttacksSlow(a, occ)&bishopAttacksSlow(b, occ) | bBB
			case rookA&bBB != 0:
				axisBB[a][b] = (rookA | aBB) & (rookAttacksSlow(b, Empty) | bBB)
				occ := aBB | bBB
				directBB[a][b] = rookAttacksSlow(a, occ)&rookAttacksSlow(b, occ) | bBB
			}
		}
	}
}

// rayAttacks walks a single ray from sq and stops at the first blocker,
// which is included.
func rayAttacks(sq Square, dir Direction, occupied Bitboard) Bitboard {
	attacks := rays[sq][dir]
	blockers := attacks & occupied
	if blockers != 0 {
		var first Square
		if dir.Forward() {
			first = blockers.LSB()
		} else {
			first = blockers.MSB()
		}
		attacks ^= rays[first][dir]
	}
	return attacks
}

// bishopAttacksSlow computes bishop attacks by ray walking (used during initialization).
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, NorthEast, occupied) |
		rayAttacks(sq, NorthWest, occupied) |
		rayAttacks(sq, SouthEast, occupied) |
		rayAttacks(sq, SouthWest, occupied)
}

// rookAttacksSlow computes rook attacks by ray walking (used during initialization).
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, North, occupied) |
		rayAttacks(sq, South, occupied) |
		rayAttacks(sq, East, occupied) |
		rayAttacks(sq, West, occupied)
}

// Ray returns every square from sq to the board edge in dir, sq excluded.
func Ray(sq Square, dir Direction) Bitboard {
	return rays[sq][dir]
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// Axis returns the full line through a and b, both included, or Empty when
// the squares share no rank, file or diagonal.
func Axis(a, b Square) Bitboard {
	return axisBB[a][b]
}

// Direct returns the squares strictly between a and b plus b itself, or
// Empty when the squares are not aligned.
func Direct(a, b Square) Bitboard {
	return directBB[a][b]
}

// Aligned returns true if three squares are on the same line.
func Aligned(a, b, c Square) bool {
	return axisBB[a][b]&c.Bitboard() != 0
}
