package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 counts as 0 and depth 1 is the number of legal moves.
func Perft(b Board, depth int) uint64 {
	if depth <= 0 {
		return 0
	}

	ml := b.GenerateMoves()
	if depth == 1 {
		return uint64(ml.Count())
	}

	var nodes uint64
	for {
		m, ok := ml.Next()
		if !ok {
			return nodes
		}
		child := b
		if !child.MakeMove(m) {
			panic("perft: generated move " + m.String() + " does not apply in " + b.FEN())
		}
		nodes += Perft(child, depth-1)
	}
}

// Divide returns the perft count below each legal move.
func Divide(b Board, depth int) map[Move]uint64 {
	counts := make(map[Move]uint64)
	if depth <= 0 {
		return counts
	}
	ml := b.GenerateMoves()
	for {
		m, ok := ml.Next()
		if !ok {
			return counts
		}
		child, _ := b.WithMove(m)
		if depth == 1 {
			counts[m] = 1
		} else {
			counts[m] = Perft(child, depth-1)
		}
	}
}
