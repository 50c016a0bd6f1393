package board

// Result is the state of the game in a position.
type Result uint8

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
)

// String returns a human readable result.
func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case WhiteWins:
		return "white wins by checkmate"
	case BlackWins:
		return "black wins by checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "draw by fifty-move rule"
	case InsufficientMaterial:
		return "draw by insufficient material"
	default:
		return "unknown"
	}
}

// IsOver reports whether the game has ended.
func (r Result) IsOver() bool {
	return r != Ongoing
}

// IsDraw reports whether the game ended without a winner.
func (r Result) IsDraw() bool {
	return r == Stalemate || r == FiftyMoveRule || r == InsufficientMaterial
}

// classify derives the result from the move count and check state. Later
// conditions override earlier ones: the fifty-move rule wins over mate and
// stalemate, insufficient material wins over everything.
func classify(p *Position, inCheck, noMoves bool) Result {
	result := Ongoing

	if noMoves {
		switch {
		case !inCheck:
			result = Stalemate
		case p.SideToMove == White:
			result = BlackWins
		default:
			result = WhiteWins
		}
	}

	if p.HalfMoveClock >= 100 {
		result = FiftyMoveRule
	}

	if insufficientMaterial(p) {
		result = InsufficientMaterial
	}

	return result
}

// insufficientMaterial matches lone kings, a single minor piece against a
// lone king, and one bishop each on the same square color.
func insufficientMaterial(p *Position) bool {
	minors := p.Pieces[Knight] | p.Pieces[Bishop]
	whiteMinor := minors&p.Colors[White] != 0
	blackMinor := minors&p.Colors[Black] != 0

	switch white, black := p.Colors[White].PopCount(), p.Colors[Black].PopCount(); {
	case white == 1 && black == 1:
		return true
	case white == 1 && black == 2:
		return blackMinor
	case white == 2 && black == 1:
		return whiteMinor
	case white == 2 && black == 2:
		wb := p.PiecesOf(Bishop, White)
		bb := p.PiecesOf(Bishop, Black)
		return (wb.Overlaps(LightSquares) && bb.Overlaps(LightSquares)) ||
			(wb.Overlaps(DarkSquares) && bb.Overlaps(DarkSquares))
	}
	return false
}
