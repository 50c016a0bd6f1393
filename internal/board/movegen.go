package board

// generateMoves builds the legal move list of the position. Checkers and
// pins must be current.
func (b *Board) generateMoves() MoveList {
	us := b.SideToMove
	ml := newMoveList(us, b.EnPassant)
	king := b.mustKing(us)

	b.generateKingMoves(&ml, king)

	// Double check: only the king may move.
	if b.Checkers.PopCount() > 1 {
		return ml
	}

	// Squares that capture or block a single checker.
	mask := Universe
	if b.InCheck() {
		mask = Direct(king, b.mustChecker()) | b.Checkers
	}

	b.generatePawnMoves(&ml, king, mask)
	b.generateKnightMoves(&ml, mask)
	b.generateSliderMoves(&ml, king, mask, Bishop, BishopAttacks)
	b.generateSliderMoves(&ml, king, mask, Rook, RookAttacks)
	b.generateSliderMoves(&ml, king, mask, Queen, QueenAttacks)

	return ml
}

// generateKingMoves adds king steps to unattacked squares and castling.
func (b *Board) generateKingMoves(ml *MoveList, king Square) {
	us := b.SideToMove
	them := us.Other()
	occ := b.Occupied()

	// Lift the king so it cannot hide behind itself on a slider's ray.
	without := occ ^ king.Bitboard()

	var targets Bitboard
	steps := KingAttacks(king) &^ b.Colors[us]
	for steps != 0 {
		to := steps.PopLSB()
		if !b.IsAttacked(to, them, without) {
			targets |= to.Bitboard()
		}
	}

	if !b.InCheck() {
		targets |= b.castlingTargets(king, occ)
	}

	ml.push(NewPiece(King, us), king, targets)
}

// castlingTargets returns the king destinations of the available castles.
func (b *Board) castlingTargets(king Square, occ Bitboard) Bitboard {
	us := b.SideToMove
	them := us.Other()

	var targets Bitboard
	for _, side := range [2]CastleSide{KingSide, QueenSide} {
		if !b.Castling.CanCastle(us, side) {
			continue
		}
		kingFrom, kingTo, rookFrom, _ := castleSquares(us, side)
		if king != kingFrom || !b.PiecesOf(Rook, us).IsSet(rookFrom) {
			continue
		}

		between := Direct(kingFrom, rookFrom) &^ rookFrom.Bitboard()
		if between&occ != 0 {
			continue
		}

		path := Direct(kingFrom, kingTo)
		safe := true
		for path != 0 {
			if b.IsAttacked(path.PopLSB(), them, occ) {
				safe = false
				break
			}
		}
		if safe {
			targets |= kingTo.Bitboard()
		}
	}
	return targets
}

// generatePawnMoves adds pushes, captures and en passant for every pawn.
func (b *Board) generatePawnMoves(ml *MoveList, king Square, mask Bitboard) {
	us := b.SideToMove
	them := us.Other()
	occ := b.Occupied()
	enemies := b.Colors[them]
	forward := us.forward()

	startRank := Rank2
	if us == Black {
		startRank = Rank7
	}

	epBB, epMask := Empty, mask
	victim := NoSquare
	if b.EnPassant != NoSquare {
		sq, ok := b.EnPassant.Shift(us.backward())
		if ok && b.PiecesOf(Pawn, them).IsSet(sq) && b.IsEmpty(b.EnPassant) {
			epBB, victim = b.EnPassant.Bitboard(), sq
			// Taking the checking pawn en passant resolves the check too.
			if b.Checkers == victim.Bitboard() {
				epMask |= epBB
			}
		}
	}

	piece := NewPiece(Pawn, us)
	pawns := b.PiecesOf(Pawn, us)
	for pawns != 0 {
		from := pawns.PopLSB()
		bb := from.Bitboard()

		push := bb.Shift(forward) &^ occ
		if bb&startRank != 0 {
			push |= push.Shift(forward) &^ occ
		}
		attacks := PawnAttacks(from, us)

		targets := (push | attacks&enemies) & mask
		targets |= attacks & epBB & epMask

		if b.Pinned.IsSet(from) {
			targets &= Axis(king, from)
		}

		if targets&epBB != 0 && !b.enPassantSafe(from, victim, king) {
			targets &^= epBB
		}

		ml.push(piece, from, targets)
	}
}

// enPassantSafe replays the capture on the occupancy alone: both pawns
// leave their squares and the capturer lands on the target. The capture is
// illegal if that uncovers a slider on the king.
func (b *Board) enPassantSafe(from, victim, king Square) bool {
	them := b.SideToMove.Other()
	occ := b.Occupied() ^ (from.Bitboard() | victim.Bitboard() | b.EnPassant.Bitboard())
	queens := b.PiecesOf(Queen, them)

	if RookAttacks(king, occ)&(b.PiecesOf(Rook, them)|queens) != 0 {
		return false
	}
	return BishopAttacks(king, occ)&(b.PiecesOf(Bishop, them)|queens) == 0
}

// generateKnightMoves adds knight jumps. A pinned knight never moves.
func (b *Board) generateKnightMoves(ml *MoveList, mask Bitboard) {
	us := b.SideToMove
	piece := NewPiece(Knight, us)
	knights := b.PiecesOf(Knight, us) &^ b.Pinned
	for knights != 0 {
		from := knights.PopLSB()
		ml.push(piece, from, KnightAttacks(from)&^b.Colors[us]&mask)
	}
}

// generateSliderMoves adds bishop, rook or queen moves. A pinned slider
// stays on the line through its king.
func (b *Board) generateSliderMoves(ml *MoveList, king Square, mask Bitboard, pt PieceType, attacks func(Square, Bitboard) Bitboard) {
	us := b.SideToMove
	occ := b.Occupied()
	piece := NewPiece(pt, us)

	sliders := b.PiecesOf(pt, us)
	for sliders != 0 {
		from := sliders.PopLSB()
		targets := attacks(from, occ) &^ b.Colors[us] & mask
		if b.Pinned.IsSet(from) {
			targets &= Axis(king, from)
		}
		ml.push(piece, from, targets)
	}
}
