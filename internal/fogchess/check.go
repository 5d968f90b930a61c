package fogchess

// IsAttacked 判断 sq 是否被 bySide 攻击。始终基于完整棋盘，与任何一方的视野无关。
func IsAttacked(b *Board, sq Square, bySide Side) bool {
	if !sq.Valid() {
		return false
	}
	r, f := sq.Rank(), sq.File()

	is := func(rr, ff int, kind PieceKind) bool {
		t := SquareAt(rr, ff)
		if t == NoSquare {
			return false
		}
		p := b.squares[t]
		return p != NoPiece && p.Side() == bySide && p.Kind() == kind
	}

	// 兵：从攻击方的角度斜前方，所以要往回看一格
	back := -pawnDir(bySide)
	if is(r+back, f-1, Pawn) || is(r+back, f+1, Pawn) {
		return true
	}

	for _, d := range knightOffsets {
		if is(r+d[0], f+d[1], Knight) {
			return true
		}
	}

	for _, d := range kingOffsets {
		if is(r+d[0], f+d[1], King) {
			return true
		}
	}

	if firstOnRays(b, r, f, bishopDirs[:], bySide, Bishop) {
		return true
	}
	return firstOnRays(b, r, f, rookDirs[:], bySide, Rook)
}

// 沿射线找第一个棋子，属于 bySide 且是 kind 或后则命中。
func firstOnRays(b *Board, r, f int, dirs [][2]int, bySide Side, kind PieceKind) bool {
	for _, d := range dirs {
		rr, ff := r+d[0], f+d[1]
		for onBoard(rr, ff) {
			p := b.squares[SquareAt(rr, ff)]
			if p != NoPiece {
				if p.Side() == bySide && (p.Kind() == kind || p.Kind() == Queen) {
					return true
				}
				break
			}
			rr += d[0]
			ff += d[1]
		}
	}
	return false
}

// IsInCheck 判断 side 的王是否被将军。没有王时返回 false。
func IsInCheck(b *Board, side Side) bool {
	k := b.KingSquare(side)
	if k == NoSquare {
		return false
	}
	return IsAttacked(b, k, side.Opposite())
}
