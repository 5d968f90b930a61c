package fogchess

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func deltas(m Move) (dr, df int) {
	return m.To.Rank() - m.From.Rank(), m.To.File() - m.From.File()
}

func orthogonal(dr, df int) bool { return (dr == 0) != (df == 0) }

func diagonal(dr, df int) bool { return dr != 0 && abs(dr) == abs(df) }

// ShapeLegal 只看几何形状，不看占用。兵的形状依赖占用，在 Validate 里判定，这里恒为 true。
func ShapeLegal(m Move, p Piece) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	dr, df := deltas(m)
	switch p.Kind() {
	case Rook:
		return orthogonal(dr, df)
	case Bishop:
		return diagonal(dr, df)
	case Queen:
		return orthogonal(dr, df) || diagonal(dr, df)
	case Knight:
		ar, af := abs(dr), abs(df)
		return (ar == 1 && af == 2) || (ar == 2 && af == 1)
	case King:
		return max(abs(dr), abs(df)) == 1
	case Pawn:
		return true
	}
	return false
}

func isSlider(k PieceKind) bool {
	return k == Bishop || k == Rook || k == Queen
}

// pathClear 检查滑子起点与终点之间（不含两端）是否全空。
// 视野检查并不能替代它：终点可能被己方别的棋子看到，而滑子自己的路线被挡住。
func pathClear(b *Board, m Move) bool {
	dr, df := deltas(m)
	sr, sf := sign(dr), sign(df)
	r, f := m.From.Rank()+sr, m.From.File()+sf
	for onBoard(r, f) {
		sq := SquareAt(r, f)
		if sq == m.To {
			return true
		}
		if b.At(sq) != NoPiece {
			return false
		}
		r += sr
		f += sf
	}
	return false
}

// pawnShapeLegal: 前进一格到空格；起始横线前进两格到空格（不检查中间格）；斜进一格吃子。
func pawnShapeLegal(b *Board, m Move, side Side) bool {
	dr, df := deltas(m)
	dir := pawnDir(side)
	target := b.At(m.To)
	switch {
	case df == 0 && dr == dir:
		return target == NoPiece
	case df == 0 && dr == 2*dir:
		return m.From.Rank() == pawnStartRank(side) && target == NoPiece
	case abs(df) == 1 && dr == dir:
		return target != NoPiece && target.Side() == side.Opposite()
	}
	return false
}
