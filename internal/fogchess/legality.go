package fogchess

// LegalityResult 是 Validate 的结果；Legal 为 false 时 Reason 非空。
type LegalityResult struct {
	Move   Move
	Legal  bool
	Reason Reason
}

func (r LegalityResult) Err() error {
	if r.Legal {
		return nil
	}
	return &IllegalMoveError{Move: r.Move, Reason: r.Reason}
}

func legal(m Move) LegalityResult { return LegalityResult{Move: m, Legal: true} }

func illegal(m Move, why Reason) LegalityResult {
	return LegalityResult{Move: m, Reason: why}
}

// Validate 按顺序检查，遇到第一个失败即返回：
// 起点棋子归属 → 终点在盘内 → 终点可见 → 形状/占用 → 不能让自己的王被将。
func Validate(b *Board, m Move, side Side) LegalityResult {
	if !m.From.Valid() {
		return illegal(m, ReasonSourceOutOfBounds)
	}
	p := b.At(m.From)
	if p == NoPiece {
		return illegal(m, ReasonNoPiece)
	}
	if p.Side() != side {
		return illegal(m, ReasonWrongSide)
	}
	if !m.To.Valid() {
		return illegal(m, ReasonOutOfBounds)
	}
	return validateWith(b, m, side, VisibleSquares(b, side))
}

// validateWith 假定起点已确认是 side 的棋子、终点在盘内。
func validateWith(b *Board, m Move, side Side, vis Bitboard) LegalityResult {
	if !vis.Has(m.To) {
		return illegal(m, ReasonNotVisible)
	}

	p := b.At(m.From)
	if t := b.At(m.To); t != NoPiece && t.Side() == side {
		return illegal(m, ReasonOwnPiece)
	}
	if p.Kind() == Pawn {
		if !pawnShapeLegal(b, m, side) {
			return illegal(m, ReasonBadShape)
		}
	} else {
		if !ShapeLegal(m, p) {
			return illegal(m, ReasonBadShape)
		}
		if isSlider(p.Kind()) && !pathClear(b, m) {
			return illegal(m, ReasonPathBlocked)
		}
	}

	if leavesKingAttacked(b, m, side) {
		return illegal(m, ReasonLeavesKingInCheck)
	}
	return legal(m)
}

// 在临时棋盘上模拟，模拟结束即丢弃。
func leavesKingAttacked(b *Board, m Move, side Side) bool {
	scratch := b.Clone()
	scratch.move(m.From, m.To, placedPiece(b.At(m.From), m))
	king := scratch.KingSquare(side)
	if king == NoSquare {
		return false
	}
	return IsAttacked(scratch, king, side.Opposite())
}

func isPromotion(p Piece, to Square) bool {
	return p.Kind() == Pawn && to.Rank() == promotionRank(p.Side())
}

// placedPiece 返回落到终点的棋子：升变时按请求换子，请求无效则默认升后。
func placedPiece(p Piece, m Move) Piece {
	if !isPromotion(p, m.To) {
		return p
	}
	switch m.Promotion {
	case Knight, Bishop, Rook, Queen:
		return MakePiece(p.Side(), m.Promotion)
	}
	return MakePiece(p.Side(), Queen)
}

// LegalMoves 枚举 side 的全部合法走法，按 (From, To) 升序（位棋盘从低位迭代）。
// 升变只列一次，Promotion 留空（应用时默认升后）。
func LegalMoves(b *Board, side Side) []Move {
	vis := VisibleSquares(b, side)
	own := b.SideMask(side)
	var out []Move
	own.Iter(func(from Square) {
		p := b.At(from)
		(vis &^ own).Iter(func(to Square) {
			m := Move{From: from, To: to}
			if p.Kind() != Pawn && !ShapeLegal(m, p) {
				return
			}
			if validateWith(b, m, side, vis).Legal {
				out = append(out, m)
			}
		})
	})
	return out
}

// HasLegalMove 找到第一步合法走法即返回。
func HasLegalMove(b *Board, side Side) bool {
	vis := VisibleSquares(b, side)
	own := b.SideMask(side)
	for from := own; from != 0; {
		var sq Square
		sq, from = from.PopLSB()
		p := b.At(sq)
		for to := vis &^ own; to != 0; {
			var dst Square
			dst, to = to.PopLSB()
			m := Move{From: sq, To: dst}
			if p.Kind() != Pawn && !ShapeLegal(m, p) {
				continue
			}
			if validateWith(b, m, side, vis).Legal {
				return true
			}
		}
	}
	return false
}
