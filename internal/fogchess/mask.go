package fogchess

import "strings"

// MaskedBoard 某一方视角下的棋盘。Visible 之外的格子是“未知”，Squares 中对应位置为 NoPiece。
type MaskedBoard struct {
	Observer Side
	Squares  [NumSquares]Piece
	Visible  Bitboard
}

// At 返回格子内容；第二个返回值为 false 表示该格处于迷雾中。
func (m MaskedBoard) At(sq Square) (Piece, bool) {
	if !m.Visible.Has(sq) {
		return NoPiece, false
	}
	return m.Squares[sq], true
}

func (m *MaskedBoard) hide(sq Square) {
	m.Squares[sq] = NoPiece
	m.Visible = m.Visible.Remove(sq)
}

func (m *MaskedBoard) show(sq Square, p Piece) {
	m.Squares[sq] = p
	m.Visible = m.Visible.Add(sq)
}

// Rows 从第 8 横线到第 1 横线输出：棋子字母、可见空格 '.'、迷雾 '?'。
func (m MaskedBoard) Rows() []string {
	rows := make([]string, 0, Ranks)
	for r := Ranks - 1; r >= 0; r-- {
		var sb strings.Builder
		for f := 0; f < Files; f++ {
			p, ok := m.At(SquareAt(r, f))
			if !ok {
				sb.WriteByte('?')
				continue
			}
			sb.WriteRune(pieceToChar(p))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Project 生成 observer 视角的棋盘，并对最近一步的吃子/升变应用揭示规则。
//
// 揭示规则在“拿走移动方那枚棋子”的临时棋盘上重算 observer 的视野：
// 吃子只有在这个重算视野里仍能看到终点时才显示，否则终点为未知；
// 升变在重算视野看不到终点时显示为移动方的兵，对手视角同样适用。
// 只处理最近一步，不回溯更早的走法。
func Project(b *Board, observer Side, last *MoveRecord) MaskedBoard {
	vis := VisibleSquares(b, observer)
	mb := MaskedBoard{Observer: observer, Visible: vis}
	vis.Iter(func(sq Square) {
		mb.Squares[sq] = b.At(sq)
	})

	if last == nil || !last.To.Valid() || (!last.WasCapture && !last.WasPromotion) {
		return mb
	}

	scratch := b.Clone()
	scratch.Clear(last.From)
	scratch.Clear(last.To)
	rederived := VisibleSquares(scratch, observer)
	seen := rederived.Has(last.To)

	if last.WasCapture {
		if seen {
			mb.show(last.To, b.At(last.To))
		} else {
			mb.hide(last.To)
		}
	}
	if last.WasPromotion && !seen {
		// 终点上就是刚走过去的棋子
		mb.show(last.To, MakePiece(b.At(last.To).Side(), Pawn))
	}
	return mb
}
