package fogchess

import "github.com/dylhunn/dragontoothmg"

var knightOffsets = [8][2]int{
	{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// 跳跃类棋子的视野与占用无关，预先算好。
var (
	knightVision [NumSquares]Bitboard
	kingVision   [NumSquares]Bitboard
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		knightVision[sq] = offsetMask(sq, knightOffsets[:])
		kingVision[sq] = offsetMask(sq, kingOffsets[:])
	}
}

func offsetMask(from Square, offsets [][2]int) Bitboard {
	var bb Bitboard
	r, f := from.Rank(), from.File()
	for _, d := range offsets {
		bb = bb.Add(SquareAt(r+d[0], f+d[1]))
	}
	return bb
}

// 兵的视野：前一格；在起始横线时再加前两格（只看不走，不要求中间为空）；两个斜前方。
func pawnVision(sq Square, side Side) Bitboard {
	r, f := sq.Rank(), sq.File()
	dir := pawnDir(side)
	bb := BB(SquareAt(r+dir, f))
	if r == pawnStartRank(side) {
		bb = bb.Add(SquareAt(r+2*dir, f))
	}
	bb = bb.Add(SquareAt(r+dir, f-1))
	bb = bb.Add(SquareAt(r+dir, f+1))
	return bb
}

// 滑子视野：每条射线包含第一个被占格（不分敌我），不穿透。
// dragontoothmg 的编号同样是 a1=0，因此可以直接使用它的攻击位棋盘。
func bishopRays(sq Square, occupied Bitboard) Bitboard {
	return Bitboard(dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), uint64(occupied)))
}

func rookRays(sq Square, occupied Bitboard) Bitboard {
	return Bitboard(dragontoothmg.CalculateRookMoveBitboard(uint8(sq), uint64(occupied)))
}

// PieceVision 计算单个棋子对视野的贡献（不含自身所在格）。
func PieceVision(b *Board, sq Square) Bitboard {
	p := b.At(sq)
	if p == NoPiece {
		return 0
	}
	switch p.Kind() {
	case Pawn:
		return pawnVision(sq, p.Side())
	case Knight:
		return knightVision[sq]
	case King:
		return kingVision[sq]
	case Bishop:
		return bishopRays(sq, b.Occupied())
	case Rook:
		return rookRays(sq, b.Occupied())
	case Queen:
		occ := b.Occupied()
		return bishopRays(sq, occ) | rookRays(sq, occ)
	}
	return 0
}

// VisibleSquares 计算 side 当前能感知的全部格子。每次都从棋盘完整重算。
func VisibleSquares(b *Board, side Side) Bitboard {
	occ := b.Occupied()
	var vis Bitboard
	for sq := Square(0); sq < NumSquares; sq++ {
		p := b.squares[sq]
		if p == NoPiece || p.Side() != side {
			continue
		}
		vis = vis.Add(sq)
		switch p.Kind() {
		case Pawn:
			vis |= pawnVision(sq, side)
		case Knight:
			vis |= knightVision[sq]
		case King:
			vis |= kingVision[sq]
		case Bishop:
			vis |= bishopRays(sq, occ)
		case Rook:
			vis |= rookRays(sq, occ)
		case Queen:
			vis |= bishopRays(sq, occ) | rookRays(sq, occ)
		}
	}
	return vis
}
