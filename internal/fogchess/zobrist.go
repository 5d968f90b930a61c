package fogchess

import "sync"

const zobristPieceKinds = 7 // PieceKind 范围 [1..6]，0 保留空位不用

var (
	zobristOnce sync.Once

	zobristPieces [2][zobristPieceKinds][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for k := 1; k < zobristPieceKinds; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][k][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(p Piece, sq Square) uint64 {
	if p == NoPiece || !sq.Valid() {
		return 0
	}
	initZobrist()

	var sideIdx int
	switch p.Side() {
	case White:
		sideIdx = 0
	case Black:
		sideIdx = 1
	default:
		return 0
	}

	k := int(p.Kind())
	if k <= 0 || k >= zobristPieceKinds {
		return 0
	}
	return zobristPieces[sideIdx][k][sq]
}

// Hash 返回增量维护的棋子布局哈希（不含走子方）。
func (b *Board) Hash() uint64 { return b.hash }

// CalculateHash 全量计算棋子布局哈希，用于校验增量结果。
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq, p := range b.squares {
		if p == NoPiece {
			continue
		}
		h ^= pieceHashKey(p, Square(sq))
	}
	return h
}

// PositionHash 把走子方也算进去。
func PositionHash(b *Board, toMove Side) uint64 {
	h := b.Hash()
	if toMove == Black {
		initZobrist()
		h ^= zobristSide
	}
	return h
}
