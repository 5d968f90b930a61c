package fogchess

import "math/bits"

// Bitboard 64 位格子集合，bit i 对应 Square(i)。
type Bitboard uint64

func BB(s Square) Bitboard {
	if !s.Valid() {
		return 0
	}
	return 1 << s
}

func (b Bitboard) Empty() bool { return b == 0 }

func (b Bitboard) Has(s Square) bool { return s.Valid() && b&(1<<s) != 0 }

func (b Bitboard) Add(s Square) Bitboard { return b | BB(s) }

func (b Bitboard) Remove(s Square) Bitboard { return b &^ BB(s) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

func (b Bitboard) PopLSB() (Square, Bitboard) {
	if b == 0 {
		return NoSquare, 0
	}
	sq := Square(bits.TrailingZeros64(uint64(b)))
	return sq, b & (b - 1)
}

func (b Bitboard) Iter(fn func(Square)) {
	bb := b
	for bb != 0 {
		sq, rest := bb.PopLSB()
		fn(sq)
		bb = rest
	}
}

// Squares 按升序返回集合内所有格子。
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	b.Iter(func(sq Square) { out = append(out, sq) })
	return out
}
