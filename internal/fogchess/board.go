package fogchess

import (
	"strings"
	"unicode"
)

const (
	Ranks      = 8
	Files      = 8
	NumSquares = Ranks * Files
)

// Square = rank*8+file，rank 0 是白方底线（a1=0, h8=63）。
type Square int8

const NoSquare Square = -1

func SquareAt(rank, file int) Square {
	if !onBoard(rank, file) {
		return NoSquare
	}
	return Square(rank*Files + file)
}

func (s Square) Rank() int   { return int(s) / Files }
func (s Square) File() int   { return int(s) % Files }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func onBoard(rank, file int) bool {
	return rank >= 0 && rank < Ranks && file >= 0 && file < Files
}

// 兵的前进方向：白向上(+1)，黑向下(-1)
func pawnDir(side Side) int {
	switch side {
	case White:
		return +1
	case Black:
		return -1
	}
	return 0
}

func pawnStartRank(side Side) int {
	if side == White {
		return 1
	}
	return Ranks - 2
}

func promotionRank(side Side) int {
	if side == White {
		return Ranks - 1
	}
	return 0
}

// Board 权威棋盘。零值是空棋盘；王的位置缓存随每次修改更新。
type Board struct {
	squares [NumSquares]Piece
	kings   [2]Square
	hash    uint64
}

func NewEmptyBoard() *Board {
	return &Board{kings: [2]Square{NoSquare, NoSquare}}
}

func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// Put 放置棋子（覆盖原有棋子）。放 NoPiece 等价于 Clear。
func (b *Board) Put(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.Clear(sq)
	if p == NoPiece {
		return
	}
	b.squares[sq] = p
	b.hash ^= pieceHashKey(p, sq)
	if p.Kind() == King {
		b.kings[p.Side()] = sq
	}
}

func (b *Board) Clear(sq Square) {
	if !sq.Valid() {
		return
	}
	old := b.squares[sq]
	if old == NoPiece {
		return
	}
	b.hash ^= pieceHashKey(old, sq)
	b.squares[sq] = NoPiece
	if old.Kind() == King && b.kings[old.Side()] == sq {
		b.kings[old.Side()] = NoSquare
	}
}

// move 不做任何合法性检查；调用方负责。
func (b *Board) move(from, to Square, placed Piece) (captured Piece) {
	captured = b.squares[to]
	b.Clear(from)
	b.Put(to, placed)
	return captured
}

func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// KingSquare 返回缓存的王位置；缓存失效（例如零值棋盘）时回退为全盘扫描。
func (b *Board) KingSquare(side Side) Square {
	if side != White && side != Black {
		return NoSquare
	}
	if sq := b.kings[side]; sq.Valid() {
		if p := b.squares[sq]; p.Kind() == King && p.Side() == side {
			return sq
		}
	}
	for sq, p := range b.squares {
		if p != NoPiece && p.Kind() == King && p.Side() == side {
			b.kings[side] = Square(sq)
			return Square(sq)
		}
	}
	return NoSquare
}

func (b *Board) Occupied() Bitboard {
	var bb Bitboard
	for sq, p := range b.squares {
		if p != NoPiece {
			bb |= 1 << uint(sq)
		}
	}
	return bb
}

func (b *Board) SideMask(side Side) Bitboard {
	var bb Bitboard
	for sq, p := range b.squares {
		if p != NoPiece && p.Side() == side {
			bb |= 1 << uint(sq)
		}
	}
	return bb
}

func (b *Board) countKings(side Side) int {
	n := 0
	for _, p := range b.squares {
		if p != NoPiece && p.Kind() == King && p.Side() == side {
			n++
		}
	}
	return n
}

var letterToKind = map[rune]PieceKind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

func pieceToChar(p Piece) rune {
	if p == NoPiece {
		return '.'
	}
	var base rune
	for k, v := range letterToKind {
		if v == p.Kind() {
			base = k
			break
		}
	}
	if base == 0 {
		return '.'
	}
	if p.Side() == White {
		return unicode.ToUpper(base)
	}
	return base
}

func charToPiece(ch rune) (Piece, bool) {
	k, ok := letterToKind[unicode.ToLower(ch)]
	if !ok {
		return NoPiece, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = White
	}
	return MakePiece(side, k), true
}

// 第一行是第 8 横线
const initialBoardString = `rnbqkbnr
pppppppp
........
........
........
........
PPPPPPPP
RNBQKBNR`

func parseDiagram(s string) *Board {
	b := NewEmptyBoard()
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		panic("board diagram must have 8 rows")
	}
	for i, line := range lines {
		if len(line) != Files {
			panic("board diagram row must have 8 columns")
		}
		rank := Ranks - 1 - i
		for file, ch := range line {
			if ch == '.' {
				continue
			}
			p, ok := charToPiece(ch)
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			b.Put(SquareAt(rank, file), p)
		}
	}
	return b
}

func NewInitialBoard() *Board {
	return parseDiagram(initialBoardString)
}
