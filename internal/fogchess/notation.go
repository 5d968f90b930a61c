package fogchess

import (
	"fmt"
	"strings"
)

// ParseSquare 解析 "e4" 形式的坐标。
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrMalformedInput, s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	sq := SquareAt(rank, file)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("%w: square %q", ErrMalformedInput, s)
	}
	return sq, nil
}

var promotionLetters = map[byte]PieceKind{
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
}

// ParseMove 解析 "e2e4"，可带升变后缀 "e7e8n"。
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: move %q, want e.g. e2e4", ErrMalformedInput, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		k, ok := promotionLetters[s[4]]
		if !ok {
			return Move{}, fmt.Errorf("%w: promotion %q", ErrMalformedInput, s[4:])
		}
		m.Promotion = k
	}
	return m, nil
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

// ParseSide 接受 white/black/w/b。
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w", "first":
		return White, nil
	case "black", "b", "second":
		return Black, nil
	}
	return NoSide, fmt.Errorf("%w: side %q", ErrMalformedInput, s)
}
