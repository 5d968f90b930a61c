package fogchess

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// EncodeFEN 输出标准 FEN。本变体没有易位和吃过路兵，对应字段固定为 "-"。
func EncodeFEN(b *Board, toMove Side) string {
	var sb strings.Builder
	for r := Ranks - 1; r >= 0; r-- {
		if r < Ranks-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			p := b.At(SquareAt(r, f))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if toMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}

// DecodeFEN 解析 FEN。棋子布局交给 dragontoothmg 解析，之前先做结构校验，
// 因为它对畸形输入会 panic。易位与吃过路兵字段被接受但忽略。
func DecodeFEN(fen string) (*Board, Side, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, NoSide, fmt.Errorf("%w: need placement and side fields", ErrInvalidFEN)
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, NoSide, err
	}
	var toMove Side
	switch fields[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, NoSide, fmt.Errorf("%w: side %q", ErrInvalidFEN, fields[1])
	}

	full := []string{fields[0], fields[1], "-", "-", "0", "1"}
	dtb, err := parsePlacement(strings.Join(full, " "))
	if err != nil {
		return nil, NoSide, err
	}

	b := NewEmptyBoard()
	put := func(bits uint64, side Side, k PieceKind) {
		for bb := Bitboard(bits); bb != 0; {
			var sq Square
			sq, bb = bb.PopLSB()
			b.Put(sq, MakePiece(side, k))
		}
	}
	for _, side := range []Side{White, Black} {
		set := dtb.White
		if side == Black {
			set = dtb.Black
		}
		put(set.Pawns, side, Pawn)
		put(set.Knights, side, Knight)
		put(set.Bishops, side, Bishop)
		put(set.Rooks, side, Rook)
		put(set.Queens, side, Queen)
		put(set.Kings, side, King)
	}
	return b, toMove, nil
}

func parsePlacement(fen string) (b dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func checkPlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != Ranks {
		return fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}
	for i, row := range rows {
		n := 0
		for _, ch := range row {
			switch {
			case ch >= '1' && ch <= '8':
				n += int(ch - '0')
			default:
				if _, ok := charToPiece(ch); !ok {
					return fmt.Errorf("%w: piece letter %q", ErrInvalidFEN, ch)
				}
				n++
			}
		}
		if n != Files {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, Ranks-i, n)
		}
	}
	return nil
}
