package main

import (
	"fmt"
	"io"
	"strings"

	"fogchess/internal/fogchess"
)

const (
	fogGlyph   = "?"
	emptyGlyph = "·"
)

var glyphs = map[fogchess.Piece]string{
	fogchess.MakePiece(fogchess.White, fogchess.King):   "♔",
	fogchess.MakePiece(fogchess.White, fogchess.Queen):  "♕",
	fogchess.MakePiece(fogchess.White, fogchess.Rook):   "♖",
	fogchess.MakePiece(fogchess.White, fogchess.Bishop): "♗",
	fogchess.MakePiece(fogchess.White, fogchess.Knight): "♘",
	fogchess.MakePiece(fogchess.White, fogchess.Pawn):   "♙",
	fogchess.MakePiece(fogchess.Black, fogchess.King):   "♚",
	fogchess.MakePiece(fogchess.Black, fogchess.Queen):  "♛",
	fogchess.MakePiece(fogchess.Black, fogchess.Rook):   "♜",
	fogchess.MakePiece(fogchess.Black, fogchess.Bishop): "♝",
	fogchess.MakePiece(fogchess.Black, fogchess.Knight): "♞",
	fogchess.MakePiece(fogchess.Black, fogchess.Pawn):   "♟",
}

// cell 返回一个格子的显示内容；known=false 表示迷雾。
type cellFunc func(sq fogchess.Square) (p fogchess.Piece, known bool)

func renderBoard(w io.Writer, cell cellFunc) {
	const files = "  a b c d e f g h"
	fmt.Fprintln(w, files)
	fmt.Fprintln(w, " ┌─────────────────┐")
	for r := fogchess.Ranks - 1; r >= 0; r-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d│ ", r+1)
		for f := 0; f < fogchess.Files; f++ {
			p, known := cell(fogchess.SquareAt(r, f))
			switch {
			case !known:
				sb.WriteString(fogGlyph)
			case p == fogchess.NoPiece:
				sb.WriteString(emptyGlyph)
			default:
				sb.WriteString(glyphs[p])
			}
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "│%d", r+1)
		fmt.Fprintln(w, sb.String())
	}
	fmt.Fprintln(w, " └─────────────────┘")
	fmt.Fprintln(w, files)
}

func renderView(w io.Writer, v fogchess.MaskedBoard) {
	renderBoard(w, v.At)
}

func renderFull(w io.Writer, b *fogchess.Board) {
	renderBoard(w, func(sq fogchess.Square) (fogchess.Piece, bool) {
		return b.At(sq), true
	})
}
