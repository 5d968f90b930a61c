package fogchess

import (
	"math/rand"
	"testing"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func mustBoard(t *testing.T, fen string) (*Board, Side) {
	t.Helper()
	b, side, err := DecodeFEN(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return b, side
}

func mustGame(t *testing.T, fen string) *GameState {
	t.Helper()
	b, side := mustBoard(t, fen)
	g, err := NewGameFromBoard(b, side)
	if err != nil {
		t.Fatalf("new game from %q: %v", fen, err)
	}
	return g
}

func sq(t *testing.T, s string) Square {
	t.Helper()
	v, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return v
}

func mv(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	if err != nil {
		t.Fatalf("parse move %q: %v", s, err)
	}
	return m
}

func play(t *testing.T, g *GameState, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if _, err := g.ApplyMove(mv(t, s), g.SideToMove()); err != nil {
			t.Fatalf("apply %s: %v", s, err)
		}
	}
}

// randomBoards 用固定种子随机对弈，收集途经的局面。
func randomBoards(t *testing.T, games, plies int) []*Board {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	var out []*Board
	for i := 0; i < games; i++ {
		g := NewGame()
		for ply := 0; ply < plies && g.IsInProgress(); ply++ {
			moves := g.LegalMoves()
			if len(moves) == 0 {
				break
			}
			if _, err := g.ApplyMove(moves[rng.Intn(len(moves))], g.SideToMove()); err != nil {
				t.Fatalf("random game %d ply %d: %v", i, ply, err)
			}
			out = append(out, g.Board())
		}
	}
	return out
}
