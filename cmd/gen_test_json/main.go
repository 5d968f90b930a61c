package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"fogchess/internal/fogchess"
)

// TestCase 一个局面在某一方视角下的期望结果，供其它客户端核对规则实现。
type TestCase struct {
	FEN        string   `json:"fen"`
	Side       string   `json:"side"`
	Visible    []string `json:"visible"`
	View       []string `json:"view"`
	LegalMoves []string `json:"legal_moves"`
	InCheck    bool     `json:"in_check"`
	LastMove   string   `json:"last_move,omitempty"`
}

func squares(bb fogchess.Bitboard) []string {
	out := []string{}
	for _, sq := range bb.Squares() {
		out = append(out, sq.String())
	}
	return out
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxPlies := flag.Int("maxplies", 200, "ply cap per game")
	seed := flag.Int64("seed", 1, "RNG seed")
	outPath := flag.String("out", "fog_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		game := fogchess.NewGame()
		for ply := 0; ply < *maxPlies && game.IsInProgress(); ply++ {
			b := game.Board()
			side := game.SideToMove()
			legal := game.LegalMoves()

			tc := TestCase{
				FEN:     fogchess.EncodeFEN(b, side),
				Side:    side.String(),
				Visible: squares(game.Visible(side)),
				View:    viewRows(game, side),
				InCheck: fogchess.IsInCheck(b, side),
			}
			if last := game.LastMove(); last != nil {
				tc.LastMove = last.Move().String()
			}
			for _, m := range legal {
				tc.LegalMoves = append(tc.LegalMoves, m.String())
			}
			testCases = append(testCases, tc)

			// 随机选一步
			chosen := legal[rng.Intn(len(legal))]
			if _, err := game.ApplyMove(chosen, side); err != nil {
				fmt.Fprintf(os.Stderr, "game %d ply %d: %v\n", g+1, ply, err)
				os.Exit(1)
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, file, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *outPath)
}

func viewRows(g *fogchess.GameState, side fogchess.Side) []string {
	v := g.View(side)
	return v.Rows()
}
