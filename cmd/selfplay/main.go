package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"fogchess/internal/engine"
	"fogchess/internal/fogchess"
)

type tally struct {
	whiteWins, blackWins, stalemates, unfinished int
	repeated, plies                              int
}

func main() {
	games := flag.Int("games", 100, "number of games to play")
	maxPlies := flag.Int("maxplies", 400, "ply cap per game")
	seed := flag.Int64("seed", 1, "engine RNG seed")
	bench := flag.Int("bench", 0, "if >0, time this many LegalMoves calls on the start position and exit")
	repeat := flag.Int("repeat", 3, "stop a game once a position occurs this many times (0 disables)")
	verbose := flag.Bool("v", false, "log every game")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if *bench > 0 {
		benchmarkLegalMoves(log, *bench)
		return
	}

	e := engine.NewEngine(*seed)
	ctx := context.Background()
	var t tally
	start := time.Now()

	for g := 0; g < *games; g++ {
		out, plies, repeated, err := playGame(ctx, e, *maxPlies, *repeat)
		if err != nil {
			log.Error("game aborted", zap.Int("game", g+1), zap.Error(err))
			os.Exit(1)
		}
		t.plies += plies
		switch {
		case out.Status == fogchess.Checkmate && out.Winner == fogchess.White:
			t.whiteWins++
		case out.Status == fogchess.Checkmate:
			t.blackWins++
		case out.Status == fogchess.Stalemate:
			t.stalemates++
		case repeated:
			t.repeated++
		default:
			t.unfinished++
		}
		if *verbose {
			log.Info("game finished", zap.Int("game", g+1), zap.Stringer("outcome", out), zap.Int("plies", plies))
		}
	}

	fmt.Printf("games=%d white=%d black=%d stalemate=%d repeated=%d capped=%d avg_plies=%.1f time=%v\n",
		*games, t.whiteWins, t.blackWins, t.stalemates, t.repeated, t.unfinished,
		float64(t.plies)/float64(max(*games, 1)), time.Since(start))
}

// playGame 双方都用随机引擎对弈，直到终局、局面重复 repeat 次或达到 ply 上限。
func playGame(ctx context.Context, e *engine.Engine, maxPlies, repeat int) (fogchess.Outcome, int, bool, error) {
	g := fogchess.NewGame()
	seen := make(map[uint64]int)
	for ply := 0; ply < maxPlies; ply++ {
		if !g.IsInProgress() {
			return g.Outcome(), ply, false, nil
		}
		side := g.SideToMove()
		if repeat > 0 {
			h := fogchess.PositionHash(g.Board(), side)
			seen[h]++
			if seen[h] >= repeat {
				return g.Outcome(), ply, true, nil
			}
		}
		res, err := e.Search(ctx, g.Board(), side, engine.SearchConfig{})
		if err != nil {
			return g.Outcome(), ply, false, err
		}
		if _, err := g.ApplyMove(res.BestMove, side); err != nil {
			return g.Outcome(), ply, false, err
		}
	}
	return g.Outcome(), maxPlies, false, nil
}

func benchmarkLegalMoves(log *zap.Logger, n int) {
	b := fogchess.NewInitialBoard()
	start := time.Now()
	total := 0
	for i := 0; i < n; i++ {
		total += len(fogchess.LegalMoves(b, fogchess.White))
	}
	d := time.Since(start)
	log.Info("legal move generation",
		zap.Int("calls", n),
		zap.Int("moves", total),
		zap.Duration("total", d),
		zap.Duration("per_call", d/time.Duration(n)))
}
