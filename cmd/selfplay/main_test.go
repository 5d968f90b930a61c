package main

import (
	"context"
	"testing"

	"fogchess/internal/engine"
)

func TestPlayGameStopsOnRepetition(t *testing.T) {
	out, plies, repeated, err := playGame(context.Background(), engine.NewEngine(11), 50, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !repeated || plies != 0 {
		t.Fatalf("first position already counts once: repeated=%v plies=%d outcome=%s", repeated, plies, out)
	}
}

func TestPlayGameRespectsCap(t *testing.T) {
	_, plies, repeated, err := playGame(context.Background(), engine.NewEngine(11), 12, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if repeated || plies > 12 {
		t.Fatalf("repeated=%v plies=%d", repeated, plies)
	}
}
