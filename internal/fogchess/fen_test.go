package fogchess

import (
	"errors"
	"testing"
)

func TestEncodeFENStart(t *testing.T) {
	if got := EncodeFEN(NewInitialBoard(), White); got != startFEN {
		t.Fatalf("got=%q want=%q", got, startFEN)
	}
}

func TestDecodeFENRoundTrip(t *testing.T) {
	tests := []string{
		startFEN,
		"rnb1kbnr/pppp1ppp/4p3/8/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1",
		"7k/1P6/8/8/8/8/8/K7 b - - 0 1",
		"r6k/8/8/n7/8/1N6/8/R6K w - - 0 1",
	}
	for _, fen := range tests {
		b, side := mustBoard(t, fen)
		if got := EncodeFEN(b, side); got != fen {
			t.Fatalf("round trip: got=%q want=%q", got, fen)
		}
		if b.Hash() != b.CalculateHash() {
			t.Fatalf("%q: decoded board hash out of sync", fen)
		}
	}
}

func TestDecodeFENStandardFields(t *testing.T) {
	b, side := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if side != White {
		t.Fatalf("side: got=%s", side)
	}
	if b.squares != NewInitialBoard().squares {
		t.Fatalf("decoded start position differs from initial board")
	}
	if b.KingSquare(Black) != sq(t, "e8") || b.KingSquare(White) != sq(t, "e1") {
		t.Fatalf("king cache: white=%s black=%s", b.KingSquare(White), b.KingSquare(Black))
	}

	// 只有布局和走子方两个字段也可以。
	if _, side := mustBoard(t, "8/8/8/8/8/8/8/K6k b"); side != Black {
		t.Fatalf("short fen side: got=%s", side)
	}
}

func TestDecodeFENInvalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"placement only", "8/8/8/8/8/8/8/8"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"nine files", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"bad letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w - - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeFEN(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("got=%v want ErrInvalidFEN", err)
			}
		})
	}
}
