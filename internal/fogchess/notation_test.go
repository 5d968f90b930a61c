package fogchess

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
	}{
		{"a1", 0},
		{"h1", 7},
		{"a2", 8},
		{"e4", 28},
		{"h8", 63},
		{" E4 ", 28},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: got=%d want=%d", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "e", "e9", "i1", "e0", "e44", "44"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%q: got=%v want ErrMalformedInput", bad, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e7e8n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.From != sq(t, "e7") || m.To != sq(t, "e8") || m.Promotion != Knight {
		t.Fatalf("got %+v", m)
	}
	for _, s := range []string{"e2e4", "a7a8q", "h2h1r", "b7c8b"} {
		if got := mv(t, s).String(); got != s {
			t.Fatalf("string round trip: got=%s want=%s", got, s)
		}
	}
	for _, bad := range []string{"", "e2", "e2e", "e2e4k", "e2e4qq", "z2e4", "e2e9"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%q: got=%v want ErrMalformedInput", bad, err)
		}
	}
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"white": White, "W": White, "black": Black, "b": Black, "second": Black} {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Fatalf("%q: got=(%s,%v) want=%s", in, got, err, want)
		}
	}
	if _, err := ParseSide("red"); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("got=%v want ErrMalformedInput", err)
	}
}

func TestSquareString(t *testing.T) {
	if got := SquareAt(3, 4).String(); got != "e4" {
		t.Fatalf("got=%s want=e4", got)
	}
	if NoSquare.String() != "-" {
		t.Fatalf("NoSquare string: %s", NoSquare)
	}
}
