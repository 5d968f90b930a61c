package fogchess

import "testing"

func TestIsAttacked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		sq   string
		by   Side
		want bool
	}{
		{"rook on open file", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", "e1", Black, true},
		{"rook blocked", "4r2k/8/8/8/8/4P3/8/4K3 w - - 0 1", "e1", Black, false},
		{"bishop diagonal", "7k/8/8/8/1b6/8/8/4K3 w - - 0 1", "e1", Black, true},
		{"bishop blocked", "7k/8/8/8/1b6/8/3P4/4K3 w - - 0 1", "e1", Black, false},
		{"black pawn diagonal", "7k/8/8/3p4/8/8/8/K7 w - - 0 1", "e4", Black, true},
		{"black pawn forward", "7k/8/8/3p4/8/8/8/K7 w - - 0 1", "d4", Black, false},
		{"white pawn diagonal", "7k/8/8/8/4P3/8/8/K7 w - - 0 1", "d5", White, true},
		{"white pawn forward", "7k/8/8/8/4P3/8/8/K7 w - - 0 1", "e5", White, false},
		{"white pawn backwards", "7k/8/8/8/4P3/8/8/K7 w - - 0 1", "d3", White, false},
		{"knight", "7k/8/8/8/8/5n2/8/4K3 w - - 0 1", "e1", Black, true},
		{"king adjacent", "8/8/8/8/8/8/3k4/4K3 w - - 0 1", "e1", Black, true},
		{"queen along rank", "7k/8/8/8/8/8/8/q3K3 w - - 0 1", "e1", Black, true},
		{"queen no knight shape", "7k/8/8/8/8/3q4/8/4K3 w - - 0 1", "e1", Black, false},
		{"own rook does not attack", "4R2k/8/8/8/8/8/8/4K3 w - - 0 1", "e1", Black, false},
		{"attacker in fog still attacks", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", "e2", Black, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mustBoard(t, tt.fen)
			if got := IsAttacked(b, sq(t, tt.sq), tt.by); got != tt.want {
				t.Fatalf("IsAttacked(%s, %s): got=%v want=%v", tt.sq, tt.by, got, tt.want)
			}
		})
	}
}

func TestIsInCheck(t *testing.T) {
	b, _ := mustBoard(t, "4r2k/8/8/8/8/8/8/4K3 w - - 0 1")
	if !IsInCheck(b, White) {
		t.Fatalf("white should be in check")
	}
	if IsInCheck(b, Black) {
		t.Fatalf("black should not be in check")
	}
	if IsInCheck(NewEmptyBoard(), White) {
		t.Fatalf("a side without a king is never in check")
	}
	if IsAttacked(b, NoSquare, Black) {
		t.Fatalf("off-board square cannot be attacked")
	}
}
