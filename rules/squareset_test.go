package rules

import "testing"

func TestSquareSetWithWithout(t *testing.T) {
	s := Empty.With(NewSquare(4, 3)).With(NewSquare(0, 0))
	if !s.Contains(NewSquare(4, 3)) || !s.Contains(NewSquare(0, 0)) {
		t.Fatalf("expected both squares in set, got %064b", s)
	}
	s = s.Without(NewSquare(0, 0))
	if s.Contains(NewSquare(0, 0)) {
		t.Fatalf("expected a1 removed, got %064b", s)
	}
}

func TestSquareSetCountFirstLast(t *testing.T) {
	s := SquareSetOf(NewSquare(0, 0), NewSquare(3, 3), NewSquare(7, 7))
	if got := s.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
	if first, ok := s.First(); !ok || first != NewSquare(0, 0) {
		t.Fatalf("First() = %v, want a1", first)
	}
	if last, ok := s.Last(); !ok || last != NewSquare(7, 7) {
		t.Fatalf("Last() = %v, want h8", last)
	}
}

func TestSquareSetSquaresAscending(t *testing.T) {
	s := SquareSetOf(NewSquare(7, 7), NewSquare(0, 0), NewSquare(3, 3))
	got := s.Squares()
	want := []Square{NewSquare(0, 0), NewSquare(3, 3), NewSquare(7, 7)}
	if len(got) != len(want) {
		t.Fatalf("Squares() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSquareSetDiagonalOrder(t *testing.T) {
	got := Diagonal.Squares()
	for i, sq := range got {
		if sq.File() != i || sq.Rank() != i {
			t.Fatalf("Diagonal.Squares()[%d] = %v, want (%d,%d)", i, sq, i, i)
		}
	}
}

func TestSquareSetFlipVertical(t *testing.T) {
	s := SquareSetOf(NewSquare(0, 0))
	flipped := s.FlipVertical()
	if !flipped.Contains(NewSquare(0, 7)) {
		t.Fatalf("FlipVertical of a1 should contain a8, got %064b", flipped)
	}
}

func TestSquareSetMirrorHorizontal(t *testing.T) {
	s := SquareSetOf(NewSquare(0, 0))
	mirrored := s.MirrorHorizontal()
	if !mirrored.Contains(NewSquare(7, 0)) {
		t.Fatalf("MirrorHorizontal of a1 should contain h1, got %064b", mirrored)
	}
}

func TestSquareSetIsEmpty(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatal("Empty.IsEmpty() = false")
	}
	if Full.IsEmpty() {
		t.Fatal("Full.IsEmpty() = true")
	}
}

func TestBackRanks(t *testing.T) {
	for file := 0; file < 8; file++ {
		if !BackRanks.Contains(NewSquare(file, 0)) || !BackRanks.Contains(NewSquare(file, 7)) {
			t.Fatalf("BackRanks missing file %d", file)
		}
		if BackRanks.Contains(NewSquare(file, 3)) {
			t.Fatalf("BackRanks unexpectedly contains rank 4 file %d", file)
		}
	}
}
