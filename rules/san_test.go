package rules

import "testing"

func TestMakeSanPawnPush(t *testing.T) {
	p := startingPosition(t)
	m := NormalMove{From: NewSquare(4, 1), To: NewSquare(4, 3)}
	if got := MakeSan(p, m); got != "e4" {
		t.Fatalf("MakeSan(e2e4) = %q, want %q", got, "e4")
	}
}

func TestMakeSanKnightDisambiguation(t *testing.T) {
	// Two white knights (b1, g1 replaced by a matching pair on b3/d3) can
	// both reach c5; SAN must disambiguate by file.
	s, err := ParseFEN("4k3/8/8/8/8/1N1N4/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	m := NormalMove{From: NewSquare(1, 2), To: NewSquare(2, 4)}
	got := MakeSan(p, m)
	if got != "Nbc5" {
		t.Fatalf("MakeSan(disambiguated knight move) = %q, want %q", got, "Nbc5")
	}
}

func TestMakeSanCastling(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	m := NormalMove{From: NewSquare(4, 0), To: NewSquare(7, 0)}
	if got := MakeSan(p, m); got != "O-O" {
		t.Fatalf("MakeSan(castle) = %q, want %q", got, "O-O")
	}
}

func TestMakeSanCheckAndMateSuffix(t *testing.T) {
	p := startingPosition(t)
	for _, uci := range []string{"f2f3", "e7e5", "g2g4"} {
		m, ok := FromUCI(p, uci)
		if !ok {
			t.Fatalf("FromUCI(%q) failed", uci)
		}
		next, err := p.Play(m)
		if err != nil {
			t.Fatalf("Play(%q): %v", uci, err)
		}
		p = next
	}
	m := NormalMove{From: NewSquare(3, 7), To: NewSquare(7, 3)}
	if got := MakeSan(p, m); got != "Qh4#" {
		t.Fatalf("MakeSan(mating queen move) = %q, want %q", got, "Qh4#")
	}
}

func TestParseSanRoundTrip(t *testing.T) {
	p := startingPosition(t)
	m, ok := ParseSan(p, "e4")
	if !ok {
		t.Fatal("ParseSan(e4) failed")
	}
	nm, ok := asNormalMove(m)
	if !ok || nm.From != NewSquare(4, 1) || nm.To != NewSquare(4, 3) {
		t.Fatalf("ParseSan(e4) = %+v, want e2e4", nm)
	}
}

func TestParseSanUnknownMoveFails(t *testing.T) {
	p := startingPosition(t)
	if _, ok := ParseSan(p, "e5"); ok {
		t.Fatal("ParseSan(e5) should fail: no white pawn can reach e5 in one move")
	}
}
