package rules

import "testing"

func TestUCIRenderNormalMove(t *testing.T) {
	p := startingPosition(t)
	m := NormalMove{From: NewSquare(4, 1), To: NewSquare(4, 3)}
	got, ok := UCI(p, m)
	if !ok || got != "e2e4" {
		t.Fatalf("UCI(e2e4) = %q, %v; want %q, true", got, ok, "e2e4")
	}
}

func TestUCIRenderPromotion(t *testing.T) {
	s, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	m := NormalMove{From: NewSquare(0, 6), To: NewSquare(0, 7), Promotion: Queen}
	got, ok := UCI(p, m)
	if !ok || got != "a7a8q" {
		t.Fatalf("UCI(promotion) = %q, %v; want %q, true", got, ok, "a7a8q")
	}
}

func TestUCIRenderCastleAsKingDestination(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	m := NormalMove{From: NewSquare(4, 0), To: NewSquare(7, 0)}
	got, ok := UCI(p, m)
	if !ok || got != "e1g1" {
		t.Fatalf("UCI(castle) = %q, %v; want %q, true", got, ok, "e1g1")
	}
}

func TestFromUCIResolvesCastleToRookCapture(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	m, ok := FromUCI(p, "e1g1")
	if !ok {
		t.Fatal("FromUCI(e1g1) failed")
	}
	nm, ok := asNormalMove(m)
	if !ok || nm.To != NewSquare(7, 0) {
		t.Fatalf("FromUCI(e1g1) = %+v, want To=h1 (internal castle encoding)", nm)
	}
	if !p.IsLegal(m) {
		t.Fatal("resolved castle move should be legal")
	}
}
