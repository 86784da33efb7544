package rules

import "testing"

func startingPosition(t *testing.T) Position {
	t.Helper()
	s, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	return p
}

func TestStartingPositionLegalMoveCount(t *testing.T) {
	p := startingPosition(t)
	if got := len(p.LegalMoves()); got != 20 {
		t.Fatalf("starting position legal move count = %d, want 20", got)
	}
}

func TestFromSetupRejectsNoKings(t *testing.T) {
	s, err := ParseFEN("8/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	_, err = FromSetup(s)
	var pe *PositionError
	if err == nil {
		t.Fatal("expected PositionError for a board with no kings")
	}
	if pe, _ = err.(*PositionError); pe == nil || pe.Cause != CauseEmpty {
		// An empty board fails the emptiness check before the kings check.
		t.Fatalf("expected CauseEmpty, got %v", err)
	}
}

func TestFromSetupRejectsOppositeCheck(t *testing.T) {
	// White king on e1, black king on e8, white rook on e4 giving check
	// to black while it is White to move.
	s, err := ParseFEN("4k3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	_, err = FromSetup(s)
	pe, ok := err.(*PositionError)
	if !ok || pe.Cause != CauseOppositeCheck {
		t.Fatalf("expected CauseOppositeCheck, got %v", err)
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	p := startingPosition(t)
	_, err := p.Play(NormalMove{From: NewSquare(4, 1), To: NewSquare(4, 4)})
	var pe *PlayError
	if err == nil {
		t.Fatal("expected PlayError for a three-square pawn move (e2-e5)")
	}
	if pe, _ = err.(*PlayError); pe == nil {
		t.Fatalf("expected *PlayError, got %T", err)
	}
}

func TestPlayAdvancesTurnAndClocks(t *testing.T) {
	p := startingPosition(t)
	next, err := p.Play(NormalMove{From: NewSquare(4, 1), To: NewSquare(4, 3)})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.Turn() != Black {
		t.Fatalf("Turn() = %v, want Black", next.Turn())
	}
	if next.EpSquare() != NewSquare(4, 2) {
		t.Fatalf("EpSquare() = %v, want e3", next.EpSquare())
	}
	if next.Fullmoves() != 1 {
		t.Fatalf("Fullmoves() = %d, want 1 (increments after Black moves)", next.Fullmoves())
	}
}

func TestCastlingKingsideMove(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	next, err := p.Play(NormalMove{From: NewSquare(4, 0), To: NewSquare(7, 0)})
	if err != nil {
		t.Fatalf("Play(castle): %v", err)
	}
	if sq, ok := next.Board().KingOf(White); !ok || sq != NewSquare(6, 0) {
		t.Fatalf("king should land on g1, got %v", sq)
	}
	if next.Board().RoleAt(NewSquare(5, 0)) != Rook {
		t.Fatal("rook should land on f1 after kingside castle")
	}
}

func TestCastlingBlockedByAttackedSquare(t *testing.T) {
	// Black rook on f8 controls f1, the king's transit square.
	s, err := ParseFEN("5rk1/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	if p.IsLegal(NormalMove{From: NewSquare(4, 0), To: NewSquare(7, 0)}) {
		t.Fatal("castling through an attacked square must be illegal")
	}
}

func TestEnPassantCapture(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	next, err := p.Play(NormalMove{From: NewSquare(4, 4), To: NewSquare(3, 5)})
	if err != nil {
		t.Fatalf("Play(en passant): %v", err)
	}
	if next.Board().Occupied().Contains(NewSquare(3, 4)) {
		t.Fatal("captured pawn should be removed from d5")
	}
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	p, err := FromSetup(s)
	if err != nil {
		t.Fatalf("FromSetup: %v", err)
	}
	if !p.IsInsufficientMaterial() {
		t.Fatal("bare kings should be insufficient material")
	}
}

func TestFoolsMateCheckmate(t *testing.T) {
	p := startingPosition(t)
	moves := []string{"f2f3", "e7e5", "g2g4", "d8h4"}
	for _, uci := range moves {
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
	if !p.IsCheckmate() {
		t.Fatal("expected checkmate after fool's mate sequence")
	}
}
