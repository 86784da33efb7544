package rules

import "testing"

func TestBoardSetRemovePieceAt(t *testing.T) {
	b := EmptyBoard
	b = b.SetPieceAt(NewSquare(4, 0), Piece{Side: White, Role: King})
	if p, ok := b.PieceAt(NewSquare(4, 0)); !ok || p.Role != King {
		t.Fatalf("expected white king on e1, got %v ok=%v", p, ok)
	}
	before := b
	b = b.RemovePieceAt(NewSquare(4, 0))
	if _, ok := b.PieceAt(NewSquare(4, 0)); ok {
		t.Fatal("expected e1 empty after RemovePieceAt")
	}
	if _, ok := before.PieceAt(NewSquare(4, 0)); !ok {
		t.Fatal("SetPieceAt/RemovePieceAt must not mutate the receiver")
	}
}

func TestBoardFENRoundTripStartingPosition(t *testing.T) {
	const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	b, err := ParseBoardFEN(startFEN)
	if err != nil {
		t.Fatalf("ParseBoardFEN: %v", err)
	}
	if got := b.FEN(); got != startFEN {
		t.Fatalf("FEN() = %q, want %q", got, startFEN)
	}
	if b.Occupied().Count() != 32 {
		t.Fatalf("starting position occupied count = %d, want 32", b.Occupied().Count())
	}
}

func TestParseBoardFENRejectsBadRankCount(t *testing.T) {
	_, err := ParseBoardFEN("8/8/8/8/8/8/8")
	if err == nil {
		t.Fatal("expected error for 7-rank board field")
	}
	var fe *FenError
	if !asFenError(err, &fe) || fe.Code != ErrBoard {
		t.Fatalf("expected ErrBoard, got %v", err)
	}
}

func asFenError(err error, out **FenError) bool {
	fe, ok := err.(*FenError)
	if ok {
		*out = fe
	}
	return ok
}

func TestBoardAttacksTo(t *testing.T) {
	b := EmptyBoard.SetPieceAt(NewSquare(0, 0), Piece{Side: White, Role: Rook})
	attackers := b.AttacksTo(NewSquare(0, 5), White)
	if !attackers.Contains(NewSquare(0, 0)) {
		t.Fatalf("rook on a1 should attack a6, attackers=%064b", attackers)
	}
}

func TestBoardKingOf(t *testing.T) {
	b := EmptyBoard.SetPieceAt(NewSquare(4, 0), Piece{Side: White, Role: King})
	sq, ok := b.KingOf(White)
	if !ok || sq != NewSquare(4, 0) {
		t.Fatalf("KingOf(White) = %v, %v; want e1, true", sq, ok)
	}
	if _, ok := b.KingOf(Black); ok {
		t.Fatal("KingOf(Black) should be false on a board with no black king")
	}
}
