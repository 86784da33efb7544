package rules

import (
	"strings"

	"golang.org/x/exp/slices"
)

// MakeSan renders m, played from p, in Standard Algebraic Notation:
// piece letter (absent for pawns), disambiguation (file, then rank, then
// both, only as much as needed to distinguish m from other legal moves
// of the same role to the same square), capture marker 'x', destination
// square, promotion suffix ("=Q"), and a trailing '+' or '#' if playing m
// gives check or checkmate.
//
// Entirely new relative to the teacher (Oliverans-GooseEngine is
// UCI-only — see goosemg/compat.go's Move.String). Grounded on spec.md
// §4.I's disambiguation algorithm; golang.org/x/exp/slices sorts the
// candidate squares into a deterministic order before the file/rank/both
// decision, the same dependency this repo's PerftDivide uses for
// deterministic ordering (see SPEC_FULL.md's DOMAIN STACK section).
func MakeSan(p Position, m Move) string {
	nm, ok := asNormalMove(m)
	if !ok {
		return ""
	}

	if cs, isCastle := p.castlingSideOf(nm); isCastle {
		san := "O-O"
		if cs == QueenSide {
			san = "O-O-O"
		}
		return san + checkSuffix(p, m)
	}

	piece, _ := p.board.PieceAt(nm.From)
	capturing := p.board.Occupied().Contains(nm.To) || (piece.Role == Pawn && nm.To == p.epSquare && p.epSquare.Valid())

	var sb strings.Builder
	if piece.Role != Pawn {
		sb.WriteByte(upper(piece.Role.char()))
		sb.WriteString(disambiguation(p, nm, piece.Role))
	} else if capturing {
		sb.WriteByte('a' + byte(nm.From.File()))
	}
	if capturing {
		sb.WriteByte('x')
	}
	sb.WriteString(nm.To.String())
	if nm.Promotion != RoleNone {
		sb.WriteByte('=')
		sb.WriteByte(upper(nm.Promotion.char()))
	}
	sb.WriteString(checkSuffix(p, m))
	return sb.String()
}

func upper(c byte) byte { return c - ('a' - 'A') }

func checkSuffix(p Position, m Move) string {
	next := p.playUnchecked(m)
	if !next.IsCheck() {
		return ""
	}
	if !next.HasSomeLegalMoves() {
		return "#"
	}
	return "+"
}

// disambiguation finds every other legal move of role landing on the
// same destination square and returns the minimal prefix needed to tell
// nm apart from them: empty if nm is already unique, the origin file if
// unique by file, the origin rank if unique by rank, else both.
func disambiguation(p Position, nm NormalMove, role Role) string {
	var others []Square
	for _, cand := range p.LegalMoves() {
		cnm, ok := asNormalMove(cand)
		if !ok || cnm.To != nm.To || cnm.From == nm.From {
			continue
		}
		if p.board.RoleAt(cnm.From) != role {
			continue
		}
		others = append(others, cnm.From)
	}
	if len(others) == 0 {
		return ""
	}
	slices.SortFunc(others, func(a, b Square) bool { return a < b })

	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq.File() == nm.From.File() {
			sameFile = true
		}
		if sq.Rank() == nm.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string([]byte{'a' + byte(nm.From.File())})
	case !sameRank:
		return string([]byte{'1' + byte(nm.From.Rank())})
	default:
		return nm.From.String()
	}
}

// ParseSan parses a SAN token against p's legal moves and returns the
// matching Move, or (nil, false) if no legal move matches.
//
// Grounded on spec.md §4.I's inverse of MakeSan: rather than
// reimplementing SAN grammar parsing from scratch, this matches the
// input string against MakeSan's own rendering of every legal move,
// after stripping the check/mate suffix the caller's input may or may
// not include — the same "generate and compare" approach
// goosemg/compat.go's ParseMove takes for UCI strings (compare against
// legal destinations rather than hand-parse disambiguation).
func ParseSan(p Position, san string) (Move, bool) {
	trimmed := strings.TrimRight(san, "+#")
	for _, m := range p.LegalMoves() {
		rendered := MakeSan(p, m)
		if strings.TrimRight(rendered, "+#") == trimmed {
			return m, true
		}
	}
	return nil, false
}
