package rules

import "strings"

// UCI renders m in the Universal Chess Interface move-string format:
// <from><to>[promotion], e.g. "e2e4", "e7e8q". Castling moves (encoded
// internally as the king capturing its own rook) render as the king's
// actual two-square destination, matching what a UCI GUI sends/expects
// (e.g. "e1g1", not "e1h1").
//
// Grounded on goosemg/compat.go's Move.String, generalized from the
// teacher's packed-uint32 Move encoding to the interface-typed Move sum
// type, and from castling encoded as a flag bit to castling encoded as
// king-captures-rook (this repo's playUnchecked convention) rendered
// back out as the GUI-facing king destination.
func UCI(p Position, m Move) (string, bool) {
	nm, ok := asNormalMove(m)
	if !ok {
		return "", false
	}
	to := nm.To
	if cs, isCastle := p.castlingSideOf(nm); isCastle {
		to, _ = castleDestinations(p.turn, cs)
	}
	var sb strings.Builder
	sb.WriteString(nm.From.String())
	sb.WriteString(to.String())
	if nm.Promotion != RoleNone {
		sb.WriteByte(nm.Promotion.char())
	}
	return sb.String(), true
}

// tryUCI renders m as a UCI string without a Position, for diagnostic
// messages (PlayError.Error) where only castling's From/To=rook-square
// shape is available; it renders the raw from/to/promotion, not the
// king's two-square destination, since no Position is available here to
// resolve which rook belongs to which castling side.
func tryUCI(m Move) (string, bool) {
	nm, ok := asNormalMove(m)
	if !ok {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(nm.From.String())
	sb.WriteString(nm.To.String())
	if nm.Promotion != RoleNone {
		sb.WriteByte(nm.Promotion.char())
	}
	return sb.String(), true
}

// FromUCI parses a UCI move string against p, resolving a king's
// two-square castling destination back to the internal
// king-captures-rook encoding so the result can be matched against
// LegalMoves/played directly.
//
// Grounded on goosemg/compat.go's ParseMove/algebraicToIndex.
func FromUCI(p Position, s string) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return nil, false
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return nil, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return nil, false
	}
	promotion := RoleNone
	if len(s) == 5 {
		role, ok := roleFromChar(s[4])
		if !ok {
			return nil, false
		}
		promotion = role
	}

	if piece, ok := p.board.PieceAt(from); ok && piece.Role == King {
		for _, cs := range [2]CastlingSide{KingSide, QueenSide} {
			if kingTo, _ := castleDestinations(p.turn, cs); kingTo == to && piece.Side == p.turn {
				if rookSq, has := p.castles.RookOf(p.turn, cs); has {
					return NormalMove{From: from, To: rookSq, Promotion: RoleNone}, true
				}
			}
		}
	}
	return NormalMove{From: from, To: to, Promotion: promotion}, true
}
