package rules

import (
	"strconv"
	"strings"
)

// startingFEN is the standard initial position. StartingSetup (setup.go)
// parses its own copy of the same string rather than this constant.
const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a Forsyth-Edwards Notation string into a Setup. It
// accepts both the canonical six-field FEN and the extended
// seven-field form carrying a `remainingChecks` token (e.g. three-check
// variants' "+1+2"), detected by field count and content rather than a
// strict position, matching spec.md §4.E's instruction to tolerate
// lenient field splitting/ordering rather than reject non-canonical
// input outright.
//
// Grounded on goosemg/fen.go's ParseFEN, generalized from bare
// errors.New failures to typed *FenError{Code, Msg} values.
func ParseFEN(fen string) (Setup, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 1 {
		return Setup{}, newFenError(ErrFen, "empty FEN")
	}

	board, err := ParseBoardFEN(fields[0])
	if err != nil {
		return Setup{}, err
	}

	s := Setup{
		Board:     board,
		Turn:      White,
		EpSquare:  NoSquare,
		Halfmoves: 0,
		Fullmoves: 1,
	}

	rest := fields[1:]

	// Turn field, defaults to White if absent.
	if len(rest) > 0 {
		turn, err := parseTurn(rest[0])
		if err != nil {
			return Setup{}, err
		}
		s.Turn = turn
		rest = rest[1:]
	}

	// Castling field, defaults to no rights if absent.
	unmovedRooks := Empty
	if len(rest) > 0 {
		unmovedRooks, err = parseCastlingField(board, rest[0])
		if err != nil {
			return Setup{}, err
		}
		rest = rest[1:]
	}
	s.UnmovedRooks = unmovedRooks

	// En passant field, defaults to NoSquare ("-") if absent.
	if len(rest) > 0 {
		ep, err := parseEpField(rest[0])
		if err != nil {
			return Setup{}, err
		}
		s.EpSquare = ep
		rest = rest[1:]
	}

	// Remaining fields may appear as: [halfmoves fullmoves remainingChecks]
	// (canonical) or [remainingChecks halfmoves fullmoves] (the alternate
	// ordering some three-check FEN producers emit), disambiguated by
	// which token looks like "+N+N" rather than a plain integer.
	var rc *RemainingChecks
	var numeric []string
	for _, tok := range rest {
		if parsed, ok := parseRemainingChecksToken(tok); ok {
			rc = parsed
			continue
		}
		numeric = append(numeric, tok)
	}
	s.RemainingChecks = rc

	if len(numeric) > 0 {
		h, err := strconv.Atoi(numeric[0])
		if err != nil || h < 0 {
			return Setup{}, newFenError(ErrHalfmoves, "invalid halfmove clock '"+numeric[0]+"'")
		}
		s.Halfmoves = h
	}
	if len(numeric) > 1 {
		f, err := strconv.Atoi(numeric[1])
		if err != nil || f < 1 {
			return Setup{}, newFenError(ErrFullmoves, "invalid fullmove number '"+numeric[1]+"'")
		}
		s.Fullmoves = f
	}

	return s, nil
}

func parseTurn(tok string) (Side, error) {
	switch tok {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return White, newFenError(ErrTurn, "turn field must be 'w' or 'b', got '"+tok+"'")
	}
}

// parseCastlingField decodes the castling-rights field into the set of
// unmoved rooks it names. It accepts "-" (no rights), the symbolic
// "KQkq" form (resolved against the outermost rook flanking each king,
// per spec.md §4.E), and Shredder-FEN file letters ("HAha" etc, which
// name a file directly and need no scanning).
func parseCastlingField(board Board, tok string) (SquareSet, error) {
	if tok == "-" {
		return Empty, nil
	}
	var unmoved SquareSet
	for _, ch := range []byte(tok) {
		var side Side
		var letter byte
		switch {
		case ch >= 'A' && ch <= 'Z':
			side, letter = White, ch
		case ch >= 'a' && ch <= 'z':
			side, letter = Black, ch-('a'-'A')
		default:
			return Empty, newFenError(ErrCastling, "unrecognized castling character '"+string(ch)+"'")
		}
		switch letter {
		case 'K', 'Q':
			kingside, queenside := outermostRook(board, side)
			var sq Square
			if letter == 'K' {
				sq = kingside
			} else {
				sq = queenside
			}
			if sq == NoSquare {
				return Empty, newFenError(ErrCastling, "no rook to pair with '"+string(ch)+"' right")
			}
			unmoved = unmoved.With(sq)
		default:
			file := int(letter - 'A')
			if file < 0 || file > 7 {
				return Empty, newFenError(ErrCastling, "unrecognized castling character '"+string(ch)+"'")
			}
			rank := backrank(side)
			sq := NewSquare(file, rank)
			if board.RoleAt(sq) != Rook || !board.ByPiece(Piece{Side: side, Role: Rook}).Contains(sq) {
				return Empty, newFenError(ErrCastling, "Shredder castling letter '"+string(ch)+"' names an empty or non-rook square")
			}
			unmoved = unmoved.With(sq)
		}
	}
	return unmoved, nil
}

func parseEpField(tok string) (Square, error) {
	if tok == "-" {
		return NoSquare, nil
	}
	sq, ok := ParseSquare(tok)
	if !ok {
		return NoSquare, newFenError(ErrEpSquare, "invalid en passant square '"+tok+"'")
	}
	return sq, nil
}

// parseRemainingChecksToken recognizes the "+W+B" remainingChecks token,
// e.g. "+1+2" meaning White has 1 check left to give, Black has 2.
func parseRemainingChecksToken(tok string) (*RemainingChecks, bool) {
	if len(tok) < 2 || tok[0] != '+' {
		return nil, false
	}
	plus := strings.LastIndexByte(tok, '+')
	if plus <= 0 {
		return nil, false
	}
	w, err1 := strconv.Atoi(tok[1:plus])
	b, err2 := strconv.Atoi(tok[plus+1:])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &RemainingChecks{White: w, Black: b}, true
}

// FEN renders s as a Forsyth-Edwards Notation string. For each side, the
// castling field uses symbolic KQkq letters when every unmoved rook on the
// backrank is the outermost rook on its side of a king standing on that
// backrank, whatever files the rooks and king are on; otherwise it falls
// back to Shredder-FEN file letters for that side.
func (s Setup) FEN() string {
	var sb strings.Builder
	sb.WriteString(s.Board.FEN())
	sb.WriteByte(' ')
	if s.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(castlingFieldFEN(s.Board, s.UnmovedRooks))
	sb.WriteByte(' ')
	sb.WriteString(s.EpSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.Halfmoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.Fullmoves))
	if s.RemainingChecks != nil {
		sb.WriteByte(' ')
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(s.RemainingChecks.White))
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(s.RemainingChecks.Black))
	}
	return sb.String()
}

func castlingFieldFEN(board Board, unmovedRooks SquareSet) string {
	if unmovedRooks.IsEmpty() {
		return "-"
	}
	var sb strings.Builder
	for _, side := range [2]Side{White, Black} {
		rank := backrank(side)
		rooks := unmovedRooks & board.ByPiece(Piece{Side: side, Role: Rook}) & rankMask(rank)
		if rooks.IsEmpty() {
			continue
		}
		kingside, queenside := outermostRook(board, side)
		standard := true
		for _, sq := range rooks.Squares() {
			if sq != kingside && sq != queenside {
				standard = false
			}
		}
		for _, sq := range rooks.ReverseSquares() {
			var ch byte
			if standard {
				if sq == kingside {
					ch = 'K'
				} else {
					ch = 'Q'
				}
			} else {
				ch = 'A' + byte(sq.File())
			}
			if side == Black {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
