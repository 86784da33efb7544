package rules

// Castles holds per-(side, castling side) rook-origin squares and the path
// masks that must be clear for castling to proceed, plus the set of rooks
// that have never moved (the raw right, before outermost-rook pairing).
//
// New relative to the teacher, which tracks castling rights as a 4-bit
// CastlingRights flag set with no rook-square/path-mask derivation
// (goosemg/board.go CastlingRights). Grounded on the scanning technique
// implicit in the teacher's FEN castling-field parser (goosemg/fen.go,
// 'K'/'Q'/'k'/'q' -> flag bits) generalized to spec.md §4.D's
// outermost-rook-pairing algorithm.
type Castles struct {
	unmovedRooks SquareSet
	rookSquare   [2][2]Square    // [side][CastlingSide]; NoSquare if no right
	path         [2][2]SquareSet // [side][CastlingSide]
}

// NoCastles has no castling rights for either side.
var NoCastles = Castles{
	rookSquare: [2][2]Square{
		{NoSquare, NoSquare},
		{NoSquare, NoSquare},
	},
}

// backrank returns the home rank index for side (0 for White, 7 for Black).
func backrank(side Side) int {
	if side == White {
		return 0
	}
	return 7
}

// CastlesFromSetup derives castling rights by scanning each side's backrank,
// intersected with the rook set and unmovedRooks: the lowest-square rook
// below the king is the queenside rook, the highest-square rook above the
// king is the kingside rook (the "outermost rooks flanking the king"
// assumption spec.md §4.D describes). If the king is absent from its
// backrank, no rights are recorded for that side.
func CastlesFromSetup(board Board, unmovedRooks SquareSet) (Castles, error) {
	c := NoCastles
	c.unmovedRooks = unmovedRooks
	for _, side := range [2]Side{White, Black} {
		rank := backrank(side)
		kingSq, hasKing := board.KingOf(side)
		if !hasKing || kingSq.Rank() != rank {
			continue
		}
		candidates := board.PiecesOf(side, Rook) & unmovedRooks & rankMask(rank)
		if candidates.Count() > 2 {
			return Castles{}, newFenError(ErrCastling, "more than two unmoved rooks on backrank")
		}
		var queenRook, kingRook Square = NoSquare, NoSquare
		for _, sq := range candidates.Squares() {
			if sq < kingSq {
				if queenRook == NoSquare || sq < queenRook {
					queenRook = sq
				}
			} else if sq > kingSq {
				if kingRook == NoSquare || sq > kingRook {
					kingRook = sq
				}
			}
		}
		if queenRook != NoSquare {
			c = c.withRight(side, QueenSide, kingSq, queenRook)
		}
		if kingRook != NoSquare {
			c = c.withRight(side, KingSide, kingSq, kingRook)
		}
	}
	return c, nil
}

// castleDestinations returns the fixed king/rook destination squares for
// (side, castlingSide) per spec.md §4.G: kingside king->g, rook->f;
// queenside king->c, rook->d.
func castleDestinations(side Side, cs CastlingSide) (kingTo, rookTo Square) {
	rank := backrank(side)
	if cs == KingSide {
		return NewSquare(6, rank), NewSquare(5, rank)
	}
	return NewSquare(2, rank), NewSquare(3, rank)
}

// withRight records a castling right along with its path mask. The path
// mask is the union of the king's walk and the rook's walk (destination
// inclusive, origin exclusive), matching the Open-Question-resolved
// exclusion: origins never appear in the path mask because they hold the
// very pieces the move is relocating.
func (c Castles) withRight(side Side, cs CastlingSide, kingFrom, rookFrom Square) Castles {
	kingTo, rookTo := castleDestinations(side, cs)
	path := span(kingFrom, kingTo).Union(span(rookFrom, rookTo))
	path = path.Without(kingFrom).Without(rookFrom)
	c.rookSquare[side][cs] = rookFrom
	c.path[side][cs] = path
	return c
}

// span returns the squares strictly between a and b, plus b itself.
func span(a, b Square) SquareSet {
	if a == b {
		return Empty
	}
	return Between(a, b).With(b)
}

// outermostRook scans side's backrank for the outermost rooks flanking the
// king, regardless of unmovedRooks — used to resolve symbolic K/Q/k/q FEN
// castling letters against a board that may not have rooks on the
// conventional a/h files (spec.md §4.E's tolerance for non-standard setups).
func outermostRook(board Board, side Side) (kingside, queenside Square) {
	rank := backrank(side)
	kingSq, hasKing := board.KingOf(side)
	if !hasKing || kingSq.Rank() != rank {
		return NoSquare, NoSquare
	}
	kingside, queenside = NoSquare, NoSquare
	for _, sq := range (board.PiecesOf(side, Rook) & rankMask(rank)).Squares() {
		if sq < kingSq {
			if queenside == NoSquare || sq < queenside {
				queenside = sq
			}
		} else if sq > kingSq {
			if kingside == NoSquare || sq > kingside {
				kingside = sq
			}
		}
	}
	return kingside, queenside
}

// RookOf returns the rook origin square for (side, castlingSide), or
// (NoSquare, false) if that right does not exist.
func (c Castles) RookOf(side Side, cs CastlingSide) (Square, bool) {
	sq := c.rookSquare[side][cs]
	return sq, sq != NoSquare
}

// PathOf returns the squares that must be empty (excluding king and rook
// origins) for (side, castlingSide) to castle, or Empty if the right does
// not exist.
func (c Castles) PathOf(side Side, cs CastlingSide) SquareSet {
	return c.path[side][cs]
}

// Has reports whether (side, castlingSide) is still a live right.
func (c Castles) Has(side Side, cs CastlingSide) bool {
	return c.rookSquare[side][cs] != NoSquare
}

// UnmovedRooks returns the raw set of rooks that have never moved.
func (c Castles) UnmovedRooks() SquareSet { return c.unmovedRooks }

// DiscardRookAt clears any right whose rook sits on sq, e.g. because that
// rook just moved or was captured.
func (c Castles) DiscardRookAt(sq Square) Castles {
	nc := c
	nc.unmovedRooks = nc.unmovedRooks.Without(sq)
	for _, side := range [2]Side{White, Black} {
		for _, cs := range [2]CastlingSide{KingSide, QueenSide} {
			if nc.rookSquare[side][cs] == sq {
				nc.rookSquare[side][cs] = NoSquare
				nc.path[side][cs] = Empty
			}
		}
	}
	return nc
}

// DiscardSide clears both rights of side, e.g. because its king just moved.
func (c Castles) DiscardSide(side Side) Castles {
	nc := c
	for _, cs := range [2]CastlingSide{KingSide, QueenSide} {
		if sq := nc.rookSquare[side][cs]; sq != NoSquare {
			nc.unmovedRooks = nc.unmovedRooks.Without(sq)
		}
		nc.rookSquare[side][cs] = NoSquare
		nc.path[side][cs] = Empty
	}
	return nc
}
