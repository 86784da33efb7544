package rules

// Variant distinguishes rule sets that share this package's move-generation
// core. VariantStandard is the only value implemented; the field exists so
// a future variant does not require collapsing a separate inheritance
// chain into this one, per DESIGN NOTES' Position/Iratus resolution.
type Variant uint8

const VariantStandard Variant = 0

// Position is a validated, playable chess position: board, turn,
// castling rights, en passant square, half/fullmove counters, and
// opaque remaining-checks metadata. Every value is immutable; Play and
// playUnchecked both return a new Position rather than mutating the
// receiver.
//
// Grounded on goosemg/board.go's Board (which conflates "board" and
// "position" into one mutable struct); this repo separates the two, with
// Position holding a Board plus the game-state fields the teacher keeps
// alongside it (turn, castling rights, ep square, clocks).
type Position struct {
	variant         Variant
	board           Board
	turn            Side
	castles         Castles
	epSquare        Square // pawn that just double-pushed's skipped square, or NoSquare
	halfmoves       int
	fullmoves       int
	remainingChecks *RemainingChecks
}

// Board returns the position's board.
func (p Position) Board() Board { return p.board }

// Turn returns the side to move.
func (p Position) Turn() Side { return p.turn }

// Castles returns the position's castling rights.
func (p Position) Castles() Castles { return p.castles }

// EpSquare returns the en passant target square, or NoSquare if none.
func (p Position) EpSquare() Square { return p.epSquare }

// Halfmoves returns the halfmove clock (plies since the last capture or pawn move).
func (p Position) Halfmoves() int { return p.halfmoves }

// Fullmoves returns the fullmove number.
func (p Position) Fullmoves() int { return p.fullmoves }

// FromSetup validates setup per spec.md §4.F and returns the Position it
// describes, or a *PositionError naming which invariant failed.
//
// Grounded on goosemg/board.go's implicit assumption that any FEN it is
// asked to parse already describes a legal position (no validation pass
// exists in the teacher); this repo adds the validation spec.md requires
// since an immutable, library-shaped Position must reject impossible
// inputs rather than silently misbehave on them.
func FromSetup(setup Setup) (Position, error) {
	board := setup.Board
	if board.Occupied().IsEmpty() {
		return Position{}, newPositionError(CauseEmpty, "board has no pieces")
	}
	for _, side := range [2]Side{White, Black} {
		if sq, ok := board.KingOf(side); !ok {
			return Position{}, newPositionError(CauseKings, side.String()+" has no king")
		} else if (board.PiecesOf(side, King) & ^SquareSetOf(sq)).Count() > 0 {
			return Position{}, newPositionError(CauseKings, side.String()+" has more than one king")
		}
	}
	if (board.ByRole(Pawn) & BackRanks).Count() > 0 {
		return Position{}, newPositionError(CausePawnsOnBackrank, "pawn on the first or eighth rank")
	}

	castles, err := CastlesFromSetup(board, setup.UnmovedRooks)
	if err != nil {
		return Position{}, newPositionError(CauseVariant, err.Error())
	}

	epSquare := NoSquare
	if setup.EpSquare.Valid() {
		if sq, ok := legalEpSquare(board, setup.Turn, setup.EpSquare); ok {
			epSquare = sq
		}
	}

	p := Position{
		variant:         VariantStandard,
		board:           board,
		turn:            setup.Turn,
		castles:         castles,
		epSquare:        epSquare,
		halfmoves:       setup.Halfmoves,
		fullmoves:       setup.Fullmoves,
		remainingChecks: setup.RemainingChecks,
	}

	them := setup.Turn.Opposite()
	theirKing, _ := board.KingOf(them)
	if board.AttacksTo(theirKing, setup.Turn).Count() > 0 {
		return Position{}, newPositionError(CauseOppositeCheck, "the side not to move is in check")
	}

	us := setup.Turn
	ourKing, _ := board.KingOf(us)
	checkers := board.AttacksTo(ourKing, them)
	if checkers.Count() > 2 {
		return Position{}, newPositionError(CauseImpossibleCheck, "more than two simultaneous checkers")
	}
	if checkers.Count() == 2 {
		sqs := checkers.Squares()
		r0, r1 := board.RoleAt(sqs[0]), board.RoleAt(sqs[1])
		if (r0 == Pawn && r1 == Pawn) || sameRay(sqs[0], sqs[1], ourKing) {
			return Position{}, newPositionError(CauseImpossibleCheck, "impossible double check")
		}
	}

	return p, nil
}

func sameRay(a, b, king Square) bool {
	return Ray(a, b) != Empty && Ray(a, b).Contains(king)
}

// legalEpSquare reports whether the ep-square field named in a FEN/Setup
// is consistent with a pawn that could actually have just double-pushed
// there: a pawn of the side NOT to move must sit one step beyond it, and
// the skipped square plus the square behind it must be empty.
//
// Grounded on spec.md §4.F's ep-square validity rule; the teacher trusts
// its FEN input unconditionally (goosemg/fen.go has no such check).
func legalEpSquare(board Board, turn Side, epSquare Square) (Square, bool) {
	them := turn.Opposite()
	var pawnRank, skipFromRank int
	if turn == White {
		pawnRank, skipFromRank = 4, 6
	} else {
		pawnRank, skipFromRank = 3, 1
	}
	if epSquare.Rank() != rankBehind(turn) {
		return NoSquare, false
	}
	pawnSquare := NewSquare(epSquare.File(), pawnRank)
	if board.RoleAt(pawnSquare) != Pawn || !board.ByPiece(Piece{Side: them, Role: Pawn}).Contains(pawnSquare) {
		return NoSquare, false
	}
	originSquare := NewSquare(epSquare.File(), skipFromRank)
	if board.Occupied().Contains(epSquare) || board.Occupied().Contains(originSquare) {
		return NoSquare, false
	}
	return epSquare, true
}

func rankBehind(turn Side) int {
	if turn == White {
		return 5
	}
	return 2
}

// moveContext bundles the per-position facts move generation repeatedly
// needs, computed once per call instead of the teacher's
// compute-inline-every-time style (goosemg/movegen.go
// generateMovesFilteredInto recomputes checkers/pins at the top of every
// call; this repo makes that recomputation an explicit, named step).
type moveContext struct {
	us, them   Side
	kingSquare Square
	checkers   SquareSet
	blockers   SquareSet // our pieces pinned to our king
	pinnerOf   [64]Square
}

func (p Position) context() moveContext {
	us, them := p.turn, p.turn.Opposite()
	king, _ := p.board.KingOf(us)
	ctx := moveContext{us: us, them: them, kingSquare: king}
	ctx.checkers = p.board.AttacksTo(king, them)

	occWithoutUs := p.board.Occupied()
	rookLike := p.board.PiecesOf(them, Rook) | p.board.PiecesOf(them, Queen)
	bishopLike := p.board.PiecesOf(them, Bishop) | p.board.PiecesOf(them, Queen)
	sliders := (RookAttacks(king, Empty) & rookLike) | (BishopAttacks(king, Empty) & bishopLike)
	for _, sq := range sliders.Squares() {
		line := Between(sq, king)
		if line == Empty && Ray(sq, king) == Empty {
			continue
		}
		between := line & occWithoutUs
		if between.Count() == 1 {
			if blockerSq, ok := between.SingleSquare(); ok && p.board.BySide(us).Contains(blockerSq) {
				ctx.blockers = ctx.blockers.With(blockerSq)
				ctx.pinnerOf[blockerSq] = sq
			}
		}
	}
	return ctx
}

// LegalMoves returns every legal move in the position.
//
// Grounded on goosemg/movegen.go's generateMovesFilteredInto, split into
// pseudo-legal per-piece generators plus a shared legality filter keyed
// off moveContext, as spec.md §4.G requires.
func (p Position) LegalMoves() []Move {
	ctx := p.context()
	var moves []Move
	if ctx.checkers.Count() >= 2 {
		p.genKingMoves(ctx, &moves)
		return moves
	}
	p.genPawnMoves(ctx, &moves)
	p.genPieceMoves(ctx, Knight, &moves)
	p.genPieceMoves(ctx, Bishop, &moves)
	p.genPieceMoves(ctx, Rook, &moves)
	p.genPieceMoves(ctx, Queen, &moves)
	p.genKingMoves(ctx, &moves)
	if ctx.checkers.IsEmpty() {
		p.genCastlingMoves(ctx, &moves)
	}
	return moves
}

// IsLegal reports whether m is a legal move in this position.
func (p Position) IsLegal(m Move) bool {
	for _, cand := range p.LegalMoves() {
		if SameMove(cand, m) {
			return true
		}
	}
	return false
}

// checkSquareMask returns the squares a non-king move must land on to
// resolve check: when in single check, the checker's square plus (for a
// sliding checker) the squares between it and the king; when not in
// check, Full (no restriction).
func checkSquareMask(ctx moveContext) SquareSet {
	if ctx.checkers.IsEmpty() {
		return Full
	}
	checkerSq, _ := ctx.checkers.First()
	mask := SquareSetOf(checkerSq)
	return mask | Between(checkerSq, ctx.kingSquare)
}

func (p Position) pinRestriction(ctx moveContext, from Square) SquareSet {
	if !ctx.blockers.Contains(from) {
		return Full
	}
	pinner := ctx.pinnerOf[from]
	return Ray(pinner, ctx.kingSquare)
}

func (p Position) genPieceMoves(ctx moveContext, role Role, out *[]Move) {
	checkMask := checkSquareMask(ctx)
	occ := p.board.Occupied()
	for _, from := range p.board.PiecesOf(ctx.us, role).Squares() {
		var attacks SquareSet
		switch role {
		case Knight:
			attacks = KnightAttacks(from)
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		}
		targets := attacks.Diff(p.board.BySide(ctx.us)).Intersect(checkMask).Intersect(p.pinRestriction(ctx, from))
		for _, to := range targets.Squares() {
			*out = append(*out, NormalMove{From: from, To: to, Promotion: RoleNone})
		}
	}
}

func (p Position) genKingMoves(ctx moveContext, out *[]Move) {
	from := ctx.kingSquare
	occWithoutKing := p.board.Occupied().Without(from)
	for _, to := range KingAttacks(from).Diff(p.board.BySide(ctx.us)).Squares() {
		if p.board.AttacksTo(to, ctx.them, occWithoutKing).Count() > 0 {
			continue
		}
		*out = append(*out, NormalMove{From: from, To: to, Promotion: RoleNone})
	}
}

var promotionRoles = [4]Role{Queen, Rook, Bishop, Knight}

func (p Position) genPawnMoves(ctx moveContext, out *[]Move) {
	checkMask := checkSquareMask(ctx)
	occ := p.board.Occupied()
	forward := 8
	startRank, promoRank := 1, 7
	if ctx.us == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}
	for _, from := range p.board.PiecesOf(ctx.us, Pawn).Squares() {
		pin := p.pinRestriction(ctx, from)

		oneSq := Square(int(from) + forward)
		if oneSq.Valid() && !occ.Contains(oneSq) {
			p.emitPawnAdvance(ctx, pin, checkMask, from, oneSq, promoRank, out)
			if from.Rank() == startRank {
				twoSq := Square(int(from) + 2*forward)
				if !occ.Contains(twoSq) && checkMask.Contains(twoSq) && pin.Contains(twoSq) {
					*out = append(*out, NormalMove{From: from, To: twoSq, Promotion: RoleNone})
				}
			}
		}

		for _, to := range PawnAttacks(ctx.us, from).Squares() {
			capture := p.board.BySide(ctx.them).Contains(to)
			isEp := to == p.epSquare && p.epSquare.Valid()
			if !capture && !isEp {
				continue
			}
			if isEp && !p.epDiscoveredCheckSafe(ctx, from, to) {
				continue
			}
			if isEp {
				capturedPawn := Square(int(to) - forward)
				if ctx.checkers.Count() > 0 && !(checkMask.Contains(to) || checkMask.Contains(capturedPawn)) {
					continue
				}
			} else if !checkMask.Contains(to) {
				continue
			}
			if !pin.Contains(to) {
				continue
			}
			p.emitPawnAdvance(ctx, pin, checkMask, from, to, promoRank, out)
		}
	}
}

func (p Position) emitPawnAdvance(ctx moveContext, pin, checkMask SquareSet, from, to Square, promoRank int, out *[]Move) {
	if !checkMask.Contains(to) {
		return
	}
	if !pin.Contains(to) {
		return
	}
	if to.Rank() == promoRank {
		for _, role := range promotionRoles {
			*out = append(*out, NormalMove{From: from, To: to, Promotion: role})
		}
		return
	}
	*out = append(*out, NormalMove{From: from, To: to, Promotion: RoleNone})
}

// epDiscoveredCheckSafe reports whether capturing en passant from->to
// leaves our own king unattacked, recomputing attacks on the king with the
// capturing pawn moved to `to` and the captured pawn removed from the
// occupancy. This catches a rank-aligned slider revealed by removing both
// pawns in the same move — the one discovered-check shape a pin mask
// keyed on a single piece cannot express.
//
// Grounded on spec.md §4.G's explicit en-passant discovered-check edge
// case; goosemg/makemove.go has no equivalent pre-check, relying instead
// on its generic legality filter after the fact (goosemg/movegen.go
// generateMovesFilteredInto applies computeCheckAndPins post-hoc for
// every move including en passant).
func (p Position) epDiscoveredCheckSafe(ctx moveContext, from, to Square) bool {
	forward := 8
	if ctx.us == Black {
		forward = -8
	}
	capturedPawn := Square(int(to) - forward)
	occ := p.board.Occupied().Without(from).Without(capturedPawn).With(to)
	return p.board.AttacksTo(ctx.kingSquare, ctx.them, occ).IsEmpty()
}

func (p Position) genCastlingMoves(ctx moveContext, out *[]Move) {
	for _, cs := range [2]CastlingSide{KingSide, QueenSide} {
		if !p.castles.Has(ctx.us, cs) {
			continue
		}
		rookFrom, _ := p.castles.RookOf(ctx.us, cs)
		kingFrom := ctx.kingSquare
		path := p.castles.PathOf(ctx.us, cs)
		if (path & p.board.Occupied()).Count() > 0 {
			continue
		}
		kingTo, _ := castleDestinations(ctx.us, cs)
		walk := span(kingFrom, kingTo).With(kingFrom)
		occWithoutCastlers := p.board.Occupied().Without(kingFrom).Without(rookFrom)
		safe := true
		for _, sq := range walk.Squares() {
			if p.board.AttacksTo(sq, ctx.them, occWithoutCastlers).Count() > 0 {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		*out = append(*out, NormalMove{From: kingFrom, To: rookFrom, Promotion: RoleNone})
	}
}

// playUnchecked applies m without any legality check, per spec.md §4.H.
// A castling move is encoded Shredder-style as the king capturing its own
// rook (From=king square, To=rook square); every other move is a
// plain from/to, optionally with Promotion set.
//
// Grounded on goosemg/makemove.go's MakeMove step ordering: remove mover,
// resolve en-passant capture, set/clear the en-passant square, clear
// castling rights touched by mover or captured piece, place the mover
// (promoted if applicable), bump half/fullmove counters, flip turn.
func (p Position) playUnchecked(m Move) Position {
	nm, ok := asNormalMove(m)
	if !ok {
		return p
	}
	np := p
	us, them := p.turn, p.turn.Opposite()
	piece, _ := p.board.PieceAt(nm.From)

	if castlingSide, isCastle := p.castlingSideOf(nm); isCastle {
		kingTo, rookTo := castleDestinations(us, castlingSide)
		board := p.board.RemovePieceAt(nm.From).RemovePieceAt(nm.To)
		board = board.SetPieceAt(kingTo, Piece{Side: us, Role: King})
		board = board.SetPieceAt(rookTo, Piece{Side: us, Role: Rook})
		np.board = board
		np.castles = p.castles.DiscardSide(us)
		np.epSquare = NoSquare
		np.halfmoves = p.halfmoves + 1
	} else {
		board := p.board
		capturedRole := board.RoleAt(nm.To)
		isEpCapture := piece.Role == Pawn && nm.To == p.epSquare && p.epSquare.Valid() && capturedRole == RoleNone
		if isEpCapture {
			forward := 8
			if us == Black {
				forward = -8
			}
			board = board.RemovePieceAt(Square(int(nm.To) - forward))
		}
		board = board.RemovePieceAt(nm.From)
		newPiece := piece
		if nm.Promotion != RoleNone {
			newPiece = Piece{Side: us, Role: nm.Promotion}
		}
		capturedAtTo := board.RoleAt(nm.To) != RoleNone
		board = board.SetPieceAt(nm.To, newPiece)
		np.board = board

		castles := p.castles
		if piece.Role == King {
			castles = castles.DiscardSide(us)
		}
		castles = castles.DiscardRookAt(nm.From).DiscardRookAt(nm.To)
		np.castles = castles

		if piece.Role == Pawn && absInt(int(nm.To)-int(nm.From)) == 16 {
			np.epSquare = Square((int(nm.From) + int(nm.To)) / 2)
		} else {
			np.epSquare = NoSquare
		}

		if piece.Role == Pawn || capturedAtTo || isEpCapture {
			np.halfmoves = 0
		} else {
			np.halfmoves = p.halfmoves + 1
		}
	}

	if us == Black {
		np.fullmoves = p.fullmoves + 1
	}
	np.turn = them
	return np
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// castlingSideOf reports whether m encodes a castling move (king capturing
// its own rook, the Shredder-style encoding this repo's move generator
// emits) and
// which side if so.
func (p Position) castlingSideOf(m NormalMove) (CastlingSide, bool) {
	piece, ok := p.board.PieceAt(m.From)
	if !ok || piece.Role != King {
		return 0, false
	}
	for _, cs := range [2]CastlingSide{KingSide, QueenSide} {
		if rookSq, has := p.castles.RookOf(piece.Side, cs); has && rookSq == m.To {
			return cs, true
		}
	}
	return 0, false
}

// Play validates m against LegalMoves and, if legal, returns the
// resulting Position. Otherwise it returns a *PlayError.
//
// Grounded on goosemg/compat.go's Apply, generalized from a panic on
// illegal input to a typed, caller-recoverable error, per spec.md §7.
func (p Position) Play(m Move) (Position, error) {
	if !p.IsLegal(m) {
		return Position{}, newPlayError(m, "not a legal move in this position")
	}
	return p.playUnchecked(m), nil
}

// IsCheck reports whether the side to move is in check.
func (p Position) IsCheck() bool {
	king, _ := p.board.KingOf(p.turn)
	return p.board.AttacksTo(king, p.turn.Opposite()).Count() > 0
}

// HasSomeLegalMoves reports whether the side to move has at least one
// legal move. It generates the full legal move list and tests its length.
func (p Position) HasSomeLegalMoves() bool {
	return len(p.LegalMoves()) > 0
}

// IsCheckmate reports whether the side to move is in check with no legal moves.
func (p Position) IsCheckmate() bool {
	return p.IsCheck() && !p.HasSomeLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has no legal moves.
func (p Position) IsStalemate() bool {
	return !p.IsCheck() && !p.HasSomeLegalMoves()
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate by any sequence of legal moves, per spec.md §4.J's
// decision procedure: K v K; K+minor v K; K+B v K+B with same-colored
// bishops (any count of same-side bishops on one color complex).
//
// Grounded directly on spec.md §4.J; the teacher has no equivalent
// predicate (its search relies on evaluation heuristics near the 50-move
// mark rather than a standalone draw-detection rule).
func (p Position) IsInsufficientMaterial() bool {
	for _, side := range [2]Side{White, Black} {
		if (p.board.PiecesOf(side, Pawn) | p.board.PiecesOf(side, Rook) | p.board.PiecesOf(side, Queen)).Count() > 0 {
			return false
		}
	}
	minorCount := func(side Side) int {
		return p.board.PiecesOf(side, Knight).Count() + p.board.PiecesOf(side, Bishop).Count()
	}
	wMinor, bMinor := minorCount(White), minorCount(Black)
	if wMinor == 0 && bMinor == 0 {
		return true
	}
	if wMinor+bMinor == 1 {
		return true
	}
	if wMinor == 1 && bMinor == 1 {
		wKnights := p.board.PiecesOf(White, Knight).Count()
		bKnights := p.board.PiecesOf(Black, Knight).Count()
		if wKnights == 0 && bKnights == 0 {
			wB, _ := p.board.PiecesOf(White, Bishop).First()
			bB, _ := p.board.PiecesOf(Black, Bishop).First()
			return LightSquares.Contains(wB) == LightSquares.Contains(bB)
		}
		return false
	}
	allBishopsSameColor := func(side Side) bool {
		bishops := p.board.PiecesOf(side, Bishop)
		if p.board.PiecesOf(side, Knight).Count() > 0 {
			return false
		}
		onLight := bishops & LightSquares
		onDark := bishops & DarkSquares
		return onLight.IsEmpty() || onDark.IsEmpty()
	}
	if wMinor == 0 && allBishopsSameColor(Black) {
		return true
	}
	if bMinor == 0 && allBishopsSameColor(White) {
		return true
	}
	return false
}

// Outcome is a terminal game result: a decisive winner, or a draw.
type Outcome struct {
	Winner    Side
	HasWinner bool
	IsDraw    bool
}

// Outcome reports the game's terminal result computed from this position
// alone, or (zero, false) if the game is not over.
func (p Position) Outcome() (Outcome, bool) {
	if p.IsCheckmate() {
		return Outcome{Winner: p.turn.Opposite(), HasWinner: true}, true
	}
	if p.IsStalemate() || p.IsInsufficientMaterial() {
		return Outcome{IsDraw: true}, true
	}
	return Outcome{}, false
}

// FEN renders the position as a FEN string, including the reduced en
// passant square (only when a legal en-passant capture is actually
// available, per spec.md §4.E's "only meaningful when an en passant
// capture exists" note).
func (p Position) FEN() string {
	setup := Setup{
		Board:           p.board,
		Turn:            p.turn,
		UnmovedRooks:    p.castles.UnmovedRooks(),
		EpSquare:        p.legalEpSquareForFEN(),
		Halfmoves:       p.halfmoves,
		Fullmoves:       p.fullmoves,
		RemainingChecks: p.remainingChecks,
	}
	return setup.FEN()
}

func (p Position) legalEpSquareForFEN() Square {
	if !p.epSquare.Valid() {
		return NoSquare
	}
	forward := -8
	if p.turn == Black {
		forward = 8
	}
	from := Square(int(p.epSquare) + forward)
	for _, sq := range []Square{from - 1, from + 1} {
		if !sq.Valid() || sq.File() == 0 && from.File() == 7 || sq.File() == 7 && from.File() == 0 {
			continue
		}
		if p.board.RoleAt(sq) == Pawn && p.board.ByPiece(Piece{Side: p.turn, Role: Pawn}).Contains(sq) {
			ctx := p.context()
			if p.epDiscoveredCheckSafe(ctx, sq, p.epSquare) {
				return p.epSquare
			}
		}
	}
	return NoSquare
}
