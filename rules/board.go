package rules

import (
	"strconv"
	"strings"
)

// NoPiece marks an empty mailbox square.
var NoPiece = Piece{Side: White, Role: RoleNone}

// Board is nine SquareSets: occupied, one per side, and one per role.
// Invariants: white∪black == occupied, white∩black == ∅, the six role
// sets partition occupied, and exactly one piece type occupies each
// occupied square.
//
// Grounded on goosemg/board.go's Board (pawns/knights/.../occupancy
// [2]uint64 arrays plus a pieces [64]Piece mailbox), generalized from raw
// uint64 arrays to SquareSet and from a combined Piece byte to (Side,
// Role). Every mutator returns a new Board value instead of mutating in
// place (goosemg's addPiece/removePiece/SetPiece all mutate *Board).
type Board struct {
	occupied SquareSet
	bySide   [2]SquareSet
	byRole   [7]SquareSet // indexed by Role; byRole[RoleNone] unused
	pieces   [64]Piece
}

// EmptyBoard is the Board with no pieces on it.
var EmptyBoard = Board{pieces: [64]Piece{
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
	NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece, NoPiece,
}}

// Occupied returns the set of all occupied squares.
func (b Board) Occupied() SquareSet { return b.occupied }

// BySide returns the set of squares occupied by side's pieces.
func (b Board) BySide(side Side) SquareSet { return b.bySide[side] }

// ByRole returns the set of squares occupied by the given role, any side.
func (b Board) ByRole(role Role) SquareSet { return b.byRole[role] }

// ByPiece returns the set of squares occupied by exactly this (side, role).
func (b Board) ByPiece(p Piece) SquareSet { return b.bySide[p.Side] & b.byRole[p.Role] }

// PiecesOf is an alias of ByPiece for (side, role) queries.
func (b Board) PiecesOf(side Side, role Role) SquareSet { return b.ByPiece(Piece{Side: side, Role: role}) }

// PieceAt returns the piece on sq, or (NoPiece, false) if sq is empty.
func (b Board) PieceAt(sq Square) (Piece, bool) {
	p := b.pieces[sq]
	if p.Role == RoleNone {
		return NoPiece, false
	}
	return p, true
}

// RoleAt returns the role occupying sq, or RoleNone if empty.
func (b Board) RoleAt(sq Square) Role { return b.pieces[sq].Role }

// SideAt returns the side occupying sq, or (White, false) if empty.
func (b Board) SideAt(sq Square) (Side, bool) {
	p := b.pieces[sq]
	if p.Role == RoleNone {
		return White, false
	}
	return p.Side, true
}

// KingOf returns the square of side's king, or (NoSquare, false) if absent.
func (b Board) KingOf(side Side) (Square, bool) {
	return b.PiecesOf(side, King).First()
}

// MaterialCount returns the count of each role side has on the board.
func (b Board) MaterialCount(side Side) map[Role]int {
	counts := make(map[Role]int, 6)
	for _, r := range allRoles {
		counts[r] = b.PiecesOf(side, r).Count()
	}
	return counts
}

// SetPieceAt returns a new Board with p placed on sq, replacing anything
// that was there.
func (b Board) SetPieceAt(sq Square, p Piece) Board {
	nb := b.RemovePieceAt(sq)
	nb.pieces[sq] = p
	bit := SquareSet(1) << uint(sq)
	nb.occupied |= bit
	nb.bySide[p.Side] |= bit
	nb.byRole[p.Role] |= bit
	return nb
}

// RemovePieceAt returns a new Board with sq cleared.
func (b Board) RemovePieceAt(sq Square) Board {
	nb := b
	old := nb.pieces[sq]
	if old.Role == RoleNone {
		return nb
	}
	bit := SquareSet(1) << uint(sq)
	mask := ^bit
	nb.pieces[sq] = NoPiece
	nb.occupied &= mask
	nb.bySide[old.Side] &= mask
	nb.byRole[old.Role] &= mask
	return nb
}

// AttacksTo returns the set of attacker's pieces that attack sq, computed
// against the given occupancy, defaulting to b.Occupied() when occ is
// omitted. This caller-supplied-occupancy shape is what castling-path
// safety and en-passant discovered-check detection both need.
//
// Grounded on goosemg/movegen.go's isSquareAttackedWithOcc/
// IsSquareAttacked, generalized from a boolean "is attacked" predicate to
// the full attacking set (Position needs the set, e.g. to test "exactly
// one checker").
func (b Board) AttacksTo(sq Square, attacker Side, occ ...SquareSet) SquareSet {
	o := b.occupied
	if len(occ) > 0 {
		o = occ[0]
	}
	var attackers SquareSet
	attackers |= KnightAttacks(sq) & b.PiecesOf(attacker, Knight)
	attackers |= KingAttacks(sq) & b.PiecesOf(attacker, King)
	// A pawn on 'p' attacks 'sq' iff sq is among the squares a pawn of
	// 'attacker' standing on 'p' would attack, i.e. sq is an attack
	// target of the *opposite* side's pawn-attack table rooted at sq.
	attackers |= PawnAttacks(attacker.Opposite(), sq) & b.PiecesOf(attacker, Pawn)
	attackers |= BishopAttacks(sq, o) & (b.PiecesOf(attacker, Bishop) | b.PiecesOf(attacker, Queen))
	attackers |= RookAttacks(sq, o) & (b.PiecesOf(attacker, Rook) | b.PiecesOf(attacker, Queen))
	return attackers
}

// ParseBoardFEN parses the piece-placement field of a FEN string.
// Grounded on goosemg/fen.go's ParseFEN rank/file loop, generalized to
// return a typed *FenError instead of errors.New.
func ParseBoardFEN(field string) (Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return Board{}, newFenError(ErrBoard, "expected 8 ranks, got "+strconv.Itoa(len(ranks)))
	}
	board := EmptyBoard
	for i, rankStr := range ranks {
		if rankStr == "" {
			return Board{}, newFenError(ErrBoard, "empty rank description")
		}
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := pieceFromFenChar(ch)
			if !ok {
				return Board{}, newFenError(ErrBoard, "unrecognized piece character '"+string(ch)+"'")
			}
			if file >= 8 {
				return Board{}, newFenError(ErrBoard, "too many squares in rank")
			}
			board = board.SetPieceAt(NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return Board{}, newFenError(ErrBoard, "rank does not have 8 columns")
		}
	}
	return board, nil
}

// FEN renders the piece-placement field of the board.
func (b Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			p, ok := b.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.fenChar())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
