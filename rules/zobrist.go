package rules

import "math/rand"

// Zobrist tables, seeded deterministically so Hash is reproducible across
// runs and processes, exactly as the teacher seeds its own tables.
//
// Grounded on goosemg/zobrist.go's package-level rand.New(rand.NewSource(seed))
// table construction, adapted from an incrementally-updated running hash
// (XORed in/out on every MakeMove/UnmakeMove) to a pure function computed
// fresh from an immutable Position — this repo has no mutable state to
// incrementally update.
var (
	zobristPieceSquare [2][7][64]uint64
	zobristTurn        uint64
	zobristCastling    [64]uint64 // indexed by rook-origin square
	zobristEpFile      [8]uint64
)

func init() {
	const seed = 0x5EED // arbitrary, fixed for reproducibility
	r := rand.New(rand.NewSource(seed))
	for side := 0; side < 2; side++ {
		for role := Pawn; role <= King; role++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieceSquare[side][role][sq] = r.Uint64()
			}
		}
	}
	zobristTurn = r.Uint64()
	for sq := 0; sq < 64; sq++ {
		zobristCastling[sq] = r.Uint64()
	}
	for file := 0; file < 8; file++ {
		zobristEpFile[file] = r.Uint64()
	}
}

// Hash computes a Zobrist hash of p: board contents, side to move,
// castling rights, and en passant file. Not consulted by Outcome or any
// move-generation path — pure position-identity infrastructure for a
// caller's own transposition table or repetition bookkeeping, exactly the
// role it serves for the teacher's search code.
func (p Position) Hash() uint64 {
	var h uint64
	for _, sq := range p.board.Occupied().Squares() {
		piece, _ := p.board.PieceAt(sq)
		h ^= zobristPieceSquare[piece.Side][piece.Role][sq]
	}
	if p.turn == Black {
		h ^= zobristTurn
	}
	for _, sq := range p.castles.UnmovedRooks().Squares() {
		h ^= zobristCastling[sq]
	}
	if p.epSquare.Valid() {
		h ^= zobristEpFile[p.epSquare.File()]
	}
	return h
}
