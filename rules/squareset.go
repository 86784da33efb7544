package rules

import "math/bits"

// SquareSet is a 64-bit bitboard: bit i indicates square i in LERF order.
// It is a plain Go native uint64 (DESIGN NOTES: the source's BigInt-backed
// set is a host-language workaround that simply disappears here), so value
// equality is just `==`.
type SquareSet uint64

// Named constants, built once at init() the same way the teacher's attack
// tables are (goosemg/movegen.go init() -> initAttackTables/initRays/
// initSliderTables).
var (
	LightSquares SquareSet
	DarkSquares  SquareSet
	Diagonal     SquareSet // a1-h8
	AntiDiagonal SquareSet // h1-a8
	Corners      SquareSet
	Center       SquareSet
	BackRanks    SquareSet
)

const (
	// Empty is the bitboard with no squares set.
	Empty SquareSet = 0
	// Full is the bitboard with all 64 squares set.
	Full SquareSet = ^SquareSet(0)
)

func init() {
	for sq := Square(0); sq < 64; sq++ {
		if (sq.File()+sq.Rank())%2 == 1 {
			LightSquares = LightSquares.With(sq)
		} else {
			DarkSquares = DarkSquares.With(sq)
		}
		if sq.File() == sq.Rank() {
			Diagonal = Diagonal.With(sq)
		}
		if sq.File()+sq.Rank() == 7 {
			AntiDiagonal = AntiDiagonal.With(sq)
		}
	}
	Corners = SquareSetOf(NewSquare(0, 0), NewSquare(7, 0), NewSquare(0, 7), NewSquare(7, 7))
	Center = SquareSetOf(NewSquare(3, 3), NewSquare(4, 3), NewSquare(3, 4), NewSquare(4, 4))
	BackRanks = rankMask(0) | rankMask(7)
}

// SquareSetOf builds a SquareSet containing exactly the given squares.
func SquareSetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.With(sq)
	}
	return s
}

func rankMask(rank int) SquareSet {
	return SquareSet(0xFF) << uint(8*rank)
}

func fileMask(file int) SquareSet {
	return SquareSet(0x0101010101010101) << uint(file)
}

// Contains reports whether sq is a member of s.
func (s SquareSet) Contains(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	return s&(1<<uint(sq)) != 0
}

// With returns a new set with sq added.
func (s SquareSet) With(sq Square) SquareSet { return s | (1 << uint(sq)) }

// Without returns a new set with sq removed.
func (s SquareSet) Without(sq Square) SquareSet { return s &^ (1 << uint(sq)) }

// Toggle returns a new set with sq's membership flipped.
func (s SquareSet) Toggle(sq Square) SquareSet { return s ^ (1 << uint(sq)) }

// Union is set union (a | b).
func (s SquareSet) Union(o SquareSet) SquareSet { return s | o }

// Intersect is set intersection (a & b).
func (s SquareSet) Intersect(o SquareSet) SquareSet { return s & o }

// Diff is set difference: members of s not in o.
func (s SquareSet) Diff(o SquareSet) SquareSet { return s &^ o }

// Xor is symmetric difference.
func (s SquareSet) Xor(o SquareSet) SquareSet { return s ^ o }

// Not is the complement of s.
func (s SquareSet) Not() SquareSet { return ^s }

// IsEmpty reports whether s has no members.
func (s SquareSet) IsEmpty() bool { return s == 0 }

// Count returns the number of set squares.
func (s SquareSet) Count() int { return bits.OnesCount64(uint64(s)) }

// First returns the lowest-indexed member and true, or (NoSquare, false)
// if s is empty.
func (s SquareSet) First() (Square, bool) {
	if s == 0 {
		return NoSquare, false
	}
	return Square(bits.TrailingZeros64(uint64(s))), true
}

// Last returns the highest-indexed member and true, or (NoSquare, false)
// if s is empty.
func (s SquareSet) Last() (Square, bool) {
	if s == 0 {
		return NoSquare, false
	}
	return Square(63 - bits.LeadingZeros64(uint64(s))), true
}

// SingleSquare returns the sole member of s, or (NoSquare, false) if s is
// empty or has two or more members.
func (s SquareSet) SingleSquare() (Square, bool) {
	if s == 0 || (s&(s-1)) != 0 {
		return NoSquare, false
	}
	return s.First()
}

// popLSB clears and returns the least-significant member, for the
// ascending-iteration helpers below. Grounded on goosemg/board.go's popLSB.
func popLSB(s *SquareSet) Square {
	sq := Square(bits.TrailingZeros64(uint64(*s)))
	*s &= *s - 1
	return sq
}

// Squares returns the members of s in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Count())
	for s != 0 {
		out = append(out, popLSB(&s))
	}
	return out
}

// ReverseSquares returns the members of s in descending order.
func (s SquareSet) ReverseSquares() []Square {
	out := s.Squares()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shl shifts s left by n, saturating to Empty for n>=64 and returning s
// unchanged for n<=0.
func (s SquareSet) Shl(n int) SquareSet {
	if n <= 0 {
		return s
	}
	if n >= 64 {
		return Empty
	}
	return s << uint(n)
}

// Shr shifts s right by n, saturating to Empty for n>=64 and returning s
// unchanged for n<=0.
func (s SquareSet) Shr(n int) SquareSet {
	if n <= 0 {
		return s
	}
	if n >= 64 {
		return Empty
	}
	return s >> uint(n)
}

// FlipVertical mirrors the board top-to-bottom (rank 0<->7, 1<->6, ...).
func (s SquareSet) FlipVertical() SquareSet {
	return SquareSet(bits.ReverseBytes64(uint64(s)))
}

// MirrorHorizontal mirrors the board left-to-right (file a<->h, b<->g, ...).
func (s SquareSet) MirrorHorizontal() SquareSet {
	const (
		k1 = 0x5555555555555555
		k2 = 0x3333333333333333
		k4 = 0x0f0f0f0f0f0f0f0f
	)
	x := uint64(s)
	x = ((x >> 1) & k1) | ((x & k1) << 1)
	x = ((x >> 2) & k2) | ((x & k2) << 2)
	x = ((x >> 4) & k4) | ((x & k4) << 4)
	return SquareSet(x)
}
