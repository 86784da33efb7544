package rules

import "golang.org/x/exp/slices"

// Perft counts the number of leaf positions reachable from p by playing
// exactly depth plies of legal moves. It is this package's own
// correctness oracle (spec.md §8) and doubles as a regression benchmark.
//
// Grounded on goosemg/movegen.go's Perft/perftRec and cmd/perft/main.go,
// adapted from recursing over MakeMove/UnmakeMove undo pairs to recursing
// over playUnchecked's returned values (no undo needed: each recursive
// call gets its own Position by value).
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var total uint64
	for _, m := range moves {
		total += Perft(p.playUnchecked(m), depth-1)
	}
	return total
}

// PerftDivide returns, for each legal move in p, the perft count of the
// subtree it leads to at depth-1 plies further — the standard
// move-by-move breakdown used to localize a move generator bug.
//
// golang.org/x/exp/slices sorts the legal-move list into UCI-string order
// before the subtrees are counted. The result is a map, so it carries no
// order of its own; callers that print it sort the entries themselves, as
// cmd/perft/main.go does by move string.
func PerftDivide(p Position, depth int) map[Move]uint64 {
	moves := p.LegalMoves()
	slices.SortFunc(moves, func(a, b Move) bool {
		sa, _ := tryUCI(a)
		sb, _ := tryUCI(b)
		return sa < sb
	})
	out := make(map[Move]uint64, len(moves))
	for _, m := range moves {
		if depth <= 1 {
			out[m] = 1
			continue
		}
		out[m] = Perft(p.playUnchecked(m), depth-1)
	}
	return out
}
