package ddo

import "sort"

// WidthHeuristic determines the maximum allowed width of the next layer of
// a compiling diagram.
type WidthHeuristic interface {
	MaxWidth(dd *MDD) int
}

// VariableHeuristic determines the best variable to branch on next from the
// set of free vars. Returning ok=false terminates compilation — the
// diagram's current layer becomes terminal.
type VariableHeuristic interface {
	NextVar(dd *MDD, vars VarSet) (v Variable, ok bool)
}

// NodeOrdering defines a total order over nodes, used both to decide which
// nodes survive layer trimming (restriction/relaxation) and to prioritize
// the branch-and-bound fringe. Less(a, b) reports whether a
// ranks strictly ahead of b — i.e. a is kept/explored before b.
type NodeOrdering interface {
	Less(a, b *Node) bool
}

// LoadVars reconstructs the free variable set for a subproblem rooted at
// node. This is generally problem-specific because a node's
// State need not encode which variables remain; the engine's LPArc ancestry
// lets us offer a generic, correct default instead (DefaultLoadVars) that
// works for any problem.
type LoadVars interface {
	Variables(pb Problem, node *Node) VarSet
}

// FixedWidth is a WidthHeuristic that always returns the same width,
// regardless of layer index or diagram statistics.
type FixedWidth int

// MaxWidth implements WidthHeuristic.
func (w FixedWidth) MaxWidth(dd *MDD) int {
	if int(w) < 1 {
		return 1
	}
	return int(w)
}

// NaturalOrder is a VariableHeuristic that always branches on the
// lowest-indexed free variable.
type NaturalOrder struct{}

// NextVar implements VariableHeuristic.
func (NaturalOrder) NextVar(dd *MDD, vars VarSet) (Variable, bool) {
	all := vars.Vars()
	if len(all) == 0 {
		return 0, false
	}
	return all[0], true
}

// MaxUB is the conventional NodeOrdering: nodes rank by descending UB, ties
// broken by descending LPLen.
type MaxUB struct{}

// Less implements NodeOrdering.
func (MaxUB) Less(a, b *Node) bool {
	if a.Info.UB != b.Info.UB {
		return a.Info.UB > b.Info.UB
	}
	return a.Info.LPLen > b.Info.LPLen
}

// SortDescending sorts nodes in place so that the highest-ranked node (per
// ordering) comes first. It is the helper used by the compiler's
// restriction/relaxation trimming; the fringe calls ordering.Less directly.
func SortDescending(nodes []*Node, ordering NodeOrdering) {
	sort.SliceStable(nodes, func(i, j int) bool { return ordering.Less(nodes[i], nodes[j]) })
}

// DefaultLoadVars is a LoadVars implementation that reconstructs the free
// variable set of a node purely from its longest path: it subtracts every
// variable appearing in an LPArc decision along the path from the
// problem's full variable set. This is valid because each MDD layer
// branches on exactly one variable, so a node's longest path decides
// exactly the variables fixed so far, regardless of how State itself is
// shaped.
type DefaultLoadVars struct{}

// Variables implements LoadVars.
func (DefaultLoadVars) Variables(pb Problem, node *Node) VarSet {
	vars := pb.AllVars()
	for _, d := range node.LongestPath() {
		vars = vars.Without(d.Variable)
	}
	return vars
}
