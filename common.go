package ddo

import "sort"

// Variable denotes a variable from the optimization problem at hand. Each
// variable is identified with an integer in [0, N) where N is the problem's
// variable count.
type Variable int

// ID returns the numeric value of the variable.
func (v Variable) ID() int { return int(v) }

// VarSet is a subset of {0, ..., N-1}, iterable in ascending order. An MDD
// layer index corresponds to the free variable chosen for that layer.
type VarSet struct {
	bits map[Variable]struct{}
}

// NewVarSet returns the full variable set {0, ..., n-1}.
func NewVarSet(n int) VarSet {
	bits := make(map[Variable]struct{}, n)
	for i := 0; i < n; i++ {
		bits[Variable(i)] = struct{}{}
	}
	return VarSet{bits: bits}
}

// EmptyVarSet returns the empty variable set.
func EmptyVarSet() VarSet {
	return VarSet{bits: make(map[Variable]struct{})}
}

// Contains reports whether v belongs to the set.
func (s VarSet) Contains(v Variable) bool {
	_, ok := s.bits[v]
	return ok
}

// Len returns the number of free variables in the set.
func (s VarSet) Len() int { return len(s.bits) }

// Without returns a copy of s with v removed. s itself is left untouched.
func (s VarSet) Without(v Variable) VarSet {
	out := make(map[Variable]struct{}, len(s.bits))
	for k := range s.bits {
		if k != v {
			out[k] = struct{}{}
		}
	}
	return VarSet{bits: out}
}

// Add returns a copy of s with v inserted.
func (s VarSet) Add(v Variable) VarSet {
	out := make(map[Variable]struct{}, len(s.bits)+1)
	for k := range s.bits {
		out[k] = struct{}{}
	}
	out[v] = struct{}{}
	return VarSet{bits: out}
}

// Vars returns the set's members in ascending order.
func (s VarSet) Vars() []Variable {
	out := make([]Variable, 0, len(s.bits))
	for v := range s.bits {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Decision pairs a variable with the value assigned to it along an MDD arc:
// `[[ variable = value ]]`.
type Decision struct {
	Variable Variable
	Value    int
}

// Reason explains why a solver run stopped before the fringe emptied.
type Reason int

const (
	// ReasonNone means the search ran to completion (fringe emptied or
	// best_lb >= best_ub): the result is proved optimal.
	ReasonNone Reason = iota
	// ReasonCutoffOccurred means an externally supplied cutoff signal
	// (context deadline/cancellation, or iteration budget) interrupted the
	// search: the result is a feasible solution with a known bound gap.
	ReasonCutoffOccurred
)

// String renders the reason for diagnostics.
func (r Reason) String() string {
	switch r {
	case ReasonCutoffOccurred:
		return "CutoffOccurred"
	default:
		return "None"
	}
}

// Completion is the outcome of developing an MDD: whether it is an exact
// account of the subproblem, and the best value found, if any.
type Completion struct {
	// IsExact is true iff the diagram is a lossless account of the
	// subproblem's state space (no restriction cull, no relaxation merge
	// occurred anywhere in it).
	IsExact bool
	// BestValue is the lp_len of the best terminal node, if the diagram
	// produced at least one terminal node.
	BestValue *int
}
