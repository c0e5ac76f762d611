package ddo

import "context"

// MDDType characterizes the kind of diagram a compilation produced: an
// exact account of the state space, an under-approximation (Restricted),
// or an over-approximation (Relaxed).
type MDDType int

const (
	Exact MDDType = iota
	Restricted
	Relaxed
)

func (t MDDType) String() string {
	switch t {
	case Exact:
		return "Exact"
	case Restricted:
		return "Restricted"
	case Relaxed:
		return "Relaxed"
	default:
		return "Unknown"
	}
}

type compileState int

const (
	stateFresh compileState = iota
	stateCompiling
	stateDone
)

// MDD is the layered-diagram compiler. It is reused across
// compilations: each call to Exact/Restricted/Relaxed resets it to Fresh
// and drops any unconsumed cutset from the previous run.
type MDD struct {
	problem Problem
	relax   Relaxation
	cfg     *Config

	mddType MDDType
	state   compileState

	root     *Node
	best     *Node
	isExact  bool
	cutset   []*Node
	lastErr  error
}

// NewMDD returns a compiler bound to the given problem, relaxation and
// configuration. The same *MDD can be reused for any number of
// compilations; it holds no state that must be recreated per subproblem.
func NewMDD(problem Problem, relax Relaxation, cfg *Config) *MDD {
	if cfg == nil {
		cfg = newConfig()
	}
	return &MDD{problem: problem, relax: relax, cfg: cfg}
}

// MDDTypeOf reports which kind of diagram the last compilation produced.
func (m *MDD) MDDTypeOf() MDDType { return m.mddType }

// RootOf returns the root node of the last compilation.
func (m *MDD) RootOf() *Node { return m.root }

// InitialRootNode builds the Node a branch-and-bound search should seed its
// fringe with: the problem's initial state, value and estimated bound.
func InitialRootNode(pb Problem) *Node {
	s0 := pb.InitialState()
	return &Node{
		State: s0,
		Info: &NodeInfo{
			LPLen:   pb.InitialValue(),
			LPArc:   nil,
			UB:      pb.EstimateUB(s0),
			IsExact: true,
		},
	}
}

// Exact develops root into a lossless account of its subproblem's state
// space: width is treated as unbounded.
func (m *MDD) Exact(ctx context.Context, root *Node, bestLB int) Completion {
	return m.compile(ctx, Exact, root, bestLB)
}

// Restricted develops root into a width-bounded under-approximation: a
// feasible (but not necessarily optimal) decision sequence, hence a valid
// lower bound.
func (m *MDD) Restricted(ctx context.Context, root *Node, bestLB int) Completion {
	return m.compile(ctx, Restricted, root, bestLB)
}

// Relaxed develops root into a width-bounded over-approximation built via
// node merging: an optimistic upper bound plus a cutset re-covering the
// subproblem's unexplored state space.
func (m *MDD) Relaxed(ctx context.Context, root *Node, bestLB int) Completion {
	return m.compile(ctx, Relaxed, root, bestLB)
}

// IsExact reports whether the last compilation produced a lossless
// diagram: no node was ever culled by restriction or merged by relaxation.
func (m *MDD) IsExact() bool { return m.isExact }

// BestValue returns the LPLen of the best terminal node of the last
// compilation, or 0 if compilation produced no terminal node.
func (m *MDD) BestValue() int {
	if m.best == nil {
		return 0
	}
	return m.best.Info.LPLen
}

// BestNode returns the terminal node with the longest associated path in
// the last compilation, or nil.
func (m *MDD) BestNode() *Node { return m.best }

// LongestPath returns the decisions along the longest root-to-best-terminal
// path of the last compilation.
func (m *MDD) LongestPath() []Decision {
	if m.best == nil {
		return nil
	}
	return m.best.LongestPath()
}

// ConsumeCutset performs a one-shot destructive iteration over the cutset
// of the last Relaxed compilation, invoking f(state, info) for each node
// exactly once in unspecified order. After it returns, the cutset is
// empty: calling ConsumeCutset again has no effect until another Relaxed
// compilation runs.
func (m *MDD) ConsumeCutset(f func(State, *NodeInfo)) {
	cutset := m.cutset
	m.cutset = nil
	for _, n := range cutset {
		f(n.State, n.Info)
	}
}

// LastErr returns any context error observed during the last compilation
// (non-nil only if the context check made at a layer boundary reported
// one, in which case the compilation stopped there).
func (m *MDD) LastErr() error { return m.lastErr }

// compile is the layer-by-layer construction algorithm shared by
// Exact/Restricted/Relaxed: expand, propagate bounds, prune
// by bestLB, and — for Restricted/Relaxed — enforce the width ceiling.
func (m *MDD) compile(ctx context.Context, mode MDDType, root *Node, bestLB int) Completion {
	m.state = stateCompiling
	m.mddType = mode
	m.root = root
	m.best = nil
	m.cutset = nil
	m.isExact = true
	m.lastErr = nil

	current := NewLayer()
	current.Put(root)

	freeVars := m.cfg.LoadVars.Variables(m.problem, root)

	for freeVars.Len() > 0 {
		if err := checkContext(ctx, m.problem); err != nil {
			m.lastErr = err
			m.isExact = false
			m.state = stateDone
			return Completion{IsExact: false}
		}

		v, ok := m.cfg.VarHeuristic.NextVar(m, freeVars)
		if !ok {
			break
		}

		next := m.expand(current, v, freeVars)
		m.pruneByLB(next, bestLB)

		if mode != Exact {
			w := m.cfg.Width.MaxWidth(m)
			if w < 1 {
				w = 1
			}
			if next.Len() > w {
				m.isExact = false
				switch mode {
				case Restricted:
					m.restrictLayer(next, w)
				case Relaxed:
					m.relaxLayer(next, w)
				}
			}
		}

		next.assertUnique()

		current = next
		freeVars = m.problem.ImpactOf(Decision{Variable: v, Value: 0}, freeVars)
	}

	m.best = bestOf(current.Nodes())
	m.state = stateDone
	return Completion{IsExact: m.isExact, BestValue: bestValuePtr(m.best)}
}

// expand builds the next layer from current by branching on v: every node
// in current tries every value in DomainOf(node.State, v); arcs landing on
// the same successor state are deduplicated in place, keeping the better
// LPLen and the AND of contributing arcs' exactness — the conservative
// exactness rule: a collapsed arc is exact only if every arc that fed it was.
func (m *MDD) expand(current *Layer, v Variable, varsLeft VarSet) *Layer {
	next := NewLayer()
	for _, n := range current.Nodes() {
		domain := m.problem.DomainOf(n.State, v)
		for _, val := range domain {
			d := Decision{Variable: v, Value: val}
			succ := m.problem.Transition(n.State, varsLeft, d)
			cost := m.problem.TransitionCost(n.State, varsLeft, d)
			candidateLP := n.Info.LPLen + cost
			// EstimateUB bounds only the reward still to come from succ;
			// add it to the path accumulated so far to get a total-path
			// bound, then clamp to the predecessor's own bound so UB never
			// increases along a path.
			candidateUB := min(n.Info.UB, candidateLP+m.problem.EstimateUB(succ))
			if candidateUB < candidateLP {
				candidateUB = candidateLP
			}

			if existing, ok := next.Lookup(succ); ok {
				existing.Info.IsExact = existing.Info.IsExact && n.Info.IsExact
				if candidateLP > existing.Info.LPLen {
					existing.Info.LPLen = candidateLP
					existing.Info.LPArc = &LPArc{Parent: n.Info, Decision: d}
				}
				if candidateUB > existing.Info.UB {
					existing.Info.UB = candidateUB
				}
				if existing.Info.UB < existing.Info.LPLen {
					existing.Info.UB = existing.Info.LPLen
				}
			} else {
				info := &NodeInfo{
					LPLen:   candidateLP,
					LPArc:   &LPArc{Parent: n.Info, Decision: d},
					UB:      candidateUB,
					IsExact: n.Info.IsExact,
				}
				next.Put(&Node{State: succ, Info: info})
			}
		}
	}
	return next
}

// pruneByLB discards nodes from layer whose UB cannot beat bestLB
// on this layer.
func (m *MDD) pruneByLB(layer *Layer, bestLB int) {
	for _, n := range layer.Nodes() {
		if n.Info.UB <= bestLB {
			layer.Delete(n.State)
		}
	}
}

// restrictLayer keeps only the top-W nodes by NodeOrdering, dropping the
// rest outright. Survivors keep their own
// IsExact bit; the diagram as a whole is what becomes non-exact.
func (m *MDD) restrictLayer(layer *Layer, w int) {
	nodes := layer.Nodes()
	SortDescending(nodes, m.cfg.Ordering)
	for _, dropped := range nodes[w:] {
		layer.Delete(dropped.State)
	}
}

// relaxLayer keeps the top-(W-1) nodes and folds the remainder into one
// merged representative via Relaxation.MergeNodes. Every displaced node
// still exact at the moment of displacement joins the frontier cutset: it
// has an exact path from the root and lies strictly past it (at least one
// variable already decided), so restarting search from it always makes
// progress — unlike snapshotting the whole last-exact layer, which
// degenerates to the root itself when the very first layer is the one
// that gets merged.
func (m *MDD) relaxLayer(layer *Layer, w int) {
	nodes := layer.Nodes()
	SortDescending(nodes, m.cfg.Ordering)

	displaced := nodes[w-1:]

	for _, n := range displaced {
		layer.Delete(n.State)
		if n.Info.IsExact {
			m.cutset = append(m.cutset, n)
		}
	}

	merged := m.relax.MergeNodes(displaced)
	merged.Info.IsExact = false
	for _, d := range displaced {
		if merged.Info.LPLen < d.Info.LPLen {
			invariantViolation("merge-monotonicity",
				"merged lp_len %d is less than contributor's %d", merged.Info.LPLen, d.Info.LPLen)
		}
	}

	if existing, ok := layer.Lookup(merged.State); ok {
		if merged.Info.LPLen > existing.Info.LPLen {
			existing.Info.LPLen = merged.Info.LPLen
			existing.Info.LPArc = merged.Info.LPArc
		}
		existing.Info.IsExact = false
		if merged.Info.UB > existing.Info.UB {
			existing.Info.UB = merged.Info.UB
		}
	} else {
		layer.Put(merged)
	}
}

// checkContext returns the problem's own cancellation signal if it
// implements ContextAwareProblem, else falls back to ctx.Err() directly.
func checkContext(ctx context.Context, pb Problem) error {
	if cap, ok := pb.(ContextAwareProblem); ok {
		return cap.CheckContext(ctx)
	}
	return ctx.Err()
}

func bestOf(nodes []*Node) *Node {
	var best *Node
	for _, n := range nodes {
		if best == nil {
			best = n
			continue
		}
		if n.Info.LPLen > best.Info.LPLen {
			best = n
		} else if n.Info.LPLen == best.Info.LPLen && n.Info.IsExact && !best.Info.IsExact {
			best = n
		}
	}
	return best
}

func bestValuePtr(n *Node) *int {
	if n == nil {
		return nil
	}
	v := n.Info.LPLen
	return &v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
