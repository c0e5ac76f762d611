package ddo_test

import (
	"hash/fnv"

	ddo "github.com/zzenonn/go-ddo"
)

// selState is the state for selectState: how many items have been decided
// (idx) and how much of the shared budget remains.
type selState struct {
	idx       int
	remaining int
}

func (s *selState) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(s.idx), byte(s.remaining), byte(s.remaining >> 8)})
	return h.Sum64()
}

func (s *selState) Equal(o ddo.State) bool {
	other, ok := o.(*selState)
	return ok && other.idx == s.idx && other.remaining == s.remaining
}

// selectProblem picks at most budget items (weight 1 each) to maximize
// the sum of their rewards — a minimal capacitated selection DP used to
// exercise the compiler and driver without the extra bookkeeping a
// variable-weight knapsack needs.
type selectProblem struct {
	rewards []int
	budget  int
}

func (p *selectProblem) NbVars() int             { return len(p.rewards) }
func (p *selectProblem) InitialState() ddo.State { return &selState{idx: 0, remaining: p.budget} }
func (p *selectProblem) InitialValue() int       { return 0 }
func (p *selectProblem) AllVars() ddo.VarSet     { return ddo.NewVarSet(len(p.rewards)) }

func (p *selectProblem) DomainOf(state ddo.State, v ddo.Variable) []int {
	s := state.(*selState)
	if s.remaining > 0 {
		return []int{0, 1}
	}
	return []int{0}
}

func (p *selectProblem) Transition(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) ddo.State {
	s := state.(*selState)
	remaining := s.remaining
	if d.Value == 1 {
		remaining--
	}
	return &selState{idx: s.idx + 1, remaining: remaining}
}

func (p *selectProblem) TransitionCost(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) int {
	if d.Value == 1 {
		return p.rewards[d.Variable.ID()]
	}
	return 0
}

func (p *selectProblem) ImpactOf(d ddo.Decision, varsLeft ddo.VarSet) ddo.VarSet {
	return varsLeft.Without(d.Variable)
}

func (p *selectProblem) EstimateUB(state ddo.State) int {
	s := state.(*selState)
	sum := 0
	for i := s.idx; i < len(p.rewards); i++ {
		sum += p.rewards[i]
	}
	return sum
}

// selectRelax merges same-layer nodes into the one with the most
// remaining budget, keeping the best LPLen among the inputs: any
// completion reachable under a tighter budget remains reachable under a
// looser one, so this always dominates.
type selectRelax struct{}

func (selectRelax) MergeNodes(nodes []*ddo.Node) *ddo.Node {
	best := nodes[0]
	maxRemaining := best.State.(*selState).remaining
	for _, n := range nodes[1:] {
		if n.Info.LPLen > best.Info.LPLen {
			best = n
		}
		if r := n.State.(*selState).remaining; r > maxRemaining {
			maxRemaining = r
		}
	}
	merged := &selState{idx: best.State.(*selState).idx, remaining: maxRemaining}
	return &ddo.Node{
		State: merged,
		Info: &ddo.NodeInfo{
			LPLen:   best.Info.LPLen,
			LPArc:   best.Info.LPArc,
			UB:      best.Info.UB,
			IsExact: false,
		},
	}
}

// knapsackItem is one candidate good for testKnapsackProblem.
type knapsackItem struct {
	Value  int
	Weight int
}

// knapState is the 0/1 knapsack state: how many items decided and the
// capacity remaining.
type knapState struct {
	idx       int
	remaining int
}

func (s *knapState) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(s.idx), byte(s.remaining), byte(s.remaining >> 8), byte(s.remaining >> 16)})
	return h.Sum64()
}

func (s *knapState) Equal(o ddo.State) bool {
	other, ok := o.(*knapState)
	return ok && other.idx == s.idx && other.remaining == s.remaining
}

// testKnapsackProblem is the 0/1 knapsack with item-specific weights, used
// by the end-to-end solver scenarios.
type testKnapsackProblem struct {
	items    []knapsackItem
	capacity int
}

func (p *testKnapsackProblem) NbVars() int { return len(p.items) }
func (p *testKnapsackProblem) InitialState() ddo.State {
	return &knapState{idx: 0, remaining: p.capacity}
}
func (p *testKnapsackProblem) InitialValue() int   { return 0 }
func (p *testKnapsackProblem) AllVars() ddo.VarSet { return ddo.NewVarSet(len(p.items)) }

func (p *testKnapsackProblem) DomainOf(state ddo.State, v ddo.Variable) []int {
	s := state.(*knapState)
	if p.items[v.ID()].Weight <= s.remaining {
		return []int{0, 1}
	}
	return []int{0}
}

func (p *testKnapsackProblem) Transition(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) ddo.State {
	s := state.(*knapState)
	remaining := s.remaining
	if d.Value == 1 {
		remaining -= p.items[d.Variable.ID()].Weight
	}
	return &knapState{idx: s.idx + 1, remaining: remaining}
}

func (p *testKnapsackProblem) TransitionCost(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) int {
	if d.Value == 1 {
		return p.items[d.Variable.ID()].Value
	}
	return 0
}

func (p *testKnapsackProblem) ImpactOf(d ddo.Decision, varsLeft ddo.VarSet) ddo.VarSet {
	return varsLeft.Without(d.Variable)
}

func (p *testKnapsackProblem) EstimateUB(state ddo.State) int {
	s := state.(*knapState)
	sum := 0
	for i := s.idx; i < len(p.items); i++ {
		sum += p.items[i].Value
	}
	return sum
}

// testKnapsackRelax merges same-layer nodes into the one with the most
// remaining capacity, keeping the best LPLen among the inputs.
type testKnapsackRelax struct{}

func (testKnapsackRelax) MergeNodes(nodes []*ddo.Node) *ddo.Node {
	best := nodes[0]
	maxRemaining := best.State.(*knapState).remaining
	for _, n := range nodes[1:] {
		if n.Info.LPLen > best.Info.LPLen {
			best = n
		}
		if r := n.State.(*knapState).remaining; r > maxRemaining {
			maxRemaining = r
		}
	}
	merged := &knapState{idx: best.State.(*knapState).idx, remaining: maxRemaining}
	return &ddo.Node{
		State: merged,
		Info: &ddo.NodeInfo{
			LPLen:   best.Info.LPLen,
			LPArc:   best.Info.LPArc,
			UB:      best.Info.UB,
			IsExact: false,
		},
	}
}

// mcpGraph is a symmetric non-negative edge-weight matrix.
type mcpGraph struct {
	n          int
	weight     [][]int
	totalPrior []int
}

func newMcpGraph(weight [][]int) *mcpGraph {
	n := len(weight)
	totalPrior := make([]int, n)
	for v := 0; v < n; v++ {
		sum := 0
		for i := 0; i < v; i++ {
			sum += weight[i][v]
		}
		totalPrior[v] = sum
	}
	return &mcpGraph{n: n, weight: weight, totalPrior: totalPrior}
}

// mcpState holds, per remaining vertex, the weight of already-decided
// neighbors on side 1 minus the weight of those on side 0.
type mcpState struct {
	depth int
	benef []int
}

func (s *mcpState) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(s.depth)})
	for _, b := range s.benef {
		h.Write([]byte{byte(b), byte(b >> 8), byte(b >> 16), byte(b >> 24)})
	}
	return h.Sum64()
}

func (s *mcpState) Equal(o ddo.State) bool {
	other, ok := o.(*mcpState)
	if !ok || other.depth != s.depth || len(other.benef) != len(s.benef) {
		return false
	}
	for i, b := range s.benef {
		if other.benef[i] != b {
			return false
		}
	}
	return true
}

// testMcpProblem is a Max-Cut instance over mcpGraph, deciding vertices in
// natural order.
type testMcpProblem struct{ g *mcpGraph }

func (p *testMcpProblem) NbVars() int { return p.g.n }
func (p *testMcpProblem) InitialState() ddo.State {
	return &mcpState{depth: 0, benef: make([]int, p.g.n)}
}
func (p *testMcpProblem) InitialValue() int   { return 0 }
func (p *testMcpProblem) AllVars() ddo.VarSet { return ddo.NewVarSet(p.g.n) }

func (p *testMcpProblem) DomainOf(ddo.State, ddo.Variable) []int { return []int{0, 1} }

func (p *testMcpProblem) splitCost(s *mcpState, v ddo.Variable) (side0, side1 int) {
	total := p.g.totalPrior[v.ID()]
	b := s.benef[v.ID()]
	side1 = (total + b) / 2
	side0 = (total - b) / 2
	return
}

func (p *testMcpProblem) TransitionCost(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) int {
	s := state.(*mcpState)
	side0, side1 := p.splitCost(s, d.Variable)
	// Placing the vertex on side 1 cuts every already-decided neighbor that
	// chose side 0, and vice versa: the reward is the crossing weight, not
	// the same-side weight.
	if d.Value == 1 {
		return side0
	}
	return side1
}

func (p *testMcpProblem) Transition(state ddo.State, varsLeft ddo.VarSet, d ddo.Decision) ddo.State {
	s := state.(*mcpState)
	next := make([]int, len(s.benef))
	copy(next, s.benef)
	v := d.Variable.ID()
	for j := 0; j < p.g.n; j++ {
		if j == v {
			continue
		}
		w := p.g.weight[v][j]
		if w == 0 {
			continue
		}
		if d.Value == 1 {
			next[j] += w
		} else {
			next[j] -= w
		}
	}
	return &mcpState{depth: s.depth + 1, benef: next}
}

func (p *testMcpProblem) ImpactOf(d ddo.Decision, varsLeft ddo.VarSet) ddo.VarSet {
	return varsLeft.Without(d.Variable)
}

func (p *testMcpProblem) EstimateUB(state ddo.State) int {
	s := state.(*mcpState)
	ub := 0
	for j := s.depth; j < p.g.n; j++ {
		side0, side1 := p.splitCost(s, ddo.Variable(j))
		if side1 > side0 {
			ub += side1
		} else {
			ub += side0
		}
	}
	for j := s.depth; j < p.g.n; j++ {
		for k := j + 1; k < p.g.n; k++ {
			ub += p.g.weight[j][k]
		}
	}
	return ub
}

const (
	mcpSignPositive = 1
	mcpSignNegative = 2
)

// testMcpRelax merges nodes sharing a layer via the per-vertex sign-based
// substate merge: vertices where every input agrees on sign keep the
// smaller magnitude, vertices that disagree collapse to neutral.
type testMcpRelax struct{ g *mcpGraph }

func (r testMcpRelax) MergeNodes(nodes []*ddo.Node) *ddo.Node {
	merged := r.mergeStates(nodes)
	lp, via := r.relaxedCost(nodes, merged)
	return &ddo.Node{
		State: merged,
		Info: &ddo.NodeInfo{
			LPLen:   lp,
			LPArc:   via.Info.LPArc,
			UB:      via.Info.UB,
			IsExact: false,
		},
	}
}

func (r testMcpRelax) mergeStates(nodes []*ddo.Node) *mcpState {
	depth := nodes[0].State.(*mcpState).depth
	data := make([]int, r.g.n)
	for j := depth; j < r.g.n; j++ {
		data[j] = r.mergeSubstate(j, nodes)
	}
	return &mcpState{depth: depth, benef: data}
}

func (r testMcpRelax) mergeSubstate(j int, nodes []*ddo.Node) int {
	switch r.substateSigns(j, nodes) {
	case mcpSignPositive:
		min := nodes[0].State.(*mcpState).benef[j]
		for _, n := range nodes[1:] {
			if b := n.State.(*mcpState).benef[j]; b < min {
				min = b
			}
		}
		return min
	case mcpSignNegative:
		min := absInt(nodes[0].State.(*mcpState).benef[j])
		for _, n := range nodes[1:] {
			if b := absInt(n.State.(*mcpState).benef[j]); b < min {
				min = b
			}
		}
		return -min
	default:
		return 0
	}
}

func (r testMcpRelax) substateSigns(j int, nodes []*ddo.Node) int {
	signs := 0
	for _, n := range nodes {
		b := n.State.(*mcpState).benef[j]
		switch {
		case b < 0:
			signs |= mcpSignNegative
		case b > 0:
			signs |= mcpSignPositive
		}
		if signs == (mcpSignPositive | mcpSignNegative) {
			return signs
		}
	}
	return signs
}

func (r testMcpRelax) relaxedCost(nodes []*ddo.Node, merged *mcpState) (int, *ddo.Node) {
	costs := make([]int, len(nodes))
	for i, n := range nodes {
		costs[i] = n.Info.LPLen
	}
	for j := merged.depth; j < r.g.n; j++ {
		m := absInt(merged.benef[j])
		for i, n := range nodes {
			costs[i] += absInt(n.State.(*mcpState).benef[j]) - m
		}
	}
	best, longest := 0, costs[0]
	for i, c := range costs {
		if c > longest {
			best, longest = i, c
		}
	}
	return longest, nodes[best]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
