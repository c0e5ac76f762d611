package ddo

// LPArc is the incoming arc realizing a node's longest-path-so-far. Parent
// is a reference into a prior layer's NodeInfo, kept alive by shared
// ownership (a plain Go pointer) so the full path can be reconstructed after
// the layer that produced it is discarded.
type LPArc struct {
	Parent   *NodeInfo
	Decision Decision
}

// NodeInfo is the per-node bookkeeping carried along the diagram. It is
// always referenced through a pointer so that descendants can keep
// ancestors alive across layer boundaries without copying.
type NodeInfo struct {
	// LPLen is the length (sum of arc costs) of the longest root-to-node
	// path discovered so far.
	LPLen int
	// LPArc is the incoming arc realizing LPLen, or nil for the root.
	LPArc *LPArc
	// UB is an upper bound on the value of any completion through this
	// node. Never increases along a path.
	UB int
	// IsExact is true iff no ancestor on the longest path was produced by
	// a merge or survived a restriction cull.
	IsExact bool
}

// Node pairs a problem State with its NodeInfo.
type Node struct {
	State State
	Info  *NodeInfo
}

// LongestPath walks the LPArc chain back to the root, returning the
// decisions taken along the longest path in forward (root-to-node) order.
func (n *Node) LongestPath() []Decision {
	if n == nil || n.Info == nil {
		return nil
	}
	var reversed []Decision
	for info := n.Info; info != nil && info.LPArc != nil; info = info.LPArc.Parent {
		reversed = append(reversed, info.LPArc.Decision)
	}
	out := make([]Decision, len(reversed))
	for i, d := range reversed {
		out[len(reversed)-1-i] = d
	}
	return out
}

// bucket is a hash-collision chain within a Layer.
type bucket struct {
	nodes []*Node
}

// Layer is a mapping from State to NodeInfo for the current frontier of
// compilation: states are unique within a layer. Because
// States are supplied by the application as arbitrary (usually pointer-ish)
// values, uniqueness is enforced via Hash+Equal rather than Go map identity.
type Layer struct {
	buckets map[uint64]*bucket
	size    int
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{buckets: make(map[uint64]*bucket)}
}

// Lookup returns the node for state, if present.
func (l *Layer) Lookup(state State) (*Node, bool) {
	b, ok := l.buckets[state.Hash()]
	if !ok {
		return nil, false
	}
	for _, n := range b.nodes {
		if n.State.Equal(state) {
			return n, true
		}
	}
	return nil, false
}

// Put inserts node; putting the very same *Node again is a no-op. It
// panics with an *InvariantError if an insert would create a duplicate
// entry for a state already tracked under a different pointer identity
// (callers should always go through Lookup first and mutate in place; Put
// is for brand-new states only).
func (l *Layer) Put(node *Node) {
	h := node.State.Hash()
	b, ok := l.buckets[h]
	if !ok {
		b = &bucket{}
		l.buckets[h] = b
	}
	for i, n := range b.nodes {
		if n.State.Equal(node.State) {
			if n != node {
				invariantViolation("layer-uniqueness",
					"Put called for a state already present in the layer; use Lookup+Replace")
			}
			b.nodes[i] = node
			return
		}
	}
	b.nodes = append(b.nodes, node)
	l.size++
}

// Replace swaps the node stored for state with replacement, which must
// report Equal to state. Used when a better arc to the same state is found.
func (l *Layer) Replace(state State, replacement *Node) {
	b, ok := l.buckets[state.Hash()]
	if !ok {
		invariantViolation("layer-uniqueness", "Replace called for a state not present in the layer")
	}
	for i, n := range b.nodes {
		if n.State.Equal(state) {
			b.nodes[i] = replacement
			return
		}
	}
	invariantViolation("layer-uniqueness", "Replace called for a state not present in the layer")
}

// Delete removes the node for state from the layer, if present.
func (l *Layer) Delete(state State) {
	b, ok := l.buckets[state.Hash()]
	if !ok {
		return
	}
	for i, n := range b.nodes {
		if n.State.Equal(state) {
			b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
			l.size--
			return
		}
	}
}

// Len returns the number of distinct states in the layer.
func (l *Layer) Len() int { return l.size }

// Nodes returns the layer's nodes in unspecified order.
func (l *Layer) Nodes() []*Node {
	out := make([]*Node, 0, l.size)
	for _, b := range l.buckets {
		out = append(out, b.nodes...)
	}
	return out
}

// assertUnique panics if two distinct *Node values in the layer report
// Equal states — the core layer-uniqueness invariant. Used defensively by
// the compiler after each expansion step.
func (l *Layer) assertUnique() {
	for _, b := range l.buckets {
		for i := 0; i < len(b.nodes); i++ {
			for j := i + 1; j < len(b.nodes); j++ {
				if b.nodes[i].State.Equal(b.nodes[j].State) {
					invariantViolation("layer-uniqueness", "duplicate state within one layer")
				}
			}
		}
	}
}
