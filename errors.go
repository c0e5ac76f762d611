package ddo

import (
	"errors"
	"fmt"
)

// Sentinel errors naming recoverable failure modes. No function of this
// package returns them. They can be wrapped with additional context using
// fmt.Errorf and unwrapped with errors.Is.
var (
	// ErrVariableMismatch indicates the problem's NbVars() does not agree
	// with the size of a VarSet handed to the compiler.
	ErrVariableMismatch = errors.New("variable count mismatch")

	// ErrEmptyDomain indicates DomainOf returned no feasible values for a
	// variable in a given state, collapsing that branch of the diagram.
	ErrEmptyDomain = errors.New("empty domain")

	// ErrNoRoot indicates a compilation was requested before a root node
	// was made available.
	ErrNoRoot = errors.New("no root node")

	// ErrEmptyMerge indicates Relaxation.MergeNodes was called with zero
	// nodes, which violates its contract.
	ErrEmptyMerge = errors.New("merge_nodes called with no nodes")
)

// InvariantError reports a violated engine invariant: a
// programming contract violation between the compiler and its Problem,
// Relaxation, or heuristic collaborators. These are fatal by design —
// continuing compilation after one of these would silently return a wrong
// answer.
type InvariantError struct {
	// Invariant names the violated invariant, e.g. "layer-uniqueness".
	Invariant string
	// Detail carries problem-specific context for diagnostics.
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ddo: invariant violated (%s): %s", e.Invariant, e.Detail)
}

func invariantViolation(invariant, format string, args ...interface{}) {
	panic(&InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)})
}
