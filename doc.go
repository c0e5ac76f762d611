// Package ddo provides a Go-native branch-and-bound solver for discrete
// optimization problems expressed as dynamic programs, built around
// Multi-valued Decision Diagrams (MDDs).
//
// # Overview
//
// Given a problem expressed as states, transitions, transition costs and a
// variable ordering, the solver searches for a decision sequence maximizing
// total reward. It scales to large state spaces by compiling, at each
// subproblem, two bounded-width MDD approximations:
//
//   - a restricted MDD (under-approximation) that yields a feasible
//     solution, tightening the global lower bound.
//   - a relaxed MDD (over-approximation) that yields an optimistic upper
//     bound and a cutset of frontier nodes from which the search continues.
//
// # Key Features
//
//   - Exact, restricted and relaxed MDD compilation behind one compiler
//   - Pluggable width, variable-ordering and node-ordering heuristics
//   - Context-aware solving with timeout and cancellation support
//   - Optional worker-parallel branch-and-bound driver
//   - Interface-based problem framework for domain flexibility
//
// # Basic Usage
//
// Applications implement Problem and Relaxation for their domain:
//
//	type MyProblem struct{ /* ... */ }
//
//	func (p MyProblem) NbVars() int                                    { return n }
//	func (p MyProblem) InitialState() ddo.State                        { return s0 }
//	func (p MyProblem) InitialValue() int                              { return 0 }
//	func (p MyProblem) AllVars() ddo.VarSet                            { return ddo.NewVarSet(n) }
//	func (p MyProblem) DomainOf(s ddo.State, v ddo.Variable) []int     { return []int{0, 1} }
//	func (p MyProblem) Transition(s ddo.State, vars ddo.VarSet, d ddo.Decision) ddo.State { return s2 }
//	func (p MyProblem) TransitionCost(s ddo.State, vars ddo.VarSet, d ddo.Decision) int   { return cost }
//	func (p MyProblem) ImpactOf(d ddo.Decision, vars ddo.VarSet) ddo.VarSet { return vars.Without(d.Variable) }
//	func (p MyProblem) EstimateUB(s ddo.State) int                     { return upperBoundOf(s) }
//
// Then drive the search:
//
//	solver := ddo.NewSolver(problem, relaxation, ddo.WithMaxWidth(ddo.FixedWidth(100)))
//	best, sol, reason := solver.Maximize(context.Background())
//
// # Performance Considerations
//
//   - Give State a cheap, collision-resistant Hash/Equal pair
//   - Pick a width heuristic proportional to available memory
//   - Order variables to keep the MDD narrow (problem-dependent)
package ddo
