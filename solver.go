package ddo

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Solver is the branch-and-bound driver that consumes the MDD compiler
// It maintains the global best lower bound, a priority
// fringe of subproblem roots, and iterates
// compile-restrict -> compile-relax -> split until the fringe empties or
// the bounds meet.
type Solver struct {
	problem Problem
	relax   Relaxation
	cfg     *Config

	BestLB   int
	BestUB   int
	BestNode *Node
	BestSol  []Decision
	Explored int
}

// NewSolver returns a driver for problem/relax configured by opts. Callers
// virtually always want WithMaxWidth at minimum; the zero-value default
// (FixedWidth(1)) makes every restriction/relaxation trivial.
func NewSolver(problem Problem, relax Relaxation, opts ...Option) *Solver {
	return &Solver{
		problem: problem,
		relax:   relax,
		cfg:     newConfig(opts...),
		BestLB:  minInt,
		BestUB:  maxInt,
	}
}

const (
	minInt = -1 << 62
	maxInt = 1<<62 - 1
)

// Maximize runs the branch-and-bound search to completion or until ctx is
// cancelled, the configured Timeout elapses, or MaxIterations subproblems
// have been explored. It returns the best value found, the decision
// sequence realizing it (nil if no feasible solution was found), and the
// Reason the search stopped.
func (s *Solver) Maximize(ctx context.Context) (int, []Decision, Reason) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	if s.cfg.Workers > 1 {
		return s.maximizeParallel(ctx)
	}
	return s.maximizeSequential(ctx)
}

// maximizeSequential is the single-threaded reference driver: no operation
// suspends and the loop itself is the sole scheduler. ctx is checked before
// every pop and, through the compiler, at every layer boundary.
func (s *Solver) maximizeSequential(ctx context.Context) (int, []Decision, Reason) {
	mdd := NewMDD(s.problem, s.relax, s.cfg)
	fringe := NewFringe(s.cfg.Ordering)
	fringe.Push(InitialRootNode(s.problem))

	reason := ReasonNone

	for fringe.Len() > 0 {
		if err := ctx.Err(); err != nil {
			reason = ReasonCutoffOccurred
			break
		}
		if s.cfg.MaxIterations > 0 && s.Explored >= s.cfg.MaxIterations {
			reason = ReasonCutoffOccurred
			break
		}

		node := fringe.Pop()

		if node.Info.UB < s.BestUB {
			s.BestUB = node.Info.UB
		}

		if s.BestLB >= s.BestUB {
			break
		}

		if node.Info.UB <= s.BestLB {
			continue
		}

		s.Explored++
		s.report(fringe.Len())

		restricted := mdd.Restricted(ctx, node, s.BestLB)
		if restricted.BestValue != nil && *restricted.BestValue > s.BestLB {
			s.BestLB = *restricted.BestValue
			s.BestNode = mdd.BestNode()
		}
		if mdd.IsExact() {
			continue
		}

		relaxed := mdd.Relaxed(ctx, node, s.BestLB)
		if mdd.IsExact() {
			if relaxed.BestValue != nil && *relaxed.BestValue > s.BestLB {
				s.BestLB = *relaxed.BestValue
				s.BestNode = mdd.BestNode()
			}
			continue
		}

		bestUB := s.BestUB
		bestLB := s.BestLB
		mdd.ConsumeCutset(func(state State, info *NodeInfo) {
			if info.UB > bestUB {
				info.UB = bestUB
			}
			if info.UB > bestLB {
				fringe.Push(&Node{State: state, Info: info})
			}
		})
	}

	if s.BestNode != nil {
		s.BestSol = s.BestNode.LongestPath()
	}

	s.summarize(reason)
	return s.BestLB, s.BestSol, reason
}

// maximizeParallel is the optional worker-parallel extension:
// Workers goroutines each compile restricted/relaxed MDDs for
// subproblems drawn from a shared, mutex-protected fringe. BestLB is
// updated under a monotonic-maximum rule so it never regresses; no worker
// ever derives a BestLB value from anything but an actually constructed
// feasible (restricted- or exact-MDD) solution.
func (s *Solver) maximizeParallel(ctx context.Context) (int, []Decision, Reason) {
	var mu sync.Mutex
	fringe := NewFringe(s.cfg.Ordering)
	fringe.Push(InitialRootNode(s.problem))

	reason := ReasonNone
	var wg sync.WaitGroup
	stop := make(chan struct{})
	var stopOnce sync.Once
	triggerStop := func() { stopOnce.Do(func() { close(stop) }) }

	worker := func() {
		defer wg.Done()
		mdd := NewMDD(s.problem, s.relax, s.cfg)
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				mu.Lock()
				reason = ReasonCutoffOccurred
				mu.Unlock()
				triggerStop()
				return
			default:
			}

			mu.Lock()
			if fringe.Len() == 0 {
				mu.Unlock()
				triggerStop()
				return
			}
			if s.cfg.MaxIterations > 0 && s.Explored >= s.cfg.MaxIterations {
				reason = ReasonCutoffOccurred
				mu.Unlock()
				triggerStop()
				return
			}
			node := fringe.Pop()
			if node.Info.UB < s.BestUB {
				s.BestUB = node.Info.UB
			}
			if s.BestLB >= s.BestUB {
				mu.Unlock()
				triggerStop()
				return
			}
			if node.Info.UB <= s.BestLB {
				mu.Unlock()
				continue
			}
			s.Explored++
			curLB := s.BestLB
			curUB := s.BestUB
			mu.Unlock()

			restricted := mdd.Restricted(ctx, node, curLB)
			if restricted.BestValue != nil {
				mu.Lock()
				if *restricted.BestValue > s.BestLB {
					s.BestLB = *restricted.BestValue
					s.BestNode = mdd.BestNode()
				}
				mu.Unlock()
			}
			if mdd.IsExact() {
				continue
			}

			mu.Lock()
			curLB = s.BestLB
			mu.Unlock()
			relaxed := mdd.Relaxed(ctx, node, curLB)
			if mdd.IsExact() {
				if relaxed.BestValue != nil {
					mu.Lock()
					if *relaxed.BestValue > s.BestLB {
						s.BestLB = *relaxed.BestValue
						s.BestNode = mdd.BestNode()
					}
					mu.Unlock()
				}
				continue
			}

			mu.Lock()
			curUB = s.BestUB
			curLB = s.BestLB
			mu.Unlock()
			var toPush []*Node
			mdd.ConsumeCutset(func(state State, info *NodeInfo) {
				if info.UB > curUB {
					info.UB = curUB
				}
				if info.UB > curLB {
					toPush = append(toPush, &Node{State: state, Info: info})
				}
			})
			mu.Lock()
			for _, n := range toPush {
				fringe.Push(n)
			}
			mu.Unlock()
		}
	}

	workers := s.cfg.Workers
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	wg.Wait()

	if s.BestNode != nil {
		s.BestSol = s.BestNode.LongestPath()
	}
	s.summarize(reason)
	return s.BestLB, s.BestSol, reason
}

func (s *Solver) report(fringeLen int) {
	if s.cfg.Verbosity >= 2 && s.Explored%s.cfg.VerbosityPeriod == 0 {
		fmt.Fprintf(os.Stderr, "explored %d, lb %d, ub %d, fringe %d\n",
			s.Explored, s.BestLB, s.BestUB, fringeLen)
	}
}

func (s *Solver) summarize(reason Reason) {
	if s.cfg.Verbosity >= 1 {
		fmt.Fprintf(os.Stderr, "final %d, explored %d, reason %s\n", s.BestLB, s.Explored, reason)
	}
}

