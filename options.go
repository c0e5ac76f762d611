package ddo

import "time"

// Config holds solver/compiler configuration parameters. All fields are
// exported to allow inspection after construction, using the functional
// options pattern common throughout this ecosystem.
type Config struct {
	// Width bounds the layer width used by restricted and relaxed
	// compilation. Defaults to FixedWidth(1) if never set — callers
	// virtually always want to override this.
	Width WidthHeuristic

	// VarHeuristic picks the next branching variable. Defaults to
	// NaturalOrder{}.
	VarHeuristic VariableHeuristic

	// Ordering ranks nodes for both layer trimming and fringe priority.
	// Defaults to MaxUB{}.
	Ordering NodeOrdering

	// LoadVars reconstructs a cutset node's free variable set. Defaults to
	// DefaultLoadVars{}.
	LoadVars LoadVars

	// Verbosity controls solver reporting: 0 silent, 1 summary at end, 2
	// periodic progress every VerbosityPeriod explorations.
	Verbosity int

	// VerbosityPeriod is the exploration count between progress reports
	// when Verbosity >= 2. Defaults to 100.
	VerbosityPeriod int

	// Timeout bounds the total duration of a Maximize call. A value of 0
	// means no timeout is enforced beyond the caller's context.
	Timeout time.Duration

	// Workers sets the number of goroutines used by the optional parallel
	// driver extension. A value <= 1 runs the sequential,
	// single-threaded driver.
	Workers int

	// MaxIterations bounds the number of subproblems explored (fringe pops
	// not pruned by the bounds, as counted in Solver.Explored) before the
	// driver raises ReasonCutoffOccurred. A value of 0 means unbounded.
	MaxIterations int
}

// Option configures a Config using the functional options pattern.
type Option func(*Config)

// WithMaxWidth sets the width heuristic used for restricted/relaxed
// compilation.
func WithMaxWidth(w WidthHeuristic) Option {
	return func(c *Config) { c.Width = w }
}

// WithVariableHeuristic overrides the default branching-variable choice.
func WithVariableHeuristic(v VariableHeuristic) Option {
	return func(c *Config) { c.VarHeuristic = v }
}

// WithNodeOrdering overrides the default node ranking used for trimming
// and fringe priority.
func WithNodeOrdering(o NodeOrdering) Option {
	return func(c *Config) { c.Ordering = o }
}

// WithLoadVars overrides the default free-variable reconstruction.
func WithLoadVars(lv LoadVars) Option {
	return func(c *Config) { c.LoadVars = lv }
}

// WithVerbosity sets the solver's reporting level: 0 silent, 1 summary at
// end, 2 periodic progress.
func WithVerbosity(level int) Option {
	return func(c *Config) { c.Verbosity = level }
}

// WithVerbosityPeriod sets how many explorations elapse between progress
// reports when verbosity is 2.
func WithVerbosityPeriod(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.VerbosityPeriod = n
		}
	}
}

// WithTimeout bounds the duration of a Maximize call. If d <= 0, no
// timeout is enforced (the context passed to Maximize still applies).
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithWorkers sets the number of goroutines used by the optional parallel
// branch-and-bound extension. workers <= 1 disables it.
func WithWorkers(workers int) Option {
	return func(c *Config) { c.Workers = workers }
}

// WithMaxIterations bounds the number of subproblems explored before
// Maximize raises ReasonCutoffOccurred.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// newConfig creates a configuration with sensible defaults and applies the
// given options in order.
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		Width:           FixedWidth(1),
		VarHeuristic:    NaturalOrder{},
		Ordering:        MaxUB{},
		LoadVars:        DefaultLoadVars{},
		Verbosity:       0,
		VerbosityPeriod: 100,
		Timeout:         0,
		Workers:         1,
		MaxIterations:   0,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
