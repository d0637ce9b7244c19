package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sortingnets/netcert/pkg/cnf"
)

// Status is the outcome of a solve, using the usual SAT convention.
type Status int

const (
	Unknown       Status = 0
	Satisfiable   Status = 1
	Unsatisfiable Status = -1
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	}
	return "UNKNOWN"
}

var (
	// ErrIncomplete is returned when the solver stopped without a verdict.
	ErrIncomplete = errors.New("cancelled before a solution could be found")
	// ErrProofUnsupported is returned by New when a proof is requested
	// from a strategy that cannot produce one.
	ErrProofUnsupported = errors.New("strategy cannot produce unsatisfiability proofs")
	// ErrNoModel is returned by Model unless the last solve was
	// satisfiable.
	ErrNoModel = errors.New("no model: last solve was not satisfiable")
	// ErrNoProof is returned by Proof unless the last solve was
	// unsatisfiable with proofs enabled.
	ErrNoProof = errors.New("no proof: last solve was not unsatisfiable or proofs were not requested")
)

// Solver decides formulas. A Solver is used by one goroutine at a time;
// independent runs should each create their own.
type Solver interface {
	// Solve decides f. Unknown is only returned together with an error.
	Solve(ctx context.Context, f *cnf.Formula) (Status, error)
	// Model returns the satisfying assignment of the last solve as
	// signed variable identifiers, one per variable of the formula.
	Model() ([]int, error)
	// Proof returns the unsatisfiability certificate of the last solve.
	Proof() ([]byte, error)
}

const (
	StrategyGini      = "gini"
	StrategyGophersat = "gophersat"
	StrategyCadical   = "cadical"
	StrategyKissat    = "kissat"
	StrategyExternal  = "external"
)

type config struct {
	strategy     string
	proof        bool
	command      string
	args         []string
	logger       logrus.FieldLogger
	tracer       Tracer
	pollInterval time.Duration
}

type constructor func(cfg *config) (Solver, error)

var strategies = map[string]constructor{
	StrategyGini:      newGini,
	StrategyGophersat: newGophersat,
	StrategyCadical:   newExternal,
	StrategyKissat:    newExternal,
	StrategyExternal:  newExternal,
}

// Strategies lists the strategy names New accepts.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a Solver for the configured strategy, gini by default.
func New(options ...Option) (Solver, error) {
	var cfg config
	for _, option := range append(append([]Option{}, options...), defaults...) {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}
	construct, ok := strategies[cfg.strategy]
	if !ok {
		return nil, fmt.Errorf("unknown solver strategy %q, expected one of %s", cfg.strategy, strings.Join(Strategies(), ", "))
	}
	return construct(&cfg)
}

type Option func(cfg *config) error

// WithStrategy selects the solving strategy by name.
func WithStrategy(name string) Option {
	return func(cfg *config) error {
		cfg.strategy = name
		return nil
	}
}

// WithProof asks for an unsatisfiability certificate.
func WithProof(proof bool) Option {
	return func(cfg *config) error {
		cfg.proof = proof
		return nil
	}
}

// WithCommand sets the binary, and any leading arguments, run by the
// external strategies. The formula file and proof file are appended.
func WithCommand(path string, args ...string) Option {
	return func(cfg *config) error {
		if path == "" {
			return errors.New("solver command must not be empty")
		}
		cfg.command = path
		cfg.args = args
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(cfg *config) error {
		cfg.tracer = t
		return nil
	}
}

// WithPollInterval sets how often an in-process solve checks whether
// its context was cancelled.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", d)
		}
		cfg.pollInterval = d
		return nil
	}
}

var defaults = []Option{
	func(cfg *config) error {
		if cfg.strategy == "" {
			cfg.strategy = StrategyGini
		}
		return nil
	},
	func(cfg *config) error {
		if cfg.logger == nil {
			logger := logrus.New()
			logger.SetLevel(logrus.PanicLevel)
			cfg.logger = logger
		}
		return nil
	},
	func(cfg *config) error {
		if cfg.tracer == nil {
			cfg.tracer = DefaultTracer{}
		}
		return nil
	},
	func(cfg *config) error {
		if cfg.pollInterval == 0 {
			cfg.pollInterval = 10 * time.Millisecond
		}
		return nil
	},
}

// signedModel converts per-variable values into signed identifiers.
// value(v) is consulted for v in 1..n.
func signedModel(n int, value func(v int) bool) []int {
	model := make([]int, n)
	for v := 1; v <= n; v++ {
		if value(v) {
			model[v-1] = v
		} else {
			model[v-1] = -v
		}
	}
	return model
}

// trace reports a finished solve to the tracer.
func trace(cfg *config, f *cnf.Formula, status Status, start time.Time) {
	cfg.tracer.Trace(Event{
		Strategy:  cfg.strategy,
		Status:    status,
		Variables: f.NumVars(),
		Clauses:   f.Len(),
		Elapsed:   time.Since(start),
	})
}
