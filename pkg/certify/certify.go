package certify

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sortingnets/netcert/pkg/cnf"
	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/solver"
)

// Verdict tags a certification result.
type Verdict string

const (
	Good   Verdict = "good"
	NoGood Verdict = "no-good"
)

// Result of certifying one network. A Good result carries the solver's
// unsatisfiability proof when one was requested; a NoGood result carries
// an input the network leaves unsorted.
type Result struct {
	Verdict        Verdict       `json:"verdict"`
	Proof          []byte        `json:"proof,omitempty"`
	Counterexample []bool        `json:"counterexample,omitempty"`
	Channels       int           `json:"channels"`
	Variables      int           `json:"variables"`
	Clauses        int           `json:"clauses"`
	Elapsed        time.Duration `json:"elapsed"`
}

type Certifier interface {
	Certify(ctx context.Context, net network.Network) (*Result, error)
}

type config struct {
	solver        solver.Solver
	solverOptions []solver.Option
	encode        []cnf.EncodeOption
	allowGaps     bool
	logger        logrus.FieldLogger
	success       func(time.Duration)
	failure       func(time.Duration)
}

type Option func(cfg *config) error

// WithSolver certifies with s instead of a solver built per run. s is
// reused by every Certify call, so the Certifier must not be shared
// between goroutines.
func WithSolver(s solver.Solver) Option {
	return func(cfg *config) error {
		if s == nil {
			return errors.New("solver must not be nil")
		}
		cfg.solver = s
		return nil
	}
}

// WithSolverOptions configures the solver created for each run.
func WithSolverOptions(options ...solver.Option) Option {
	return func(cfg *config) error {
		cfg.solverOptions = append(cfg.solverOptions, options...)
		return nil
	}
}

// WithMerger certifies net as a merger of the runs [0, split) and
// [split, channels).
func WithMerger(split int) Option {
	return func(cfg *config) error {
		cfg.encode = append(cfg.encode, cnf.WithMerger(split))
		return nil
	}
}

func WithRunOrder(firstDescending, secondDescending bool) Option {
	return func(cfg *config) error {
		cfg.encode = append(cfg.encode, cnf.WithRunOrder(firstDescending, secondDescending))
		return nil
	}
}

// WithAllowGaps certifies networks that leave some channel below the
// highest one untouched, instead of failing with a ChannelGapError.
func WithAllowGaps() Option {
	return func(cfg *config) error {
		cfg.allowGaps = true
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

// WithMetricsEmitters reports the duration of every run to success when
// it ends in a verdict and to failure otherwise.
func WithMetricsEmitters(success, failure func(time.Duration)) Option {
	return func(cfg *config) error {
		if success == nil || failure == nil {
			return errors.New("metrics emitters must not be nil")
		}
		cfg.success = success
		cfg.failure = failure
		return nil
	}
}

var defaults = []Option{
	func(cfg *config) error {
		if cfg.logger == nil {
			logger := logrus.New()
			logger.SetLevel(logrus.PanicLevel)
			cfg.logger = logger
		}
		return nil
	},
}

type certifier struct {
	cfg config
}

var _ Certifier = &certifier{}

func New(options ...Option) (Certifier, error) {
	var cfg config
	for _, option := range append(append([]Option{}, options...), defaults...) {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.success != nil {
		return NewInstrumentedCertifier(&certifier{cfg: cfg}, cfg.success, cfg.failure), nil
	}
	return &certifier{cfg: cfg}, nil
}

// Certify decides whether net sorts every input of its channel count.
func Certify(ctx context.Context, net network.Network, options ...Option) (*Result, error) {
	c, err := New(options...)
	if err != nil {
		return nil, err
	}
	return c.Certify(ctx, net)
}

func (c *certifier) Certify(ctx context.Context, net network.Network) (*Result, error) {
	start := time.Now()
	log := c.cfg.logger.WithField("comparators", len(net))

	channels, err := network.Check(net)
	if err != nil {
		if !network.IsChannelGap(err) || !c.cfg.allowGaps {
			return nil, err
		}
		log.WithError(err).Warn("certifying over unused channels")
	}
	log = log.WithField("channels", channels)

	enc, err := cnf.Encode(net, channels, c.cfg.encode...)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Channels:  channels,
		Variables: enc.Formula.NumVars(),
		Clauses:   enc.Formula.Len(),
	}
	log = log.WithFields(logrus.Fields{
		"variables": result.Variables,
		"clauses":   result.Clauses,
	})
	log.Debug("encoded network")

	s := c.cfg.solver
	if s == nil {
		if s, err = solver.New(append([]solver.Option{solver.WithLogger(c.cfg.logger)}, c.cfg.solverOptions...)...); err != nil {
			return nil, err
		}
	}
	status, err := s.Solve(ctx, enc.Formula)
	if err != nil {
		return nil, errors.Wrap(err, "solving")
	}

	switch status {
	case solver.Unsatisfiable:
		result.Verdict = Good
		proof, err := s.Proof()
		if err != nil && err != solver.ErrNoProof {
			return nil, err
		}
		result.Proof = proof
	case solver.Satisfiable:
		model, err := s.Model()
		if err != nil {
			return nil, err
		}
		bits, err := enc.Counterexample(model)
		if err != nil {
			return nil, err
		}
		if net.Sorts(bits) {
			return nil, errors.Errorf("solver model %s is sorted by the network", network.FormatBits(bits))
		}
		result.Verdict = NoGood
		result.Counterexample = bits
	default:
		return nil, solver.ErrIncomplete
	}

	result.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"verdict": result.Verdict,
		"elapsed": result.Elapsed,
	}).Info("certified network")
	return result, nil
}
