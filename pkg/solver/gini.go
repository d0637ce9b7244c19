package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/sortingnets/netcert/pkg/cnf"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

type giniSolver struct {
	cfg    *config
	g      *gini.Gini
	n      int
	status Status
}

func newGini(cfg *config) (Solver, error) {
	if cfg.proof {
		return nil, ErrProofUnsupported
	}
	return &giniSolver{cfg: cfg}, nil
}

// Solve loads f into a fresh gini instance and solves it in the
// background, stopping early if ctx is done.
func (s *giniSolver) Solve(ctx context.Context, f *cnf.Formula) (Status, error) {
	start := time.Now()
	s.g, s.n, s.status = nil, f.NumVars(), Unknown
	if f.HasEmptyClause() {
		s.status = Unsatisfiable
		trace(s.cfg, f, s.status, start)
		return s.status, nil
	}

	g := gini.NewV(f.NumVars())
	for _, c := range f.Clauses() {
		for _, m := range c {
			g.Add(z.Dimacs2Lit(m))
		}
		g.Add(z.LitNull)
	}

	run := g.GoSolve()
	ticker := time.NewTicker(s.cfg.pollInterval)
	defer ticker.Stop()
	result := 0
	for done := false; !done; {
		select {
		case <-ctx.Done():
			if result = run.Stop(); result == 0 {
				trace(s.cfg, f, Unknown, start)
				return Unknown, ctx.Err()
			}
			done = true
		case <-ticker.C:
			result, done = run.Test()
		}
	}

	s.g = g
	switch result {
	case satisfiable:
		s.status = Satisfiable
	case unsatisfiable:
		s.status = Unsatisfiable
	default:
		trace(s.cfg, f, Unknown, start)
		return Unknown, ErrIncomplete
	}
	s.cfg.logger.WithField("strategy", StrategyGini).Debugf("gini finished with %s", s.status)
	trace(s.cfg, f, s.status, start)
	return s.status, nil
}

func (s *giniSolver) Model() ([]int, error) {
	if s.status != Satisfiable {
		return nil, ErrNoModel
	}
	return signedModel(s.n, func(v int) bool {
		return s.g.Value(z.Var(v).Pos())
	}), nil
}

func (s *giniSolver) Proof() ([]byte, error) {
	return nil, ErrNoProof
}
