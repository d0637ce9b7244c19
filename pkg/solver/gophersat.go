package solver

import (
	"context"
	"time"

	gophersat "github.com/crillab/gophersat/solver"

	"github.com/sortingnets/netcert/pkg/cnf"
)

// gophersatSolver runs the pure Go CDCL solver from gophersat. Its
// search cannot be interrupted, so ctx is only checked before starting.
type gophersatSolver struct {
	cfg    *config
	model  []bool
	n      int
	status Status
}

func newGophersat(cfg *config) (Solver, error) {
	if cfg.proof {
		return nil, ErrProofUnsupported
	}
	return &gophersatSolver{cfg: cfg}, nil
}

func (s *gophersatSolver) Solve(ctx context.Context, f *cnf.Formula) (Status, error) {
	start := time.Now()
	s.model, s.n, s.status = nil, f.NumVars(), Unknown
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	if f.HasEmptyClause() {
		s.status = Unsatisfiable
		trace(s.cfg, f, s.status, start)
		return s.status, nil
	}

	gs := gophersat.New(gophersat.ParseSlice(f.Slice()))
	switch gs.Solve() {
	case gophersat.Sat:
		s.status = Satisfiable
		s.model = gs.Model()
	case gophersat.Unsat:
		s.status = Unsatisfiable
	default:
		trace(s.cfg, f, Unknown, start)
		return Unknown, ErrIncomplete
	}
	s.cfg.logger.WithField("strategy", StrategyGophersat).Debugf("gophersat finished with %s", s.status)
	trace(s.cfg, f, s.status, start)
	return s.status, nil
}

func (s *gophersatSolver) Model() ([]int, error) {
	if s.status != Satisfiable {
		return nil, ErrNoModel
	}
	// Variables that occur in no clause are missing from gophersat's
	// model; any value will do for them.
	return signedModel(s.n, func(v int) bool {
		return v-1 < len(s.model) && s.model[v-1]
	}), nil
}

func (s *gophersatSolver) Proof() ([]byte, error) {
	return nil, ErrNoProof
}
