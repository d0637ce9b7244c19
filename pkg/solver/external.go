package solver

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sortingnets/netcert/pkg/cnf"
)

// Exit codes of SAT competition solvers.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// ExternalError reports an external solver run that did not produce a
// verdict.
type ExternalError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalError) Error() string {
	msg := fmt.Sprintf("external solver %s failed", e.Command)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s with exit code %d", msg, e.ExitCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg = fmt.Sprintf("%s: %s", msg, s)
	}
	return msg
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// externalSolver runs a solver binary that reads DIMACS and answers in
// the SAT competition output format, optionally writing a DRAT proof to
// the file named after the formula.
type externalSolver struct {
	cfg    *config
	model  []int
	proof  []byte
	status Status
}

func newExternal(cfg *config) (Solver, error) {
	if cfg.command == "" {
		if cfg.strategy == StrategyExternal {
			return nil, errors.New("the external strategy needs a solver command")
		}
		cfg.command = cfg.strategy
	}
	return &externalSolver{cfg: cfg}, nil
}

func (s *externalSolver) Solve(ctx context.Context, f *cnf.Formula) (Status, error) {
	start := time.Now()
	s.model, s.proof, s.status = nil, nil, Unknown

	dir, err := ioutil.TempDir("", "netcert-")
	if err != nil {
		return Unknown, errors.Wrap(err, "creating solver work directory")
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "formula.cnf")
	if err := writeFormula(input, f); err != nil {
		return Unknown, err
	}
	args := append(append([]string{}, s.cfg.args...), input)
	proofPath := filepath.Join(dir, "proof.drat")
	if s.cfg.proof {
		args = append(args, proofPath)
	}

	log := s.cfg.logger.WithFields(logrus.Fields{
		"strategy": s.cfg.strategy,
		"command":  s.cfg.command,
	})
	log.Debugf("running %s %s", s.cfg.command, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.cfg.command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if ctx.Err() != nil {
		trace(s.cfg, f, Unknown, start)
		return Unknown, ctx.Err()
	}
	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return Unknown, &ExternalError{Command: s.cfg.command, Err: runErr}
		}
		code = exitErr.ExitCode()
		if code != exitSatisfiable && code != exitUnsatisfiable {
			return Unknown, &ExternalError{Command: s.cfg.command, ExitCode: code, Stderr: stderr.String()}
		}
	}

	out, err := parseOutput(stdout.String())
	if err != nil {
		return Unknown, &ExternalError{Command: s.cfg.command, ExitCode: code, Err: errors.Wrap(err, "parsing solver output")}
	}
	switch {
	case out.result == satisfiable && code != exitUnsatisfiable:
		s.status = Satisfiable
		s.model = out.complete(f.NumVars())
	case out.result == unsatisfiable && code != exitSatisfiable:
		s.status = Unsatisfiable
		if s.cfg.proof {
			if s.proof, err = ioutil.ReadFile(proofPath); err != nil {
				return Unknown, errors.Wrap(err, "reading proof")
			}
		}
	case out.result == 0 && code == 0:
		trace(s.cfg, f, Unknown, start)
		return Unknown, ErrIncomplete
	default:
		return Unknown, &ExternalError{Command: s.cfg.command, ExitCode: code, Err: errors.Errorf("solution line %d disagrees with exit code", out.result)}
	}
	log.Debugf("finished with %s", s.status)
	trace(s.cfg, f, s.status, start)
	return s.status, nil
}

func (s *externalSolver) Model() ([]int, error) {
	if s.status != Satisfiable {
		return nil, ErrNoModel
	}
	return s.model, nil
}

func (s *externalSolver) Proof() ([]byte, error) {
	if s.status != Unsatisfiable || !s.cfg.proof {
		return nil, ErrNoProof
	}
	return s.proof, nil
}

func writeFormula(path string, f *cnf.Formula) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating formula file")
	}
	if err := f.WriteDIMACS(file); err != nil {
		file.Close()
		return errors.Wrap(err, "writing formula file")
	}
	return errors.Wrap(file.Close(), "writing formula file")
}

// parseOutput reads solver output line by line. dimacs.ReadSolve keeps
// reading values across the newline that ends a "v" line, so it is only
// given one line at a time.
func parseOutput(output string) (*solveOutput, error) {
	out := &solveOutput{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == 'c' {
			continue
		}
		if err := dimacs.ReadSolve(strings.NewReader(line), out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// solveOutput collects the "s" and "v" lines of a solver's output.
type solveOutput struct {
	result int
	values map[int]bool
}

var _ dimacs.SolveVis = &solveOutput{}

func (o *solveOutput) Solution(r int) {
	o.result = r
}

func (o *solveOutput) Value(m z.Lit) {
	if m == z.LitNull {
		return
	}
	if o.values == nil {
		o.values = make(map[int]bool)
	}
	d := m.Dimacs()
	if d < 0 {
		o.values[-d] = false
	} else {
		o.values[d] = true
	}
}

func (o *solveOutput) Eof() {
}

// complete returns the model over variables 1..n. Solvers may omit
// variables whose value is irrelevant; those are reported false.
func (o *solveOutput) complete(n int) []int {
	return signedModel(n, func(v int) bool {
		return o.values[v]
	})
}
