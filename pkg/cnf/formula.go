package cnf

import (
	"bufio"
	"fmt"
	"io"
)

// Clause is a disjunction of literals. A literal is a variable
// identifier, negated by sign.
type Clause []int

// Formula is a conjunction of clauses, built incrementally.
type Formula struct {
	clauses []Clause
	maxVar  int
}

// Add appends the clause made of lits. An empty call adds the empty
// clause, which makes the formula unsatisfiable.
func (f *Formula) Add(lits ...int) {
	c := make(Clause, len(lits))
	copy(c, lits)
	for _, m := range c {
		if m == 0 {
			panic("cnf: 0 is not a literal")
		}
		if v := abs(m); v > f.maxVar {
			f.maxVar = v
		}
	}
	f.clauses = append(f.clauses, c)
}

// DeclareVars makes sure the formula accounts for variables 1..n even if
// some of them appear in no clause.
func (f *Formula) DeclareVars(n int) {
	if n > f.maxVar {
		f.maxVar = n
	}
}

// Clauses returns the clauses added so far. The slice must not be
// modified.
func (f *Formula) Clauses() []Clause {
	return f.clauses
}

// Len returns the number of clauses.
func (f *Formula) Len() int {
	return len(f.clauses)
}

// NumVars returns the largest variable appearing in the formula.
func (f *Formula) NumVars() int {
	return f.maxVar
}

// HasEmptyClause reports whether the formula contains the empty clause.
func (f *Formula) HasEmptyClause() bool {
	for _, c := range f.clauses {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

// Slice returns the clauses as plain int slices.
func (f *Formula) Slice() [][]int {
	out := make([][]int, len(f.clauses))
	for i, c := range f.clauses {
		out[i] = []int(c)
	}
	return out
}

// Satisfied reports whether the assignment satisfies every clause.
// assignment[v] is the value of variable v; index 0 is unused.
func (f *Formula) Satisfied(assignment []bool) bool {
	for _, c := range f.clauses {
		ok := false
		for _, m := range c {
			if v := abs(m); v < len(assignment) && assignment[v] == (m > 0) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// WriteDIMACS writes the formula in DIMACS CNF format.
func (f *Formula) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", f.maxVar, len(f.clauses))
	for _, c := range f.clauses {
		for _, m := range c {
			fmt.Fprintf(bw, "%d ", m)
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func abs(m int) int {
	if m < 0 {
		return -m
	}
	return m
}
