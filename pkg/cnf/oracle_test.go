package cnf

// bruteSolve is a small DPLL procedure standing in for a real solver in
// tests. It returns a model as signed literals over variables 1..n.
// Branching on the lowest free variable decides the inputs first, after
// which unit propagation settles every gate, so the search is bounded by
// 2^channels.
func bruteSolve(f *Formula) ([]int, bool) {
	n := f.NumVars()
	assignment := make([]int8, n+1) // 0 unassigned, 1 true, -1 false
	if !dpll(f.Slice(), assignment) {
		return nil, false
	}
	model := make([]int, n)
	for v := 1; v <= n; v++ {
		if assignment[v] > 0 {
			model[v-1] = v
		} else {
			model[v-1] = -v
		}
	}
	return model, true
}

func value(assignment []int8, m int) int8 {
	if m > 0 {
		return assignment[m]
	}
	return -assignment[-m]
}

func dpll(clauses [][]int, assignment []int8) bool {
	var trail []int
	undo := func() {
		for _, v := range trail {
			assignment[v] = 0
		}
	}
	set := func(m int) {
		if m > 0 {
			assignment[m] = 1
			trail = append(trail, m)
		} else {
			assignment[-m] = -1
			trail = append(trail, -m)
		}
	}

	for {
		unit, branch := 0, 0
		for _, c := range clauses {
			satisfied, free, last := false, 0, 0
			for _, m := range c {
				switch value(assignment, m) {
				case 1:
					satisfied = true
				case 0:
					free++
					last = m
				}
				if satisfied {
					break
				}
			}
			if satisfied {
				continue
			}
			if free == 0 {
				undo()
				return false
			}
			if free == 1 {
				unit = last
				break
			}
			for _, m := range c {
				if value(assignment, m) == 0 && (branch == 0 || abs(m) < abs(branch)) {
					branch = m
				}
			}
		}
		if unit != 0 {
			set(unit)
			continue
		}
		if branch == 0 {
			return true
		}
		for _, m := range []int{branch, -branch} {
			set(m)
			if dpll(clauses, assignment) {
				return true
			}
			assignment[abs(m)] = 0
			trail = trail[:len(trail)-1]
		}
		undo()
		return false
	}
}
