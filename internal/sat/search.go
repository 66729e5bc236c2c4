package sat

// Solve runs the CDCL search loop to completion and reports satisfiability.
// A non-nil error is always ErrArenaExhausted. On true, Model reports a
// satisfying assignment for every variable; the assignment is otherwise
// left in whatever partial state triggered the UNSAT verdict.
func (s *Solver) Solve() (bool, error) {
	decision := s.head

	for {
		oldLemmas := s.nLemmas

		ok, err := s.propagate()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		if s.nLemmas > oldLemmas {
			decision = s.head
			if s.fast > (s.slow/100)*125 {
				s.restarts++
				s.TotalRestarts++
				s.fast = (s.slow / 100) * 125
				s.restart()
				if s.nLemmas > s.maxLemmas {
					if err := s.reduceDB(s.opts.ReduceKeepThreshold); err != nil {
						return false, err
					}
				}
			}
		}

		decision = s.nextDecision(decision)
		if decision == 0 {
			return true, nil
		}

		lit := NegativeLiteral(decision)
		if s.model[decision] {
			lit = PositiveLiteral(decision)
		}
		s.assignDecision(lit)
		s.TotalDecisions++
	}
}
