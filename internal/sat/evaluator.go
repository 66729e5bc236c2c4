package sat

// evaluateClauses checks the clauses watching every literal pushed onto the
// trail since s.processed, the same way propagate does, but never learns:
// it reports false the instant it finds a clause falsified by the current
// (fully external) assignment, rather than resolving the conflict.
func (s *Solver) evaluateClauses() bool {
	for s.processed < len(s.falseStack) {
		lit := s.falseStack[s.processed]
		s.processed++

		cur := headCursor(lit)
		for {
			ref := s.peek(cur)
			if ref.isEnd() {
				break
			}

			h := ref.h
			lits := s.arena.literals(h)
			if lits[0] == lit {
				lits[0] = lits[1]
			}

			unit := true
			for i := 2; i < len(lits); i++ {
				if s.falseOf(lits[i]) == stateUnassigned {
					lits[1] = lits[i]
					lits[i] = lit
					s.unlink(cur, s.watchNext(ref))
					s.addWatch(lits[1], h, ref.slot)
					unit = false
					break
				}
			}
			if !unit {
				continue
			}

			lits[1] = lit
			cur = nodeCursor(ref)

			if s.falseOf(lits[0].Opposite()) != stateUnassigned || s.falseOf(lits[0]) == stateUnassigned {
				continue
			}
			return false
		}
	}
	return true
}

// allVariablesAssigned reports whether every variable has at least one of
// its two literals assigned (i.e. the formula is under a total
// assignment).
func (s *Solver) allVariablesAssigned() bool {
	count := 0
	for v := 1; v <= s.nVars; v++ {
		if s.falseOf(PositiveLiteral(v)) != stateUnassigned {
			count++
		}
		if s.falseOf(NegativeLiteral(v)) != stateUnassigned {
			count++
		}
	}
	return count == s.nVars
}

// EvaluateAssignment checks a candidate total (or partial) assignment,
// given in the order it should be asserted, against dead (forbidden)
// variables and the clause database. deadVars holds the negation of each
// forbidden literal (asserting it true forbids the corresponding literal),
// matching how the directive is parsed. It reports false as soon as an
// assignment contradicts a prior one, names a dead variable, or falsifies
// a clause.
func (s *Solver) EvaluateAssignment(assignments, deadVars []Literal) bool {
	for _, a := range assignments {
		if s.falseOf(a) != stateUnassigned {
			return false
		}
		for _, d := range deadVars {
			if d == a.Opposite() {
				return false
			}
		}
		s.assignBareLiteral(a, true)
		if !s.evaluateClauses() {
			return false
		}
	}
	return true
}

// EvaluateBuildability reports whether the current (possibly partial)
// assignment can still be extended to a full assignment without
// necessarily satisfying the formula: for every variable not yet fully
// decided, it tentatively asserts the phase-saved-false polarity and
// checks no clause is immediately falsified.
func (s *Solver) EvaluateBuildability() bool {
	if s.allVariablesAssigned() {
		return true
	}
	for v := 1; v <= s.nVars; v++ {
		if !s.model[v] && s.falseOf(PositiveLiteral(v)) == stateUnassigned {
			s.assignBareLiteral(NegativeLiteral(v), false)
			if !s.evaluateClauses() {
				return false
			}
		}
	}
	return true
}

// EvaluateDecisions forces every dead variable false, propagates, then
// asserts each given assignment (most recent first) that propagation
// hasn't already settled, propagating again after each. Dead variables and
// assignments are both asserted root-forced. It is the propagate-mode entry
// point: afterward, RootForcedLiterals reports every literal forced to true,
// directly or transitively, by the directives.
//
// A root-level conflict during any of these propagations is not reported
// here: propagate mode has no notion of an invalid assignment (that check
// belongs to EvaluateAssignment/status mode), so, matching the reference
// evaluator, the caller goes on to EvaluateBuildability, whose BUILDABLE or
// INCOMPLETE verdict is reported as is.
func (s *Solver) EvaluateDecisions(deadVars, assignments []Literal) error {
	for _, d := range deadVars {
		s.assignBareLiteral(d, true)
	}
	if _, err := s.propagate(); err != nil {
		return err
	}

	for i := len(assignments) - 1; i >= 0; i-- {
		a := assignments[i]
		var needsForce bool
		if a.IsPositive() {
			needsForce = !s.model[a.VarID()]
		} else {
			needsForce = s.falseOf(a) == stateUnassigned
		}
		if !needsForce {
			continue
		}
		s.assignBareLiteral(a, true)
		if _, err := s.propagate(); err != nil {
			return err
		}
	}
	return nil
}

// RootForcedLiterals returns every literal currently forced true at the
// root decision level, in ascending variable order: the stable "v" line
// contract of propagate mode.
func (s *Solver) RootForcedLiterals() []Literal {
	var out []Literal
	for v := 1; v <= s.nVars; v++ {
		switch {
		case s.model[v] && s.falseOf(NegativeLiteral(v)) == stateImplied:
			out = append(out, PositiveLiteral(v))
		case s.falseOf(PositiveLiteral(v)) == stateImplied:
			out = append(out, NegativeLiteral(v))
		}
	}
	return out
}
