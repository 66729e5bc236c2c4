package sat

// impliedMemo reports the memoized result of a previous implied() call on
// lit, if any. The two memoized states (stateImpliedNot, stateImplied) both
// compare greater than stateMark, which is how a single comparison tells a
// "being analyzed right now" MARK from a settled minimization result.
func (s *Solver) impliedMemo(lit Literal) (value bool, ok bool) {
	st := s.falseOf(lit)
	if st > stateMark {
		return st == stateImplied, true
	}
	return false, false
}

// impliedFrame is one suspended call in the explicit work stack that
// replaces implied's natural recursion: lits is the reason clause of lit
// with its asserted literal already skipped, and idx is the next antecedent
// to examine when this frame is resumed.
type impliedFrame struct {
	lit  Literal
	lits []Literal
	idx  int
}

// implied reports whether lit is implied by the literals already MARKed
// during the current conflict analysis: true when every antecedent in
// lit's reason clause is itself either MARKed or (recursively) implied.
// The result is memoized in falseState (stateImplied / stateImpliedNot) so
// a literal's reason chain is walked at most once per analyze call.
//
// A decision (or currently-unassigned) literal is trivially not implied
// and, matching the reference check, is never memoized: only literals with
// a reason clause get a lasting IMPLIED/IMPLIED-1 verdict.
//
// The recursive "is p implied" check from the reference algorithm is
// replaced here by an explicit stack of impliedFrame values, so resolving
// a long reason chain never grows the Go call stack.
func (s *Solver) implied(lit Literal) bool {
	if v, ok := s.impliedMemo(lit); ok {
		return v
	}
	if !s.hasReason(lit.VarID()) {
		return false
	}

	stack := []impliedFrame{{lit: lit, lits: s.arena.literals(s.reasonHandle(lit.VarID()))[1:]}}

	// haveChild/childImplied carry the verdict of a just-popped frame back
	// to the parent that pushed it, before the parent resumes its scan.
	haveChild := false
	childImplied := false

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if haveChild {
			haveChild = false
			if !childImplied {
				s.setFalseOf(top.lit, stateImpliedNot)
				stack = stack[:len(stack)-1]
				haveChild, childImplied = true, false
				continue
			}
		}

		failed := false
		pushedChild := false
		for top.idx < len(top.lits) {
			p := top.lits[top.idx]
			top.idx++
			if s.falseOf(p) == stateMark {
				continue
			}
			if v, ok := s.impliedMemo(p); ok {
				if v {
					continue
				}
				failed = true
				break
			}
			if !s.hasReason(p.VarID()) {
				failed = true
				break
			}
			stack = append(stack, impliedFrame{lit: p, lits: s.arena.literals(s.reasonHandle(p.VarID()))[1:]})
			pushedChild = true
			break
		}
		if pushedChild {
			continue
		}

		if failed {
			s.setFalseOf(top.lit, stateImpliedNot)
		} else {
			s.setFalseOf(top.lit, stateImplied)
		}
		stack = stack[:len(stack)-1]
		haveChild, childImplied = true, !failed
	}

	return s.falseOf(lit) == stateImplied
}

// analyze resolves the falsified clause `conflict` into a learnt clause via
// first-UIP resolution: it walks the trail from the top, MARKing and
// resolving away every literal above the first unique implication point of
// the current decision level, minimizes the result by dropping literals
// already implied by the rest of the clause, updates the fast/slow LBD
// moving averages that drive restart scheduling, backjumps the trail to
// the learnt clause's asserting level, and adds the clause to the arena.
func (s *Solver) analyze(conflict Handle) (Handle, error) {
	s.nConflicts++
	s.TotalConflicts++

	for _, l := range s.arena.literals(conflict) {
		s.bump(l)
	}

	i := len(s.falseStack)
	for {
		i--
		if !s.hasReason(s.falseStack[i].VarID()) {
			break
		}
		if s.falseOf(s.falseStack[i]) == stateMark {
			check := i
			isUIP := false
			for {
				check--
				if s.falseOf(s.falseStack[check]) == stateMark {
					break
				}
				if !s.hasReason(s.falseStack[check].VarID()) {
					isUIP = true
					break
				}
			}
			if isUIP {
				break
			}
			for _, l := range s.arena.literals(s.reasonHandle(s.falseStack[i].VarID()))[1:] {
				s.bump(l)
			}
		}
		s.unassign(s.falseStack[i])
		s.falseStack = s.falseStack[:i]
	}

	lbd := 0
	flag := 0
	buf := s.buffer[:0]
	processedIdx := i

	for p := i; p >= s.forced; p-- {
		lit := s.falseStack[p]
		if s.falseOf(lit) == stateMark && !s.implied(lit) {
			buf = append(buf, lit)
			flag = 1
		}
		if !s.hasReason(lit.VarID()) {
			lbd += flag
			flag = 0
			if len(buf) == 1 {
				processedIdx = p
			}
		}
		s.setFalseOf(lit, stateFalse)
	}
	s.buffer = buf

	s.fast -= s.fast >> 5
	s.fast += lbd << 15
	s.slow -= s.slow >> 15
	s.slow += lbd << 5

	for len(s.falseStack) > processedIdx {
		top := len(s.falseStack) - 1
		s.unassign(s.falseStack[top])
		s.falseStack = s.falseStack[:top]
	}
	s.processed = processedIdx

	return s.addLemma(buf)
}
