package sat

// bump moves lit's variable to the front of the VMTF decision list and
// marks lit as involved in the clause currently being analyzed. Root-forced
// (stateImplied) literals are never marked and never moved: they are
// already decided for the remainder of the search, so bumping them buys
// nothing and would only disturb a heuristic that otherwise converges on
// recently-conflicting variables.
func (s *Solver) bump(lit Literal) {
	if s.falseOf(lit) == stateImplied {
		return
	}
	s.setFalseOf(lit, stateMark)

	v := lit.VarID()
	if v == s.head {
		return
	}
	s.prev[s.next[v]] = s.prev[v]
	s.next[s.prev[v]] = s.next[v]
	s.next[s.head] = v
	s.prev[v] = s.head
	s.head = v
}

// nextDecision walks the VMTF list starting at candidate, skipping any
// variable that is already assigned (either of its literals falsified), and
// returns the next
// variable to decide on (0 if the list is exhausted, meaning every variable
// is already assigned).
func (s *Solver) nextDecision(candidate int) int {
	for candidate != 0 && (s.falseOf(PositiveLiteral(candidate)) != stateUnassigned || s.falseOf(NegativeLiteral(candidate)) != stateUnassigned) {
		candidate = s.prev[candidate]
	}
	return candidate
}
