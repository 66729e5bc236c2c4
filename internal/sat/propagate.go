package sat

// propagate drains the trail from s.processed to the end, performing unit
// propagation over the watch lists. It returns (false, nil) only on a
// root-level conflict (the formula is unsatisfiable); a conflict found
// below the root is resolved in place by learning a clause and assigning
// it, and propagation continues. A non-nil error is always
// ErrArenaExhausted, raised while learning a clause.
//
// The walk mirrors watched-literal propagation: for every literal freshly
// pushed onto the trail (which is to say, freshly falsified), every clause
// watching it is revisited. A clause keeps watching a falsified literal
// only if no other unassigned-or-true literal could be found to watch
// instead; in that case the clause is unit (or falsified) under the other
// watched literal.
func (s *Solver) propagate() (bool, error) {
	forced := false
	if s.processed < len(s.falseStack) {
		forced = s.hasReason(s.falseStack[s.processed].VarID())
	}

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

			// Ensure the watched literal other than `lit` sits at position 0,
			// so the new-watch scan and the unit check below both look at a
			// fixed pair of positions regardless of how this clause's
			// literals have been reordered by earlier relocations.
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

			if s.falseOf(lits[0].Opposite()) != stateUnassigned {
				// The other watched literal is already true.
				continue
			}
			if s.falseOf(lits[0]) == stateUnassigned {
				s.assign(h, forced)
				continue
			}

			if forced {
				return false, nil
			}
			lemma, err := s.analyze(h)
			if err != nil {
				return false, err
			}
			lemmaLits := s.arena.literals(lemma)
			if len(lemmaLits) == 1 {
				forced = true
			}
			s.assign(lemma, forced)
			break
		}
	}

	if forced {
		s.forced = s.processed
	}
	return true, nil
}
