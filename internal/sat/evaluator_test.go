package sat

import "testing"

// TestEvaluateDecisions_buildable covers spec example 5: formula
// (x1 v x2)(-x1 v x3), assignment "v1" (force x1 true), no dead variables.
// x1 forces x3 true by unit propagation; x2 stays free, so the instance is
// BUILDABLE. Literal 3 is root-forced along with the supplied assignment
// x1: both become permanent (IMPLIED) at the root.
func TestEvaluateDecisions_buildable(t *testing.T) {
	s := NewDefault(3)
	mustAddClause(t, s, []Literal{1, 2})
	mustAddClause(t, s, []Literal{-1, 3})

	if err := s.EvaluateDecisions(nil, []Literal{PositiveLiteral(1)}); err != nil {
		t.Fatalf("EvaluateDecisions(): want no error, got %s", err)
	}

	if !s.EvaluateBuildability() {
		t.Errorf("EvaluateBuildability() = false, want true")
	}

	forced := s.RootForcedLiterals()
	found := false
	for _, f := range forced {
		if f == PositiveLiteral(3) {
			found = true
		}
	}
	if !found {
		t.Errorf("RootForcedLiterals() = %v, want it to contain %d", forced, PositiveLiteral(3))
	}
}

// TestEvaluateAssignment_deadVariable checks that forcing a dead variable
// to true via an assignment is rejected by EvaluateAssignment's own
// dead-variable check (the status-mode path), matching the directive's
// "must never be satisfied" contract.
func TestEvaluateAssignment_deadVariable(t *testing.T) {
	s := NewDefault(2)
	mustAddClause(t, s, []Literal{1, 2})

	deadVars := []Literal{NegativeLiteral(2)} // variable 2 is dead: forbids literal 2
	ok := s.EvaluateAssignment([]Literal{PositiveLiteral(2)}, deadVars)
	if ok {
		t.Errorf("EvaluateAssignment() = true, want false (assignment names a dead variable)")
	}
}

// TestEvaluateStatus_invalid covers spec example 6: clauses (x1)(-x1) are
// contradictory on their own, a conflict AddClause itself catches before
// the evaluator ever runs.
func TestEvaluateStatus_invalid(t *testing.T) {
	s := NewDefault(1)
	mustAddClause(t, s, []Literal{1})

	if _, err := s.AddClause([]Literal{-1}); err != ErrConflict {
		t.Fatalf("AddClause([-1]): want ErrConflict, got %v", err)
	}
}

// TestEvaluateAssignment_conflictingLiterals checks the direct status-mode
// path: asserting a literal whose opposite the formula already forces must
// be reported invalid.
func TestEvaluateAssignment_conflictingLiterals(t *testing.T) {
	s := NewDefault(1)
	mustAddClause(t, s, []Literal{-1})

	ok := s.EvaluateAssignment([]Literal{PositiveLiteral(1)}, nil)
	if ok {
		t.Errorf("EvaluateAssignment() = true, want false")
	}
}

// TestEvaluateBuildability_allAssigned checks the trivial case: once every
// variable already has a value, buildability holds without needing to
// tentatively assign anything further.
func TestEvaluateBuildability_allAssigned(t *testing.T) {
	s := NewDefault(1)
	mustAddClause(t, s, []Literal{1})

	if err := s.EvaluateDecisions(nil, []Literal{PositiveLiteral(1)}); err != nil {
		t.Fatalf("EvaluateDecisions(): want no error, got %s", err)
	}
	if !s.EvaluateBuildability() {
		t.Errorf("EvaluateBuildability() = false, want true")
	}
}

// TestEvaluateBuildability_incomplete checks that a clause left with two
// free variables is reported INCOMPLETE: EvaluateBuildability completes a
// partial assignment by tentatively asserting each remaining free variable
// false in turn, without ever reconsidering an earlier choice, so driving
// both x1 and x2 false in variable order falsifies (x1 v x2).
func TestEvaluateBuildability_incomplete(t *testing.T) {
	s := NewDefault(2)
	mustAddClause(t, s, []Literal{1, 2})

	if err := s.EvaluateDecisions(nil, nil); err != nil {
		t.Fatalf("EvaluateDecisions(): want no error, got %s", err)
	}
	if s.EvaluateBuildability() {
		t.Errorf("EvaluateBuildability() = true, want false: defaulting every free variable false falsifies (x1 v x2)")
	}
}

// TestEvaluateDecisions_rootConflictStaysBuildable covers the case the
// reference evaluateDecisions (microsat.c) never treats as special: two dead
// variables that, together, contradict a clause outright (both x1 and x2 are
// forbidden, but (x1 v x2) requires one of them true) drive propagate to a
// root-level conflict. Propagate mode has no INVALID outcome — unlike
// EvaluateAssignment/status mode, EvaluateDecisions must swallow the
// conflict and let EvaluateBuildability run to completion regardless. With
// both variables forced, every variable is assigned, so the verdict is
// BUILDABLE.
func TestEvaluateDecisions_rootConflictStaysBuildable(t *testing.T) {
	s := NewDefault(2)
	mustAddClause(t, s, []Literal{1, 2})

	deadVars := []Literal{NegativeLiteral(1), NegativeLiteral(2)}
	if err := s.EvaluateDecisions(deadVars, nil); err != nil {
		t.Fatalf("EvaluateDecisions(): want no error, got %s", err)
	}

	// Must not panic or otherwise misbehave on the resulting self-
	// contradictory trail; propagate mode never reports a distinct
	// conflict outcome.
	if !s.EvaluateBuildability() {
		t.Errorf("EvaluateBuildability() = false, want true: every variable is already assigned")
	}
}

// TestRootForcedLiterals_order checks that RootForcedLiterals reports
// literals in ascending variable order, the "v" line's stable contract.
func TestRootForcedLiterals_order(t *testing.T) {
	s := NewDefault(3)
	mustAddClause(t, s, []Literal{1})
	mustAddClause(t, s, []Literal{2})
	mustAddClause(t, s, []Literal{-3})

	if err := s.EvaluateDecisions(nil, nil); err != nil {
		t.Fatalf("EvaluateDecisions(): want no error, got %s", err)
	}

	got := s.RootForcedLiterals()
	want := []Literal{PositiveLiteral(1), PositiveLiteral(2), NegativeLiteral(3)}
	if len(got) != len(want) {
		t.Fatalf("RootForcedLiterals() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RootForcedLiterals()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
