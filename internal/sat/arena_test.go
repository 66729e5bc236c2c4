package sat

import (
	"errors"
	"testing"
)

func TestArena_addClause(t *testing.T) {
	a := newArena(1 << 10)

	h1, err := a.addClause([]Literal{1, 2, 3}, true)
	if err != nil {
		t.Fatalf("addClause(): want no error, got %s", err)
	}
	if a.isLearnt(h1) {
		t.Errorf("irredundant clause reported as learnt")
	}

	h2, err := a.addClause([]Literal{-1, -2}, false)
	if err != nil {
		t.Fatalf("addClause(): want no error, got %s", err)
	}
	if !a.isLearnt(h2) {
		t.Errorf("lemma clause not reported as learnt")
	}
	if h1 == h2 {
		t.Errorf("distinct clauses got the same handle")
	}

	got := a.literals(h1)
	want := []Literal{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("literals(h1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("literals(h1)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestArena_addClause_exhaustion(t *testing.T) {
	// Budget fits exactly one 3-literal clause (3+3 cells) and no more.
	a := newArena(6)

	if _, err := a.addClause([]Literal{1, 2, 3}, true); err != nil {
		t.Fatalf("first addClause(): want no error, got %s", err)
	}
	if _, err := a.addClause([]Literal{1, 2}, true); !errors.Is(err, ErrArenaExhausted) {
		t.Errorf("second addClause(): want ErrArenaExhausted, got %v", err)
	}
}

func TestArena_dropLemmas(t *testing.T) {
	a := newArena(1 << 10)

	hFixed, _ := a.addClause([]Literal{1, 2}, true)
	_, _ = a.addClause([]Literal{3, 4}, false)
	_, _ = a.addClause([]Literal{5, 6}, false)

	before := a.cellsUsed
	snapshot := a.dropLemmas()
	if len(snapshot) != 2 {
		t.Fatalf("dropLemmas(): got %d lemmas, want 2", len(snapshot))
	}
	if a.cellsUsed >= before {
		t.Errorf("dropLemmas(): cellsUsed did not shrink (%d >= %d)", a.cellsUsed, before)
	}
	if !a.isLearnt(Handle(0)) && a.isLemmaHandle(hFixed) {
		t.Errorf("irredundant handle reported as a lemma handle after dropLemmas()")
	}

	// Re-adding from the snapshot must succeed and not disturb hFixed.
	for _, rec := range snapshot {
		if _, err := a.addClause(*rec.lits, false); err != nil {
			t.Fatalf("re-addClause(): want no error, got %s", err)
		}
	}
	got := a.literals(hFixed)
	want := []Literal{1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("literals(hFixed) changed after dropLemmas(): got %v, want %v", got, want)
		}
	}
}

func TestArena_isLemmaHandle(t *testing.T) {
	a := newArena(1 << 10)
	hFixed, _ := a.addClause([]Literal{1, 2}, true)
	hLemma, _ := a.addClause([]Literal{3, 4}, false)

	if a.isLemmaHandle(hFixed) {
		t.Errorf("isLemmaHandle(hFixed) = true, want false")
	}
	if !a.isLemmaHandle(hLemma) {
		t.Errorf("isLemmaHandle(hLemma) = false, want true")
	}
}
