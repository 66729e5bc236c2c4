package dimacs

import (
	"testing"

	"github.com/cnfsolve/cdcl/internal/sat"
	"github.com/google/go-cmp/cmp"
)

type instance struct {
	Clauses [][]sat.Literal
}

func (i *instance) AddClause(tmpClause []sat.Literal) error {
	clause := make([]sat.Literal, len(tmpClause))
	copy(clause, tmpClause)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

var wantClauses = [][]sat.Literal{
	{1, 2, 3},
	{-1, 2, -3},
	{1, -2, 3},
}

func TestLoadDIMACS_cnf(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", false, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantClauses, got.Clauses); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestLoadDIMACS_gzip(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf.gz", true, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantClauses, got.Clauses); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestLoadDIMACS_noFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("", false, &got); err == nil {
		t.Errorf("LoadDIMACS(): want error, got none")
	}
}

func TestLoadDIMACS_gzip_notGzipFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", true, &got); err == nil {
		t.Errorf("LoadDIMACS(): want error, got none")
	}
}

func TestParseDIMACS_directives(t *testing.T) {
	got, err := ParseDIMACS("testdata/test_directives.cnf", false)
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}

	wantDead := []sat.Literal{sat.NegativeLiteral(2), sat.NegativeLiteral(3)}
	if diff := cmp.Diff(wantDead, got.DeadVars); diff != "" {
		t.Errorf("ParseDIMACS(): DeadVars mismatch (+want, -got):\n%s", diff)
	}

	wantAssignments := []sat.Literal{sat.PositiveLiteral(1), sat.NegativeLiteral(3)}
	if diff := cmp.Diff(wantAssignments, got.Assignments); diff != "" {
		t.Errorf("ParseDIMACS(): Assignments mismatch (+want, -got):\n%s", diff)
	}

	if got.NumVars != 3 {
		t.Errorf("ParseDIMACS(): NumVars = %d, want 3", got.NumVars)
	}

	wantInstanceClauses := [][]sat.Literal{
		{1, 2},
		{-1, 3},
	}
	if diff := cmp.Diff(wantInstanceClauses, got.Clauses); diff != "" {
		t.Errorf("ParseDIMACS(): Clauses mismatch (+want, -got):\n%s", diff)
	}
}
