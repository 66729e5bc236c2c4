// Package dimacs loads CNF instances in the DIMACS format, including the
// two non-standard comment directives used by propagate/status evaluation:
// "c d <k> v1 v2 ... vk" names variables that must never be satisfied
// (dead/forbidden), and "c v <k> l1 l2 ... lk" supplies a candidate partial
// assignment to check or extend. Parsing itself is delegated to
// github.com/rhartert/dimacs; this package only supplies the Builder that
// turns its callbacks into sat.Literal values and interprets the two
// directive comments.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/cnfsolve/cdcl/internal/sat"
)

// Writer receives an instance's clauses incrementally, the same shape the
// solver itself exposes, so a CNF file can be streamed straight into a
// *sat.Solver without building an intermediate clause slice.
type Writer interface {
	AddClause([]sat.Literal) error
}

// VarCounter is an optional Writer extension: when implemented, it is told
// the header's declared variable count before any clause arrives, letting
// the caller size a *sat.Solver (which must be constructed with its
// variable count up front) from the header alone.
type VarCounter interface {
	SetNumVars(n int)
}

// Instance is the fully parsed form of a DIMACS file, used when directives
// (dead variables, a candidate assignment) must be inspected before a
// solver exists to receive them.
type Instance struct {
	NumVars     int
	Clauses     [][]sat.Literal
	DeadVars    []sat.Literal // already negated: asserting it true forbids the literal it negates
	Assignments []sat.Literal // in file order
}

func (inst *Instance) AddClause(lits []sat.Literal) error {
	clause := make([]sat.Literal, len(lits))
	copy(clause, lits)
	inst.Clauses = append(inst.Clauses, clause)
	return nil
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS streams filename's clauses into dw, for the ordinary solve
// path where directive comments are irrelevant noise.
func LoadDIMACS(filename string, gzipped bool, dw Writer) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &builder{dw: dw}
	return extdimacs.ReadBuilder(r, b)
}

// ParseDIMACS reads filename in full, including its directive comments, and
// returns the parsed Instance for the propagate/status evaluators.
func ParseDIMACS(filename string, gzipped bool) (*Instance, error) {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	inst := &Instance{}
	b := &builder{dw: inst, inst: inst}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return inst, nil
}

// builder adapts github.com/rhartert/dimacs's callback-based reader to a
// Writer, translating its raw signed ints directly to sat.Literal (DIMACS
// literals and sat.Literal share the same 1-indexed signed encoding, so no
// offset translation is needed) and interpreting "c d"/"c v" comments when
// inst is set.
type builder struct {
	dw   Writer
	inst *Instance // non-nil only when directive comments matter
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	if b.inst != nil {
		b.inst.NumVars = nVars
	}
	if vc, ok := b.dw.(VarCounter); ok {
		vc.SetNumVars(nVars)
	}
	return nil
}

func (b *builder) Clause(raw []int) error {
	lits := make([]sat.Literal, len(raw))
	for i, v := range raw {
		lits[i] = literalOf(v)
	}
	return b.dw.AddClause(lits)
}

func (b *builder) Comment(text string) error {
	if b.inst == nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if lits, ok := parseDirective(text, "d"); ok {
		for _, l := range lits {
			b.inst.DeadVars = append(b.inst.DeadVars, l.Opposite())
		}
	} else if lits, ok := parseDirective(text, "v"); ok {
		b.inst.Assignments = append(b.inst.Assignments, lits...)
	}
	return nil
}

func literalOf(v int) sat.Literal {
	if v < 0 {
		return sat.NegativeLiteral(-v)
	}
	return sat.PositiveLiteral(v)
}

// parseDirective recognizes a directive comment of the form
// "<tag> <k> l1 l2 ... lk" (the text already has its leading "c " stripped)
// and returns its k literals. Unlike microsat.c's fscanf-based reader, which
// pulls its k integers from wherever the stream's next tokens are (possibly
// spanning several lines), this reads the count and the literals only from
// the single comment line the directive starts on: a line with fewer than k
// literals yields just the ones it has, and fields past the k-th are ignored.
func parseDirective(text, tag string) ([]sat.Literal, bool) {
	if !strings.HasPrefix(text, tag+" ") {
		return nil, false
	}
	fields := strings.Fields(text[len(tag):])
	if len(fields) == 0 {
		return nil, false
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, false
	}
	end := len(fields)
	if k+1 < end {
		end = k + 1
	}
	lits := make([]sat.Literal, 0, k)
	for _, f := range fields[1:end] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		lits = append(lits, literalOf(v))
	}
	return lits, true
}
