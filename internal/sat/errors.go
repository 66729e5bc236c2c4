package sat

import "errors"

// ErrArenaExhausted is returned by AddClause (and, transitively, by
// anything that learns a clause) when the solver's clause arena has grown
// past its configured budget. It is a fatal, process-ending condition: the
// CLI layer maps it directly to the ERROR exit code.
var ErrArenaExhausted = errors.New("sat: clause arena exhausted")

// ErrConflict is returned by AddClause when the clause is empty, or a unit
// clause whose literal is already forced false: the formula is already
// unsatisfiable before search begins. Unlike ErrArenaExhausted this is not a
// failure: the caller should report UNSAT directly without calling Solve.
var ErrConflict = errors.New("sat: clause conflicts with the root-level assignment")
