package sat

// litState is the per-literal label tracked in Solver.falseState. The
// numeric values matter: the ordering lets analyze distinguish "definitely
// implied" (stateImplied) from "definitely not implied" (stateImpliedNot)
// with a single comparison against stateMark, and lets bump skip literals
// that were forced at the root.
type litState int8

const (
	// stateUnassigned means the literal has neither been falsified nor
	// marked; this is also the steady-state value after unassign.
	stateUnassigned litState = 0

	// stateFalse means the literal was falsified by a decision or by
	// propagation.
	stateFalse litState = 1

	// stateMark is transient: set on the literals swept during a single
	// conflict analysis call and cleared before analyze returns.
	stateMark litState = 2

	// stateImpliedNot memoizes a negative result of the recursive
	// minimization check ("not implied by the current MARK set") within a
	// single analyze call.
	stateImpliedNot litState = 5

	// stateImplied marks a literal that was falsified at the root decision
	// level (its opposite is forced true there). It persists across conflict analysis calls and both excludes
	// the literal from bumping and short-circuits minimization.
	stateImplied litState = 6
)

// isImpliedMemo reports whether st is one of the two memoized minimization
// results (stateImpliedNot or stateImplied), both of which are strictly
// greater than stateMark.
func isImpliedMemo(st litState) bool {
	return st > stateMark
}
