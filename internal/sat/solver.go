package sat

// Options configures resource limits and clause-DB tuning. The restart/LBD
// arithmetic itself (EMA shift constants, the 125/100 restart ratio) is not
// configurable: the spec this engine implements calls those out as a fixed
// contract, reproduced exactly in search.go and analyze.go.
type Options struct {
	// ArenaCells bounds the clause arena's bookkeeping budget, counted the
	// same way the spec counts it (len(lits)+3 per clause). Exceeding it is
	// a fatal, process-ending condition (ErrArenaExhausted).
	ArenaCells int

	// InitialMaxLemmas is the number of learnt clauses allowed before the
	// first clause-DB reduction is triggered.
	InitialMaxLemmas int

	// LemmasGrowth is how much maxLemmas grows, per reduceDB call, while the
	// lemma count still exceeds it.
	LemmasGrowth int

	// ReduceKeepThreshold (the "k" parameter of reduceDB) discards a lemma
	// when at least this many of its literals are already satisfied by the
	// current phase-saved model.
	ReduceKeepThreshold int
}

// DefaultOptions mirrors the reference constants: a ~1GiB-equivalent arena
// budget scaled down to a realistic default for a typed arena, an initial
// 2000-lemma cap, and a 300-lemma growth step.
var DefaultOptions = Options{
	ArenaCells:          1 << 22,
	InitialMaxLemmas:    2000,
	LemmasGrowth:        300,
	ReduceKeepThreshold: 6,
}

const emaSeed = 1 << 24

// Solver is a single CDCL instance. It is not safe for concurrent use: the
// engine is intentionally single-threaded (no parallel search, no
// incremental API), matching the spec's concurrency model.
type Solver struct {
	opts  Options
	arena *arena
	nVars int

	// Per-variable state, indexed by variable ID in [1, nVars].
	model  []bool
	reason []Handle
	prev   []int
	next   []int
	head   int

	// Per-literal state, indexed by (literal + nVars) to cover [-nVars, nVars].
	falseState []litState
	first      []watchRef

	// Trail: falseStack holds literals in assignment order. processed is the
	// propagation cursor, forced is the boundary below which everything is a
	// root-level (IMPLIED) assignment.
	falseStack []Literal
	processed  int
	forced     int

	// Clause-DB bookkeeping.
	nLemmas    int
	maxLemmas  int
	nConflicts int
	restarts   int
	fast       int
	slow       int

	// Scratch buffer reused by analyze to build the learnt clause; avoids
	// reallocating on every conflict.
	buffer []Literal

	// Search statistics, exported for CLI/metrics consumption.
	TotalConflicts int64
	TotalRestarts  int64
	TotalDecisions int64
}

// New returns a Solver configured for a CNF over variables 1..n. A
// non-positive n is clamped to 1, since the engine assumes at least one
// variable exists.
func New(n int, opts Options) *Solver {
	if n < 1 {
		n = 1
	}

	s := &Solver{
		opts:  opts,
		arena: newArena(opts.ArenaCells),
		nVars: n,

		model:  make([]bool, n+1),
		reason: make([]Handle, n+1),
		prev:   make([]int, n+1),
		next:   make([]int, n+1),

		falseState: make([]litState, 2*n+1),
		first:      make([]watchRef, 2*n+1),

		falseStack: make([]Literal, 0, n),

		maxLemmas: opts.InitialMaxLemmas,
		fast:      emaSeed,
		slow:      emaSeed,
	}

	for v := 1; v <= n; v++ {
		s.prev[v] = v - 1
		s.next[v-1] = v
	}
	s.head = n

	return s
}

// NewDefault returns a Solver configured with DefaultOptions.
func NewDefault(n int) *Solver {
	return New(n, DefaultOptions)
}

func (s *Solver) NumVariables() int { return s.nVars }
func (s *Solver) NumLemmas() int    { return s.nLemmas }

// idx maps a literal to its offset in the [-nVars, nVars] indexed arrays.
func (s *Solver) idx(l Literal) int {
	return int(l) + s.nVars
}

func (s *Solver) falseOf(l Literal) litState {
	return s.falseState[s.idx(l)]
}

func (s *Solver) setFalseOf(l Literal, st litState) {
	s.falseState[s.idx(l)] = st
}

// Model returns the current phase-saved value of variable v (1-indexed).
func (s *Solver) Model(v int) bool {
	return s.model[v]
}

// IsRootForced reports whether the literal is permanently forced true at
// the root decision level (its opposite is in state IMPLIED).
func (s *Solver) IsRootForced(l Literal) bool {
	return s.falseOf(l.Opposite()) == stateImplied
}

// watchListHead / setWatchListHead access first[lit]: the watchRef naming
// the first node of the watch list rooted at literal l, i.e. the clauses to
// revisit when l is falsified.
func (s *Solver) watchListHead(l Literal) watchRef {
	return s.first[s.idx(l)]
}

func (s *Solver) setWatchListHead(l Literal, r watchRef) {
	s.first[s.idx(l)] = r
}

// watchNext / setWatchNext walk and splice the watch list starting from a
// node (not a list head). Both go through the arena rather than a raw Go
// pointer, since arena.clauses can be reallocated by append while a learnt
// clause is added mid-propagation.
func (s *Solver) watchNext(r watchRef) watchRef {
	return s.arena.watchNext(r.h, r.slot)
}

func (s *Solver) setWatchNext(r watchRef, next watchRef) {
	s.arena.setWatchNext(r.h, r.slot, next)
}

// addWatch prepends clause h to the watch list rooted at literal l, using
// watch slot `slot` (0 or 1). The slot need not match l's position in the
// clause's literal array: propagate rebinds a relocated watch's existing
// slot to the new literal (see watchRef). l is watched directly, not
// its opposite: the list rooted at l holds the clauses to recheck when l
// itself is falsified.
func (s *Solver) addWatch(l Literal, h Handle, slot int8) {
	s.arena.setWatchNext(h, slot, s.watchListHead(l))
	s.setWatchListHead(l, watchRef{h: h, slot: slot})
}

// AddClause adds an irredundant (problem) clause. It must only be called at
// the root decision level. A non-nil error is either ErrArenaExhausted, or
// ErrConflict for an empty clause or a unit clause that already conflicts
// with a previously forced literal.
//
// Clauses of two or more literals are wired into the watch-list machinery
// the same way a lemma is: propagate discovers their consequences lazily.
// A unit clause has no second literal to watch, so nothing would ever
// revisit it; it is instead resolved right here, the same way the
// reference parser resolves unit clauses as they are read rather than
// deferring them to the first propagate call.
func (s *Solver) AddClause(lits []Literal) (Handle, error) {
	h, err := s.arena.addClause(lits, true)
	if err != nil {
		return noHandle, err
	}

	switch len(lits) {
	case 0:
		return h, ErrConflict
	case 1:
		lit := lits[0]
		if s.falseOf(lit) != stateUnassigned {
			return h, ErrConflict
		}
		if s.falseOf(lit.Opposite()) == stateUnassigned {
			s.assignBareLiteral(lit, true)
		}
	default:
		s.addWatch(lits[0], h, 0)
		s.addWatch(lits[1], h, 1)
	}
	return h, nil
}

// addLemma adds a learnt (redundant) clause discovered by analyze, wiring
// its watches the same way AddClause does for problem clauses.
func (s *Solver) addLemma(lits []Literal) (Handle, error) {
	h, err := s.arena.addClause(lits, false)
	if err != nil {
		return noHandle, err
	}
	s.nLemmas++
	if len(lits) >= 2 {
		s.addWatch(lits[0], h, 0)
		s.addWatch(lits[1], h, 1)
	}
	return h, nil
}

// assign makes reasonClause[0] true. If forced, the assignment is permanent
// (root-level, IMPLIED); otherwise it is an ordinary propagated fact.
func (s *Solver) assign(h Handle, forced bool) {
	lits := s.arena.literals(h)
	lit := lits[0]
	if forced {
		s.setFalseOf(lit.Opposite(), stateImplied)
	} else {
		s.setFalseOf(lit.Opposite(), stateFalse)
	}
	s.falseStack = append(s.falseStack, lit.Opposite())
	s.reason[lit.VarID()] = h + 1
	s.model[lit.VarID()] = lit.IsPositive()
}

// directiveReason is the reason slot value for a literal pushed directly by
// a directive (a root unit clause from AddClause, or a dead
// variable/assignment the evaluator asserts) rather than discovered by unit
// propagation. It carries no clause for analyze to walk, but its
// non-zero-ness is what seeds the *next* propagate call's forced flag,
// regardless of whether this particular literal itself was marked IMPLIED:
// any consequence propagate derives from it during that call becomes
// IMPLIED too. A real decision has no such effect, so assignDecision leaves
// the reason slot at noHandle instead.
const directiveReason Handle = -1

// assignDecision pushes lit as a decision: lit becomes true, no reason is
// recorded, and the assignment is not forced.
func (s *Solver) assignDecision(lit Literal) {
	s.setFalseOf(lit.Opposite(), stateFalse)
	s.falseStack = append(s.falseStack, lit.Opposite())
	s.reason[lit.VarID()] = noHandle
	s.model[lit.VarID()] = lit.IsPositive()
}

// assignBareLiteral pushes lit as true with no backing clause: forced marks
// lit itself IMPLIED (root-level, permanent); otherwise it is plain FALSE.
// Either way the reason slot is set to directiveReason, not noHandle,
// matching the evaluator modes and AddClause's own root unit clauses.
func (s *Solver) assignBareLiteral(lit Literal, forced bool) {
	st := stateFalse
	if forced {
		st = stateImplied
	}
	s.setFalseOf(lit.Opposite(), st)
	s.falseStack = append(s.falseStack, lit.Opposite())
	s.reason[lit.VarID()] = directiveReason
	s.model[lit.VarID()] = lit.IsPositive()
}

func (s *Solver) unassign(l Literal) {
	s.setFalseOf(l, stateUnassigned)
}

// hasReason reports whether variable v was assigned by propagation or by a
// directive (has a non-zero reason slot) rather than by decision or not at
// all. analyze only ever walks hasReason variables that were actually
// assigned by propagate, since a directive's reason (directiveReason) makes
// the forced flag latch true for the rest of that propagate call, and any
// conflict found while forced is true is reported UNSAT directly without
// calling analyze.
func (s *Solver) hasReason(v int) bool {
	return s.reason[v] != noHandle
}

// reasonHandle returns the clause handle that forced variable v. Only valid
// when hasReason(v) is true and v was assigned by propagate, never a
// directive.
func (s *Solver) reasonHandle(v int) Handle {
	return s.reason[v] - 1
}

// restart pops the trail down to `forced`, preserving root assignments, and
// rewinds the propagation cursor.
func (s *Solver) restart() {
	for len(s.falseStack) > s.forced {
		last := len(s.falseStack) - 1
		s.unassign(s.falseStack[last])
		s.falseStack = s.falseStack[:last]
	}
	s.processed = s.forced
}
