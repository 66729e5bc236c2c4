// Command solver is the CLI front end for the CDCL engine: it loads a
// DIMACS CNF file and either solves it outright, or runs one of the two
// build-selection evaluator modes (--propagate, --status), reporting the
// stable "s ..."/"v ..." result lines and exit codes documented in
// internal/cliexit.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cnfsolve/cdcl/internal/cliexit"
	"github.com/cnfsolve/cdcl/internal/config"
	"github.com/cnfsolve/cdcl/internal/dimacs"
	"github.com/cnfsolve/cdcl/internal/metrics"
	"github.com/cnfsolve/cdcl/internal/sat"
)

// version is the CLI's own version string, printed by --version and
// otherwise inert: it never touches the solver.
const version = "cdcl-solver 1.0.0"

var (
	flagStatus    bool
	flagPropagate bool
	flagVersion   bool
	flagConfig    string
	flagQuiet     bool
)

var log = logrus.New()

func main() {
	code, err := run(newRootCmd(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if line := code.Line(); line != "" {
		fmt.Println(line)
	}
	os.Exit(int(code))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "solver [--status | --propagate] <dimacs-file>",
		Short:         "A CDCL SAT solver with build-selection evaluator modes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		// RunE is left unset: main drives execution itself so it can turn
		// the result into a process exit code rather than a cobra error.
	}
	cmd.Flags().BoolVar(&flagStatus, "status", false, "check a supplied assignment for validity and buildability")
	cmd.Flags().BoolVar(&flagPropagate, "propagate", false, "propagate dead variables and a supplied assignment, then report the decided set")
	cmd.Flags().BoolVar(&flagVersion, "version", false, "print the version and exit")
	cmd.Flags().StringVar(&flagConfig, "config", "", "optional YAML file overriding solver tuning")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "suppress stderr diagnostics")
	cmd.MarkFlagsMutuallyExclusive("status", "propagate")
	return cmd
}

// run parses argv against cmd and performs the requested mode, returning
// the exit code the process should terminate with. Only the --version line
// and the "v" line (printed inside runEvaluator, since it must precede the
// final "s ..." line) are emitted here; main prints the "s ..." line itself from the
// returned code.
func run(cmd *cobra.Command, argv []string) (cliexit.Code, error) {
	cmd.SetArgs(argv)
	if err := cmd.ParseFlags(argv); err != nil {
		return cliexit.Error, err
	}
	args := cmd.Flags().Args()

	if flagQuiet {
		log.SetLevel(logrus.ErrorLevel)
	}
	if flagVersion {
		fmt.Println(version)
		return cliexit.OK, nil
	}

	if len(args) == 0 {
		return cliexit.Error, fmt.Errorf("c FILE NOT FOUND")
	}
	filename := args[0]
	gzipped := strings.HasSuffix(filename, ".gz")

	if _, err := os.Stat(filename); err != nil {
		return cliexit.Error, fmt.Errorf("c FILE NOT FOUND")
	}

	opts, err := config.Load(flagConfig)
	if err != nil {
		return cliexit.Error, fmt.Errorf("c BAD CONFIG: %w", err)
	}

	if flagPropagate || flagStatus {
		return runEvaluator(filename, gzipped, opts, flagStatus)
	}
	return runSolve(filename, gzipped, opts)
}

func runSolve(filename string, gzipped bool, opts sat.Options) (cliexit.Code, error) {
	w := &solverWriter{opts: opts}
	if err := dimacs.LoadDIMACS(filename, gzipped, w); err != nil {
		if errors.Is(err, sat.ErrConflict) {
			// An empty or directly self-contradictory unit clause makes the
			// formula unsatisfiable before search ever starts.
			return cliexit.UNSAT, nil
		}
		if errors.Is(err, sat.ErrArenaExhausted) {
			return cliexit.Error, fmt.Errorf("c OUT OF MEMORY")
		}
		return cliexit.Error, fmt.Errorf("c PARSE ERROR: %w", err)
	}
	w.ensure(1) // a formula with no "p cnf" header line still needs a solver
	s := w.solver

	reg := prometheus.NewRegistry()
	if _, err := metrics.Register(reg, s); err != nil {
		log.WithError(err).Warn("could not register metrics collector")
	}
	log.WithField("variables", s.NumVariables()).Info("instance loaded")

	satisfiable, err := s.Solve()
	if err != nil {
		return cliexit.Error, fmt.Errorf("c OUT OF MEMORY")
	}

	log.WithFields(logrus.Fields{
		"conflicts": s.TotalConflicts,
		"restarts":  s.TotalRestarts,
		"decisions": s.TotalDecisions,
	}).Info("search complete")

	return cliexit.ForSolve(satisfiable), nil
}

func runEvaluator(filename string, gzipped bool, opts sat.Options, status bool) (cliexit.Code, error) {
	inst, err := dimacs.ParseDIMACS(filename, gzipped)
	if err != nil {
		return cliexit.Error, fmt.Errorf("c PARSE ERROR: %w", err)
	}

	n := inst.NumVars
	if n < 1 {
		n = 1
	}
	s := sat.New(n, opts)
	for _, clause := range inst.Clauses {
		if _, err := s.AddClause(clause); err != nil {
			if errors.Is(err, sat.ErrConflict) {
				// Matches the reference CLI: a contradictory clause set is
				// reported as UNSAT before either evaluator mode ever runs,
				// regardless of --status/--propagate.
				return cliexit.UNSAT, nil
			}
			return cliexit.Error, fmt.Errorf("c OUT OF MEMORY")
		}
	}

	var code cliexit.Code
	if status {
		code, err = evaluateStatus(s, inst)
	} else {
		code, err = evaluatePropagate(s, inst)
		if err == nil {
			printDecisions(s)
		}
	}
	if err != nil {
		return cliexit.Error, fmt.Errorf("c OUT OF MEMORY")
	}
	return code, nil
}

func evaluatePropagate(s *sat.Solver, inst *dimacs.Instance) (cliexit.Code, error) {
	// Matches microsat.c's evaluateDecisions: a root-level conflict while
	// propagating dead variables/assignments is not surfaced as INVALID here
	// (propagate mode has no such outcome) — the "v" line and buildability
	// check below always run, and an unsatisfiable root is reported as
	// whatever BUILDABLE/INCOMPLETE verdict that check returns, never INVALID.
	if _, err := s.EvaluateDecisions(inst.DeadVars, inst.Assignments); err != nil {
		return cliexit.Error, err
	}
	return cliexit.ForBuildability(s.EvaluateBuildability()), nil
}

func evaluateStatus(s *sat.Solver, inst *dimacs.Instance) (cliexit.Code, error) {
	if !s.EvaluateAssignment(inst.Assignments, inst.DeadVars) {
		return cliexit.Invalid, nil
	}
	return cliexit.ForBuildability(s.EvaluateBuildability()), nil
}

func printDecisions(s *sat.Solver) {
	lits := s.RootForcedLiterals()
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	fmt.Printf("v %s\n", strings.Join(parts, " "))
}

// solverWriter lazily constructs a *sat.Solver once the DIMACS header's
// variable count is known (via dimacs.VarCounter), then forwards clauses
// straight into it, avoiding an intermediate clause slice for the plain
// solve path.
type solverWriter struct {
	opts   sat.Options
	solver *sat.Solver
}

func (w *solverWriter) SetNumVars(n int) {
	w.ensure(n)
}

func (w *solverWriter) ensure(n int) {
	if w.solver == nil {
		if n < 1 {
			n = 1
		}
		w.solver = sat.New(n, w.opts)
	}
}

func (w *solverWriter) AddClause(lits []sat.Literal) error {
	w.ensure(1)
	_, err := w.solver.AddClause(lits)
	return err
}
