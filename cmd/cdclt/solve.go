package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coresat/cdclt/config"
	"github.com/coresat/cdclt/encoding"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/solver"
	"github.com/coresat/cdclt/term"
)

func newSolveCmd() *cobra.Command {
	var (
		checkFlag string
		dotPath   string
	)

	cmd := &cobra.Command{
		Use:   "solve [dimacs-file]",
		Short: "Solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], checkFlag, dotPath)
		},
	}

	cmd.Flags().StringVar(&checkFlag, "check", "core", "certificate level on Unsat: none, core, or proof")
	cmd.Flags().StringVar(&dotPath, "dot", "", "write the Unsat proof as GraphViz DOT to this path (requires --check=proof)")
	return cmd
}

func parseCheckLevel(s string) (solver.CheckLevel, error) {
	switch s {
	case "none":
		return solver.CheckNone, nil
	case "core":
		return solver.CheckCore, nil
	case "proof":
		return solver.CheckProof, nil
	default:
		return solver.CheckNone, fmt.Errorf("cdclt: unknown --check level %q", s)
	}
}

func runSolve(path, checkFlag, dotPath string) error {
	check, err := parseCheckLevel(checkFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cdclt: %w", err)
	}
	defer f.Close()

	clauses, nVars, err := encoding.ParseDimacs(f)
	if err != nil {
		return err
	}

	s := solver.New(cfg)
	factory := term.NewFactory()
	vars := make([]lit.Atom, nVars)
	for i := 0; i < nVars; i++ {
		vars[i] = s.MkAtom(factory.BoolAtom(fmt.Sprintf("x%d", i+1)), false)
	}

	for _, c := range clauses {
		atoms := make([]lit.Atom, len(c))
		for i, a := range c {
			atoms[i] = vars[a.Var()]
			if a.Sign() {
				atoms[i] = atoms[i].Not()
			}
		}
		if err := s.AddClause(atoms...); err != nil {
			fmt.Println("UNSAT")
			return nil
		}
	}

	out := os.Stdout
	if cfg.OutputPath != "" {
		of, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("cdclt: %w", err)
		}
		defer of.Close()
		out = of
	}

	start := time.Now()
	wanted := cfg.Models
	if wanted == 0 {
		wanted = 1
	}
	var (
		res   solver.Result
		found int
	)
	for found < int(wanted) {
		res = s.Solve(nil, nil, check)
		if res.Kind != solver.ResultSat {
			break
		}
		found++
		vals := make([]bool, nVars)
		for i := range vals {
			vals[i], _ = res.Model.Value(vars[i].Var())
		}
		if err := encoding.WriteModel(out, vals); err != nil {
			return err
		}
		if found == int(wanted) {
			break
		}
		blocking := make([]lit.Atom, nVars)
		for i, v := range vals {
			blocking[i] = vars[i]
			if v {
				blocking[i] = vars[i].Not()
			}
		}
		if err := s.AddClause(blocking...); err != nil {
			break
		}
	}
	log.Debugf("finished solving in %s", time.Since(start))
	logStats(s)

	switch {
	case found > 0:
		fmt.Println("SAT")
		return nil
	case res.Kind == solver.ResultUnsat:
		fmt.Println("UNSAT")
		if len(res.UnsatCore) > 0 {
			fmt.Printf("c unsat core: %d clauses\n", len(res.UnsatCore))
		}
		if dotPath != "" {
			if res.Proof == nil {
				return fmt.Errorf("cdclt: --dot requires --check=proof")
			}
			return writeDOT(dotPath, res)
		}
		return nil
	default:
		fmt.Println("UNKNOWN")
		return nil
	}
}

func logStats(s *solver.Solver) {
	stats := s.SolverStats()
	log.Debugf("conflicts=%d decisions=%d propagations=%d restarts=%d",
		stats.Conflicts, stats.Decisions, stats.Propagations, stats.Restarts)
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.New(), nil
	}
	return config.Load(cfgFile)
}
