// Package encoding reads and writes the DIMACS CNF format the CLI drives
// the propositional subset of the solver with (spec.md §9 supplement,
// C11: the CLI only ever feeds pure propositional instances, so DIMACS's
// signed-integer literals map directly onto lit.Atom with no term layer
// involved).
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/coresat/cdclt/lit"
)

// ParseDimacs reads a DIMACS CNF document, skipping comment ("c") and
// problem ("p") lines, and returns one []lit.Atom per clause plus the
// number of variables the "p cnf <vars> <clauses>" header declared (0 if
// no header was present).
func ParseDimacs(in io.Reader) (clauses [][]lit.Atom, nVars int, err error) {
	scanner := bufio.NewScanner(in)
	var cur []lit.Atom

	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) == 0 {
			continue
		}
		switch string(fields[0]) {
		case "c":
			continue
		case "p":
			if len(fields) >= 3 {
				nVars, err = strconv.Atoi(string(fields[2]))
				if err != nil {
					return nil, 0, fmt.Errorf("encoding: malformed p-line: %w", err)
				}
			}
			continue
		}

		for _, field := range fields {
			n, err := strconv.Atoi(string(field))
			if err != nil {
				return nil, 0, fmt.Errorf("encoding: malformed literal %q: %w", field, err)
			}
			if n == 0 {
				clauses = append(clauses, cur)
				cur = nil
				continue
			}
			cur = append(cur, lit.FromDimacs(n))
		}
	}
	if len(cur) > 0 {
		clauses = append(clauses, cur)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return clauses, nVars, nil
}

// WriteModel renders a total variable assignment as DIMACS's "v" lines
// (one signed, 1-indexed integer per variable, terminated by 0), the
// conventional companion to ParseDimacs for round-tripping a SAT result.
func WriteModel(w io.Writer, vals []bool) error {
	for i, b := range vals {
		sign := i + 1
		if !b {
			sign = -sign
		}
		if _, err := fmt.Fprintf(w, "v %d\n", sign); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "v 0")
	return err
}
