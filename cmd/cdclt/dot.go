package main

import (
	"os"

	"github.com/coresat/cdclt/proof"
	"github.com/coresat/cdclt/solver"
)

func writeDOT(path string, res solver.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(proof.DOT(res.Proof))
	return err
}
