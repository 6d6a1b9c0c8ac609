// Command cdclt drives the CDCL(T) core (package solver) over plain DIMACS
// CNF input: a thin, pure-propositional harness over the library's term-
// and theory-level API.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.StandardLogger()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cdclt",
		Short: "cdclt is a CDCL(T) SAT/SMT core",
		Long:  `cdclt drives the coresat/cdclt solver library against DIMACS CNF input.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (defaults unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
