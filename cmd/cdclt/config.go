package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect solver tuning configuration",
	}
	cmd.AddCommand(newConfigDumpCmd())
	return cmd
}

func newConfigDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the active tuning configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			if err != nil {
				return fmt.Errorf("cdclt: %w", err)
			}
			return nil
		},
	}
}
