package main

import (
	"fmt"
	"os"

	"github.com/danmuck/msgc/internal/compiler"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var flagDump bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse the schema and print the message layout",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().AddFlagSet(compileFlags())
	checkCmd.Flags().BoolVar(&flagDump, "dump", false, "dump the compiled model")
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Schema == "" {
		return fmt.Errorf("no schema: set schema in %s or pass --schema", flagConfig)
	}
	f, err := os.Open(cfg.Schema)
	if err != nil {
		return fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	s, err := compiler.Check(f, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagDump {
		dumper.Fdump(out, s.Messages)
		return nil
	}
	compiler.Report(out, s)
	return nil
}
