package main

import (
	"fmt"

	"github.com/danmuck/msgc/internal/compiler"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the schema and write the types and codec artifacts",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().AddFlagSet(compileFlags())
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := compiler.Run(cfg)
	if err != nil {
		return err
	}
	for _, a := range res.Artifacts {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", a.Name, len(a.Data))
	}
	return nil
}
