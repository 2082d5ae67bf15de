package main

import (
	"fmt"

	"github.com/danmuck/msgc/internal/config"
	"github.com/spf13/cobra"
)

var flagForce bool

var initCmd = &cobra.Command{
	Use:   "init <schema>",
	Short: "Write a starting config file for a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteTemplate(flagConfig, args[0], flagForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flagConfig)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite an existing config")
}
