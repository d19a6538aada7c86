package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var populationCmd = &cobra.Command{
	Use:   `population "<city>, <ST>"`,
	Short: "Population of a US place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		out, err := env.Registry.Invoke(ctx, "population_data", map[string]string{
			"arguments": strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(populationCmd)
}
