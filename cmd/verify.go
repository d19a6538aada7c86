package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify one competitor dealership",
	Long:  "Checks the competitor's website, that it sells the target OEM, and that it still exists.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		name, _ := cmd.Flags().GetString("name")
		site, _ := cmd.Flags().GetString("website")
		oem, _ := cmd.Flags().GetString("oem")
		address, _ := cmd.Flags().GetString("address")
		results, _ := cmd.Flags().GetString("search-results")

		out, err := env.Registry.Invoke(ctx, "competitor_verifier", map[string]string{
			"competitor_name":    name,
			"competitor_website": site,
			"target_oem":         oem,
			"competitor_address": address,
			"search_results":     results,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	f := verifyCmd.Flags()
	f.String("name", "", "competitor dealership name")
	f.String("website", "", "competitor website URL")
	f.String("oem", "", "target OEM brand")
	f.String("address", "", "competitor street address")
	f.String("search-results", "", "search result text about the competitor")
	_ = verifyCmd.MarkFlagRequired("name")
	_ = verifyCmd.MarkFlagRequired("website")
	_ = verifyCmd.MarkFlagRequired("oem")
	rootCmd.AddCommand(verifyCmd)
}
