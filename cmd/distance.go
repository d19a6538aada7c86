package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/dealer-scout/internal/geo"
)

var distanceGeoJSON bool

var distanceCmd = &cobra.Command{
	Use:   "distance <address1> <address2>",
	Short: "Geodesic distance in miles between two addresses",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if !distanceGeoJSON {
			out, err := env.Registry.Invoke(ctx, "distance_calculator", map[string]string{
				"address1": args[0],
				"address2": args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		d, err := env.Resolver.Distance(ctx, args[0], args[1])
		if err != nil {
			return eris.Wrap(err, "distance")
		}
		doc, err := geo.RouteGeoJSON(args[0], args[1], d)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(doc))
		return nil
	},
}

func init() {
	distanceCmd.Flags().BoolVar(&distanceGeoJSON, "geojson", false, "print the route as a GeoJSON FeatureCollection")
	rootCmd.AddCommand(distanceCmd)
}
