package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/i474232898/solar-dashboard/internal/catalog"
)

func sitesCmd() *cobra.Command {
	var region, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the catalogued solar sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Default()
			sites := c.Filter(catalog.Region(region), search)

			if asJSON {
				return printJSON(sites)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATE\tREGION\tSTATUS\tCAPACITY (MW)\tIRRADIANCE (W/m²)\tEFFICIENCY (%)")
			for _, s := range sites {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.0f\t%.0f\t%.1f\n",
					s.ID, s.Name, s.State, s.Region, s.Status, s.Capacity, s.Irradiance, s.Efficiency)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&region, "region", string(catalog.RegionAll), "Region filter (all, city, hill, rural, coastal, desert)")
	cmd.Flags().StringVar(&search, "q", "", "Case-insensitive name search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}
