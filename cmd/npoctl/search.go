package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dalemusser/npoconnect/internal/app/system/directory"
	"github.com/dalemusser/npoconnect/internal/app/system/paging"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the organization directory",
	Long: `Search filters the directory by name substring, city, sector and year of
registration, then prints one page of the matches.

Examples:
  npoctl search --city Soweto
  npoctl search --name trust --sector Health --view table
  npoctl search --year 2015 --page 2 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := loadDataset()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		city, _ := flags.GetString("city")
		sector, _ := flags.GetString("sector")
		year, _ := flags.GetString("year")
		page, _ := flags.GetInt("page")
		pageSize, _ := flags.GetInt("page-size")
		mode, _ := flags.GetString("view")
		asJSON, _ := flags.GetBool("json")

		filters := directory.FilterState{Name: name, City: city, Sector: sector, Year: year}
		v := directory.BuildView(orgs.All(), filters, max(page, 1), pageSize, directory.ParseViewMode(mode))

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), v)
		}
		return printView(cmd.OutOrStdout(), v)
	},
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the cities, sectors and years available as filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := loadDataset()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), orgs.Facets())
		}
		return printFacets(cmd.OutOrStdout(), orgs.Facets())
	},
}

func init() {
	searchCmd.Flags().String("name", "", "case-insensitive name substring")
	searchCmd.Flags().String("city", "", "exact city")
	searchCmd.Flags().String("sector", "", "exact sector")
	searchCmd.Flags().String("year", "", "year of registration")
	searchCmd.Flags().Int("page", 1, "page number")
	searchCmd.Flags().Int("page-size", paging.PageSize, "results per page")
	searchCmd.Flags().String("view", string(directory.ViewTable), "card or table")
	searchCmd.Flags().Bool("json", false, "print the page as JSON")

	facetsCmd.Flags().Bool("json", false, "print the facets as JSON")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(facetsCmd)
}

// printView writes a page of results in the layout its mode asks for.
func printView(w io.Writer, v directory.View) error {
	if v.Empty() {
		fmt.Fprintln(w, "No organizations match your criteria.")
		return nil
	}

	if v.Mode == directory.ViewTable {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCITY\tSECTOR\tREGISTERED")
		for _, o := range v.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.Name, o.City, o.Sector, o.DateRegistered)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	} else {
		for _, o := range v.Items {
			fmt.Fprintf(w, "[%d] %s\n", o.ID, o.Name)
			fmt.Fprintf(w, "    %s | %s\n", o.Sector, o.City)
			if o.PrimaryObjective != "" {
				fmt.Fprintf(w, "    %s\n", o.PrimaryObjective)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, v.Summary)
	if v.TotalPages > 1 {
		fmt.Fprintf(w, "Page %d of %d\n", v.Page, v.TotalPages)
	}
	return nil
}

func printFacets(w io.Writer, fs directory.FacetSets) error {
	years := make([]string, len(fs.Years))
	for i, y := range fs.Years {
		years[i] = fmt.Sprint(y)
	}
	_, err := fmt.Fprintf(w, "Cities:  %s\nSectors: %s\nYears:   %s\n",
		strings.Join(fs.Cities, ", "),
		strings.Join(fs.Sectors, ", "),
		strings.Join(years, ", "))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
