package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dalemusser/npoconnect/internal/domain/models"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one organization in full",
	Long: `Show prints every detail held for an organization. With --donate it prints
only the banking details block, ready to paste into a banking app.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid organization id %q", args[0])
		}
		orgs, err := loadDataset()
		if err != nil {
			return err
		}
		o, ok := orgs.ByID(id)
		if !ok {
			return fmt.Errorf("organization %d not found", id)
		}

		out := cmd.OutOrStdout()
		if donate, _ := cmd.Flags().GetBool("donate"); donate {
			if !o.CanDonate() {
				return fmt.Errorf("banking details not available for %s", o.Name)
			}
			_, err := fmt.Fprintln(out, o.BankingDetails.ClipboardText())
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, o)
		}
		printOrganization(out, o)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("donate", false, "print only the donation banking details")
	showCmd.Flags().Bool("json", false, "print the record as JSON")
	rootCmd.AddCommand(showCmd)
}

func printOrganization(w io.Writer, o models.Organization) {
	fmt.Fprintln(w, o.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(o.Name)))

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-22s %s\n", label+":", value)
		}
	}
	list := func(label string, values []string) {
		if len(values) > 0 {
			line(label, strings.Join(values, "; "))
		}
	}

	line("Sector", o.Sector)
	line("Objective", o.PrimaryObjective)
	line("Theme", o.Theme)
	line("Address", o.Address)
	line("City", o.City)
	line("Province", o.Province)
	line("Postal address", strings.TrimSpace(o.PostalAddress+" "+o.PostalCode))
	line("Contact person", o.ContactPerson)
	line("Contact number", o.ContactNumber)
	line("Fax", o.FaxNumber)
	line("Email", o.Email)
	line("Website", o.Website)
	line("Registered", o.DateRegistered)
	line("Registration number", o.RegistrationNumber)
	line("Compliance", o.ComplianceStatus)
	if o.BeneficiariesReached != nil {
		line("Beneficiaries reached", strconv.Itoa(*o.BeneficiariesReached))
	}
	list("Current projects", o.CurrentProjects)
	list("Past projects", o.PastProjects)
	list("Funding sources", o.FundingSources)
	line("Donor engagement", o.DonorEngagementLevel)
	list("Keywords", o.Keywords)

	for _, d := range o.AssociatedDocuments {
		line("Document", d.Name+" <"+d.URL+">")
	}

	if o.CanDonate() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Banking details")
		for _, f := range o.BankingDetails.Fields() {
			line(f.Label, f.Value)
		}
	}
}
