// internal/domain/models/organization.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// RegistrationDateLayout is the layout of Organization.DateRegistered.
const RegistrationDateLayout = "2006-01-02"

// Organization is one non-profit listed in the directory.
//
// Records come from the dataset provider and are read-only for the lifetime
// of the process. Optional fields are omitted from JSON when empty.
type Organization struct {
	ID               int    `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	LogoURL          string `yaml:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Sector           string `yaml:"sector" json:"sector"`
	PrimaryObjective string `yaml:"primaryObjective" json:"primaryObjective"`
	Theme            string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// Location
	Address       string `yaml:"address" json:"address"`
	City          string `yaml:"city" json:"city"`
	Province      string `yaml:"province" json:"province"`
	PostalAddress string `yaml:"postalAddress,omitempty" json:"postalAddress,omitempty"`
	PostalCode    string `yaml:"postalCode,omitempty" json:"postalCode,omitempty"`

	// Contact
	ContactPerson string `yaml:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	ContactNumber string `yaml:"contactNumber" json:"contactNumber"`
	FaxNumber     string `yaml:"faxNumber,omitempty" json:"faxNumber,omitempty"`
	Email         string `yaml:"email,omitempty" json:"email,omitempty"`
	Website       string `yaml:"website,omitempty" json:"website,omitempty"`

	// Legal
	DateRegistered     string `yaml:"dateRegistered" json:"dateRegistered"`
	RegistrationNumber string `yaml:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	ComplianceStatus   string `yaml:"complianceStatus,omitempty" json:"complianceStatus,omitempty"` // PSIRA / DSD / SARS

	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// Banking gates the donate action: no details, no donate button.
	BankingDetails *BankingDetails `yaml:"bankingDetails,omitempty" json:"bankingDetails,omitempty"`

	AssociatedDocuments []Document `yaml:"associatedDocuments,omitempty" json:"associatedDocuments,omitempty"`

	// Activity & impact
	BeneficiariesReached *int     `yaml:"beneficiariesReached,omitempty" json:"beneficiariesReached,omitempty"`
	CurrentProjects      []string `yaml:"currentProjects,omitempty" json:"currentProjects,omitempty"`
	PastProjects         []string `yaml:"pastProjects,omitempty" json:"pastProjects,omitempty"`
	FundingSources       []string `yaml:"fundingSources,omitempty" json:"fundingSources,omitempty"`
	DonorEngagementLevel string   `yaml:"donorEngagementLevel,omitempty" json:"donorEngagementLevel,omitempty"` // High | Medium | Low
}

// Document is a named link attached to an organization.
type Document struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// BankingDetails holds the EFT details shown in the donate dialog.
type BankingDetails struct {
	BankName      string `yaml:"bankName" json:"bankName"`
	AccountHolder string `yaml:"accountHolder" json:"accountHolder"`
	AccountNumber string `yaml:"accountNumber" json:"accountNumber"`
	BranchCode    string `yaml:"branchCode" json:"branchCode"`
	AccountType   string `yaml:"accountType" json:"accountType"`
}

// CanDonate reports whether the donate action is offered for o.
func (o Organization) CanDonate() bool {
	return o.BankingDetails != nil
}

// RegisteredAt parses DateRegistered. Full RFC 3339 timestamps are accepted
// as well as plain dates.
func (o Organization) RegisteredAt() (time.Time, error) {
	s := strings.TrimSpace(o.DateRegistered)
	if t, err := time.Parse(RegistrationDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// RegistrationYear returns the year of DateRegistered, or ok=false when the
// date cannot be parsed.
func (o Organization) RegistrationYear() (year int, ok bool) {
	t, err := o.RegisteredAt()
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// ClipboardText renders the details as the plain text block copied by the
// donate dialog.
func (b BankingDetails) ClipboardText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bank Name: %s\n", b.BankName)
	fmt.Fprintf(&sb, "Account Holder: %s\n", b.AccountHolder)
	fmt.Fprintf(&sb, "Account Number: %s\n", b.AccountNumber)
	fmt.Fprintf(&sb, "Branch Code: %s\n", b.BranchCode)
	fmt.Fprintf(&sb, "Account Type: %s\n", b.AccountType)
	sb.WriteString("Reference: Donation")
	return sb.String()
}

// Fields returns the banking details as ordered label/value pairs for display.
func (b BankingDetails) Fields() []Field {
	return []Field{
		{Label: "Bank Name", Value: b.BankName},
		{Label: "Account Holder", Value: b.AccountHolder},
		{Label: "Account Number", Value: b.AccountNumber},
		{Label: "Branch Code", Value: b.BranchCode},
		{Label: "Account Type", Value: b.AccountType},
	}
}

// Field is a display label paired with its value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
