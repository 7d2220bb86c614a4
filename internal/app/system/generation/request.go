// internal/app/system/generation/request.go
package generation

import (
	"strings"
)

// Kind identifies a generation tool.
type Kind string

const (
	KindProposal      Kind = "proposal"
	KindMonthlyReport Kind = "monthly-report"
	KindDonorMatch    Kind = "donor-match"
)

// Request is one of ProposalData, MonthlyReportData or DonorMatchData.
type Request interface {
	Kind() Kind
	// Validate reports missing required fields.
	Validate() error
	isRequest()
}

// ProposalData is the proposal wizard payload. Every field is required.
type ProposalData struct {
	NpoName          string `json:"npoName" yaml:"npoName"`
	NpoMission       string `json:"npoMission" yaml:"npoMission"`
	ProjectTitle     string `json:"projectTitle" yaml:"projectTitle"`
	ProjectSummary   string `json:"projectSummary" yaml:"projectSummary"`
	ProblemStatement string `json:"problemStatement" yaml:"problemStatement"`
	Solution         string `json:"solution" yaml:"solution"`
	TargetAudience   string `json:"targetAudience" yaml:"targetAudience"`
	Activities       string `json:"activities" yaml:"activities"`
	Budget           string `json:"budget" yaml:"budget"`
	Outcomes         string `json:"outcomes" yaml:"outcomes"`
}

func (ProposalData) Kind() Kind { return KindProposal }
func (ProposalData) isRequest() {}

func (d ProposalData) Validate() error {
	return required(
		field{"npoName", d.NpoName},
		field{"npoMission", d.NpoMission},
		field{"projectTitle", d.ProjectTitle},
		field{"projectSummary", d.ProjectSummary},
		field{"problemStatement", d.ProblemStatement},
		field{"solution", d.Solution},
		field{"targetAudience", d.TargetAudience},
		field{"activities", d.Activities},
		field{"budget", d.Budget},
		field{"outcomes", d.Outcomes},
	)
}

// MonthlyReportData is the monthly report payload. Every field is required.
type MonthlyReportData struct {
	NpoName              string `json:"npoName" yaml:"npoName"`
	ReportingPeriod      string `json:"reportingPeriod" yaml:"reportingPeriod"`
	Highlights           string `json:"highlights" yaml:"highlights"`
	Challenges           string `json:"challenges" yaml:"challenges"`
	BeneficiariesReached string `json:"beneficiariesReached" yaml:"beneficiariesReached"`
	FundsRaised          string `json:"fundsRaised" yaml:"fundsRaised"`
	GoalsNextMonth       string `json:"goalsNextMonth" yaml:"goalsNextMonth"`
}

func (MonthlyReportData) Kind() Kind { return KindMonthlyReport }
func (MonthlyReportData) isRequest() {}

func (d MonthlyReportData) Validate() error {
	return required(
		field{"npoName", d.NpoName},
		field{"reportingPeriod", d.ReportingPeriod},
		field{"highlights", d.Highlights},
		field{"challenges", d.Challenges},
		field{"beneficiariesReached", d.BeneficiariesReached},
		field{"fundsRaised", d.FundsRaised},
		field{"goalsNextMonth", d.GoalsNextMonth},
	)
}

// DonorMatchData is the donor matching payload. Every field is required.
type DonorMatchData struct {
	NpoMission   string `json:"npoMission" yaml:"npoMission"`
	FundingNeeds string `json:"fundingNeeds" yaml:"fundingNeeds"`
	Region       string `json:"region" yaml:"region"`
}

func (DonorMatchData) Kind() Kind { return KindDonorMatch }
func (DonorMatchData) isRequest() {}

func (d DonorMatchData) Validate() error {
	return required(
		field{"npoMission", d.NpoMission},
		field{"fundingNeeds", d.FundingNeeds},
		field{"region", d.Region},
	)
}

type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}
