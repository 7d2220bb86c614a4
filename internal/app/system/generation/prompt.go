// internal/app/system/generation/prompt.go
package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// ChatSystemInstruction establishes the assistant persona for chat sessions.
const ChatSystemInstruction = "You are an expert consultant for Non-Profit Organisations in South Africa. You provide clear, actionable advice on topics like fundraising, governance, marketing, and operations. Your tone is professional, encouraging, and helpful. Format your responses with Markdown for readability."

var proposalTmpl = template.Must(template.New("proposal").Parse(`Act as an expert non-profit grant writer and business consultant in South Africa.
Based on the following information, generate a comprehensive and persuasive business proposal suitable for funding applications.

**NPO Name:** {{.NpoName}}
**NPO Mission Statement:** {{.NpoMission}}
**Project Title:** {{.ProjectTitle}}
**Executive Summary:** {{.ProjectSummary}}
**1. Introduction & Problem Statement:** Expand on: {{.ProblemStatement}}
**2. Proposed Solution & Project Description:** Based on solution: {{.Solution}} and activities: {{.Activities}}
**3. Target Audience / Beneficiaries:** Detail for: {{.TargetAudience}}
**4. Budget Overview:** Summarize for: {{.Budget}}
**5. Expected Outcomes & Impact Measurement:** Based on: {{.Outcomes}}
**6. Organizational Background:** Use NPO Name and Mission.
**7. Conclusion:** Write a strong, persuasive call to action.

**Instructions:**
- Structure as a formal document with clear Markdown headings (e.g., "## 1. Introduction").
- Use professional, formal, and compelling language.
- Ensure the output is well-formatted and readable.
`))

var monthlyReportTmpl = template.Must(template.New("monthly-report").Parse(`Act as an NPO management consultant. Generate a professional monthly report for "{{.NpoName}}" for the period of "{{.ReportingPeriod}}".

Structure the report with the following sections using Markdown:
1.  **Executive Summary:** A brief overview of the month's performance.
2.  **Key Achievements & Highlights:** Based on: {{.Highlights}}
3.  **Challenges Encountered:** Based on: {{.Challenges}}
4.  **Impact Metrics:** Include:
    - Beneficiaries Reached: {{.BeneficiariesReached}}
    - Funds Raised: {{.FundsRaised}}
5.  **Goals for Next Month:** Based on: {{.GoalsNextMonth}}
6.  **Conclusion:** A brief closing statement.

Use clear, concise, and professional language.
`))

var donorMatchTmpl = template.Must(template.New("donor-match").Parse(`I am a Non-Profit Organisation in {{.Region}}, South Africa.
Our mission is: "{{.NpoMission}}".
We are currently seeking funding for: "{{.FundingNeeds}}".

Based on this information, please identify 5 potential corporate donors, foundations, or grant-making institutions in South Africa that have a history of supporting similar causes.

For each potential donor, provide a brief summary of why they are a good match.
`))

// Prompt renders the completion prompt for req.
func Prompt(req Request) (string, error) {
	var tmpl *template.Template
	switch req.(type) {
	case ProposalData, *ProposalData:
		tmpl = proposalTmpl
	case MonthlyReportData, *MonthlyReportData:
		tmpl = monthlyReportTmpl
	case DonorMatchData, *DonorMatchData:
		tmpl = donorMatchTmpl
	default:
		return "", fmt.Errorf("unknown request type %T", req)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", req.Kind(), err)
	}
	return buf.String(), nil
}
