package risk

import "strings"

// Severity is the overall risk rating derived from the finding count.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Assessment is the result of scoring one contract text.
type Assessment struct {
	Findings []string `json:"findings"`
	Level    Severity `json:"level"`
}

// rule maps a set of trigger keywords to a clause finding. A rule fires at
// most once per text, regardless of how often its keywords occur.
type rule struct {
	keywords []string
	finding  string
}

// checklist order is fixed; findings are always reported in this order.
var checklist = []rule{
	{keywords: []string{"terminate"}, finding: "Unilateral termination clause"},
	{keywords: []string{"indemnify", "indemnity"}, finding: "Unlimited indemnity clause"},
	{keywords: []string{"jurisdiction"}, finding: "Foreign jurisdiction clause"},
}

// Score scans text for the fixed risk checklist. Matching is
// case-insensitive substring membership. Score never fails: empty text
// yields no findings and a Low severity.
func Score(text string) Assessment {
	lowered := strings.ToLower(text)

	var findings []string
	for _, r := range checklist {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				findings = append(findings, r.finding)
				break
			}
		}
	}

	return Assessment{
		Findings: findings,
		Level:    severityForCount(len(findings)),
	}
}

func severityForCount(n int) Severity {
	switch {
	case n >= 2:
		return SeverityHigh
	case n == 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
