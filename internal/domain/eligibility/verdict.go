package eligibility

// Verdict is the allow/deny decision for one food and one profile
type Verdict struct {
	IsAllowed bool     `json:"isAllowed"`
	Issues    []string `json:"issues"`
	Warnings  []string `json:"warnings"`
}

func newVerdict() Verdict {
	return Verdict{IsAllowed: true, Issues: []string{}, Warnings: []string{}}
}

func (v *Verdict) deny(issue string) {
	v.IsAllowed = false
	v.Issues = append(v.Issues, issue)
}

func (v *Verdict) warn(warning string) {
	v.Warnings = append(v.Warnings, warning)
}

// FirstIssue returns the leading denial reason, or "" when allowed
func (v Verdict) FirstIssue() string {
	if len(v.Issues) == 0 {
		return ""
	}
	return v.Issues[0]
}
