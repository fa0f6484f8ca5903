package validate

// Severity classifies a Finding. Only SeverityError affects the outcome of a run.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers, reported verbatim in every Finding.
const (
	RuleDelimiterStart     = "delimiter-start"
	RuleDelimiterClose     = "delimiter-close"
	RuleNameFormat         = "name-format"
	RuleNameFolderMatch    = "name-folder-match"
	RuleDescriptionPresent = "description-present"
	RuleDescriptionLength  = "description-length"
	RuleDescriptionTrigger = "description-trigger"
	RuleScopeMatch         = "scope-match"
	RuleVersionFormat      = "version-format"
	RuleHasSections        = "has-sections"
)

// Finding is one rule violation.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the outcome of validating a single document.
type Result struct {
	Path     string    `json:"path"`
	Category string    `json:"category"`
	Name     string    `json:"name"`
	Findings []Finding `json:"findings"`
}

// Errors counts error-severity findings.
func (r Result) Errors() int { return r.count(SeverityError) }

// Warnings counts warning-severity findings.
func (r Result) Warnings() int { return r.count(SeverityWarning) }

func (r Result) count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Status is "fail" when any error was found, "warn" when only warnings were
// found, and "pass" otherwise.
func (r Result) Status() string {
	switch {
	case r.Errors() > 0:
		return "fail"
	case r.Warnings() > 0:
		return "warn"
	default:
		return "pass"
	}
}

// Has reports whether the result contains a finding for rule.
func (r Result) Has(rule string) bool {
	for _, f := range r.Findings {
		if f.Rule == rule {
			return true
		}
	}
	return false
}

// HasErrors reports whether any result failed.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Errors() > 0 {
			return true
		}
	}
	return false
}
