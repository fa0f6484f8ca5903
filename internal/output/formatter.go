// Package output renders validation reports for the terminal or for tools.
package output

import (
	"fmt"

	"github.com/julianshen/skillbox/internal/validate"
)

// Report is the result of a validation run over one or more documents.
type Report struct {
	Root    string            `json:"root,omitempty"`
	Results []validate.Result `json:"results"`
	Summary Summary           `json:"summary"`
	// IOErrors lists documents that could not be read at all.
	IOErrors []string `json:"io_errors,omitempty"`
}

// Summary provides aggregate counts across a Report.
type Summary struct {
	Documents int  `json:"documents"`
	Passed    int  `json:"passed"`
	Warned    int  `json:"warned"`
	Failed    int  `json:"failed"`
	Errors    int  `json:"errors"`
	Warnings  int  `json:"warnings"`
	OK        bool `json:"ok"`
}

// NewReport tallies results into a Report.
func NewReport(root string, results []validate.Result) *Report {
	r := &Report{Root: root, Results: results}
	if r.Results == nil {
		r.Results = []validate.Result{}
	}
	for _, res := range results {
		r.Summary.Documents++
		r.Summary.Errors += res.Errors()
		r.Summary.Warnings += res.Warnings()
		switch res.Status() {
		case "fail":
			r.Summary.Failed++
		case "warn":
			r.Summary.Warned++
		default:
			r.Summary.Passed++
		}
	}
	r.Summary.OK = r.Summary.Errors == 0
	return r
}

// AddIOError records a document that could not be read. It makes the report
// fail.
func (r *Report) AddIOError(err error) {
	r.IOErrors = append(r.IOErrors, err.Error())
	r.Summary.OK = false
}

// Formatter formats a Report into output bytes.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTextFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "markdown", "md":
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, or markdown)", name)
	}
}
