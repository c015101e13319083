package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/promptloom-dev/promptloom/internal/lint"
	"github.com/promptloom-dev/promptloom/internal/version"
)

// SARIFFormatter renders lint reports as SARIF 2.1.0 JSON so findings can
// flow into code-scanning dashboards. Other payloads are rejected.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout)
//	if err := formatter.Format(report); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// ruleDescriptions holds the short description published for each rule id.
var ruleDescriptions = map[string]string{
	lint.RuleNotFound:         "Profile file does not exist",
	lint.RuleRead:             "Profile file could not be read",
	lint.RuleParse:            "Profile is not valid JSON",
	lint.RuleSchema:           "Profile violates the document schema",
	lint.RuleUnknownReference: "Template references an undeclared pool",
	lint.RuleUnreferenced:     "Pool is never referenced by any template",
	lint.RuleDuplicateValue:   "Pool contains duplicate values",
	lint.RuleMissingMetadata:  "Optional metadata is missing",
	lint.RuleVersionFormat:    "Version is not a semantic version",
}

// Format writes the lint report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(v any) error {
	report, ok := v.(*lint.Report)
	if !ok {
		return fmt.Errorf("sarif format supports lint reports only, got %T", v)
	}

	doc := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("promptloom", "https://github.com/promptloom-dev/promptloom")
	run.Tool.Driver.Version = ptrString(version.Version)

	addRules(run, report)
	addResults(run, report)
	addInvocation(run, report)

	doc.AddRun(run)

	if err := doc.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

// addRules publishes one reporting descriptor per rule id that produced a
// finding, in first-seen order.
func addRules(run *sarif.Run, report *lint.Report) {
	seen := make(map[string]bool)
	for _, finding := range report.Findings {
		if seen[finding.Rule] {
			continue
		}
		seen[finding.Rule] = true

		desc := ruleDescriptions[finding.Rule]
		if desc == "" {
			desc = finding.Rule
		}

		rule := sarif.NewReportingDescriptor().WithID(finding.Rule)
		rule.WithName(finding.Rule)
		rule.WithShortDescription(&sarif.MultiformatMessageString{
			Text: &desc,
		})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: severityToLevel(finding.Severity),
		})

		run.Tool.Driver.AddRule(rule)
	}
}

// addResults converts findings to SARIF results, registering each profile
// file as an artifact once.
func addResults(run *sarif.Run, report *lint.Report) {
	artifacts := make(map[string]bool)
	for _, finding := range report.Findings {
		result := sarif.NewRuleResult(finding.Rule)
		result.Level = severityToLevel(finding.Severity)
		result.Kind = severityToKind(finding.Severity)
		result.Message = sarif.NewTextMessage(finding.Message)

		if finding.Path != "" {
			uri := filepath.ToSlash(finding.Path)
			pLoc := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))
			result.Locations = []*sarif.Location{sarif.NewLocation().WithPhysicalLocation(pLoc)}

			if !artifacts[uri] {
				artifacts[uri] = true
				run.AddArtifact(sarif.NewArtifact().
					WithLocation(sarif.NewArtifactLocation().WithURI(uri)))
			}
		}

		props := sarif.NewPropertyBag()
		props.Add("profile", finding.Profile)
		result.WithProperties(props)

		run.AddResult(result)
	}
}

// addInvocation records where the lint ran and its severity totals.
func addInvocation(run *sarif.Run, report *lint.Report) {
	invocation := sarif.NewInvocation()
	invocation.ExecutionSuccessful = ptrBool(!report.Failed(false))

	if hostname, err := os.Hostname(); err == nil {
		invocation.Machine = &hostname
	}
	if cwd, err := os.Getwd(); err == nil {
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(cwd))
	}

	errs, warnings, notes := report.Counts()
	props := sarif.NewPropertyBag()
	props.Add("profilesChecked", report.Checked)
	props.Add("errors", errs)
	props.Add("warnings", warnings)
	props.Add("notes", notes)
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

// severityToLevel converts a lint severity to a SARIF level.
func severityToLevel(s lint.Severity) string {
	switch s {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	case lint.SeverityNote:
		return "note"
	default:
		return "none"
	}
}

// severityToKind converts a lint severity to a SARIF result kind.
func severityToKind(s lint.Severity) string {
	switch s {
	case lint.SeverityError, lint.SeverityWarning:
		return "fail"
	case lint.SeverityNote:
		return "informational"
	default:
		return "fail"
	}
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
