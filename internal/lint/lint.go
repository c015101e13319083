// Package lint inspects profile documents and reports findings by severity.
// Errors are documents the generator would refuse to load; warnings are legal
// constructs that usually indicate a mistake; notes are housekeeping.
package lint

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/promptloom-dev/promptloom/internal/profile"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Rule identifiers, stable across releases so findings can be filtered and
// mapped into code-scanning tools.
const (
	RuleNotFound         = "profile-not-found"
	RuleRead             = "profile-unreadable"
	RuleParse            = "profile-parse"
	RuleSchema           = "profile-schema"
	RuleUnknownReference = "template-unknown-pool"
	RuleUnreferenced     = "pool-unreferenced"
	RuleDuplicateValue   = "pool-duplicate-value"
	RuleMissingMetadata  = "metadata-missing"
	RuleVersionFormat    = "metadata-version-format"
)

// Finding is a single diagnostic attached to one profile.
type Finding struct {
	Profile  string   `json:"profile"`
	Path     string   `json:"path"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the outcome of linting a set of profiles.
type Report struct {
	Checked  int       `json:"checked"`
	Findings []Finding `json:"findings"`
}

// Counts returns the number of findings per severity.
func (r *Report) Counts() (errs, warnings, notes int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		case SeverityNote:
			notes++
		}
	}
	return errs, warnings, notes
}

// Failed reports whether the lint run should fail. Errors always fail;
// strict mode promotes warnings into the failing class.
func (r *Report) Failed(strict bool) bool {
	errs, warnings, _ := r.Counts()
	if strict {
		return errs+warnings > 0
	}
	return errs > 0
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Linter loads and checks profiles from one directory.
type Linter struct {
	loader *profile.Loader
}

// New creates a linter over the given loader.
func New(loader *profile.Loader) *Linter {
	return &Linter{loader: loader}
}

// Run lints the given profile ids in order and aggregates the findings.
func (l *Linter) Run(ids []string) *Report {
	report := &Report{Checked: len(ids)}
	for _, id := range ids {
		report.Findings = append(report.Findings, l.lint(id)...)
	}
	return report
}

func (l *Linter) lint(id string) []Finding {
	path := l.loader.Path(id)
	finding := func(rule string, severity Severity, format string, args ...any) Finding {
		return Finding{
			Profile:  id,
			Path:     path,
			Rule:     rule,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		}
	}

	p, err := l.loader.Load(id)
	if err != nil {
		var parseErr *profile.ParseError
		var schemaErr *profile.SchemaError
		switch {
		case errors.Is(err, profile.ErrNotFound):
			return []Finding{finding(RuleNotFound, SeverityError, "profile does not exist")}
		case errors.As(err, &parseErr):
			return []Finding{finding(RuleParse, SeverityError, "malformed JSON: %v", parseErr.Err)}
		case errors.As(err, &schemaErr):
			out := make([]Finding, 0, len(schemaErr.Issues))
			for _, issue := range schemaErr.Issues {
				out = append(out, finding(RuleSchema, SeverityError, "%s", issue.String()))
			}
			return out
		default:
			return []Finding{finding(RuleRead, SeverityError, "%v", err)}
		}
	}

	var findings []Finding

	known := make(map[string]bool, len(p.Pools))
	for _, pool := range p.Pools {
		known[pool.Name] = true
	}

	// Templates referencing unknown pools render them literally at runtime.
	referenced := make(map[string]bool)
	for i, template := range p.Templates {
		for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
			name := m[1]
			if known[name] {
				referenced[name] = true
				continue
			}
			findings = append(findings, finding(RuleUnknownReference, SeverityWarning,
				"template %d references unknown pool {%s}; it will stay literal in output", i, name))
		}
	}

	for _, pool := range p.Pools {
		if !referenced[pool.Name] {
			findings = append(findings, finding(RuleUnreferenced, SeverityWarning,
				"pool %q is never referenced by a template (it still consumes a coordinate slot)", pool.Name))
		}

		seen := make(map[string]int, len(pool.Values))
		for _, v := range pool.Values {
			seen[v]++
		}
		for _, v := range pool.Values {
			if seen[v] > 1 {
				findings = append(findings, finding(RuleDuplicateValue, SeverityWarning,
					"pool %q lists %q %d times, skewing its selection odds", pool.Name, v, seen[v]))
				seen[v] = 0
			}
		}
	}

	if p.Name == "" {
		findings = append(findings, finding(RuleMissingMetadata, SeverityNote, "profile has no name"))
	}
	if p.Description == "" {
		findings = append(findings, finding(RuleMissingMetadata, SeverityNote, "profile has no description"))
	}
	if p.Version != "" {
		if _, err := semver.StrictNewVersion(p.Version); err != nil {
			findings = append(findings, finding(RuleVersionFormat, SeverityNote,
				"version %q is not semantic versioning (X.Y.Z)", p.Version))
		}
	}

	return findings
}
