package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/promptloom-dev/promptloom/internal/generator"
	"github.com/promptloom-dev/promptloom/internal/lint"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter renders payloads as human-readable terminal tables.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// rule prints an 80-column horizontal separator.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) rule() {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

// Format renders the payload as a table. Payload types the table renderer
// does not know are rejected rather than dumped as Go syntax.
func (f *TableFormatter) Format(v any) error {
	switch v := v.(type) {
	case GenerateView:
		f.formatGenerate(v)
	case *GenerateView:
		f.formatGenerate(*v)
	case *generator.BatchResult:
		f.formatBatch(v)
	case generator.InfoReport:
		f.formatInfo(v)
	case *generator.InfoReport:
		f.formatInfo(*v)
	case []ProfileSummary:
		f.formatProfiles(v)
	case []generator.Category:
		f.formatCategories(v)
	case *lint.Report:
		f.formatLint(v)
	case MixView:
		f.formatMix(v)
	default:
		return fmt.Errorf("table format does not support %T", v)
	}
	return nil
}

// formatGenerate renders a single generation with its coordinates.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatGenerate(v GenerateView) {
	f.rule()
	fmt.Fprintf(f.writer, "Profile: %s\n", f.colorize(v.ProfileID, colorBold))
	fmt.Fprintf(f.writer, "Seed: %d  Index: %d  Template: %d\n", v.Seed, v.Index, v.Template)
	f.rule()
	fmt.Fprintln(f.writer, v.Text)

	if len(v.Picks) > 0 {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, f.colorize("Picks:", colorBold))
		for _, p := range v.Picks {
			fmt.Fprintf(f.writer, "  %s: %s\n", f.colorize(p.Pool, colorCyan), p.Value)
		}
	}

	if v.Fallback {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, f.colorize("⚠ Unknown placeholders were left as-is.", colorYellow))
	}
}

// formatBatch renders a batch run header followed by its items.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatBatch(r *generator.BatchResult) {
	f.rule()
	fmt.Fprintf(f.writer, "Profile: %s\n", f.colorize(r.ProfileID, colorBold))
	fmt.Fprintf(f.writer, "Run: %s\n", r.RunID)
	fmt.Fprintf(f.writer, "Seed: %d  Start: %d  Generated: %d\n", r.Seed, r.Start, r.Generated)
	fmt.Fprintf(f.writer, "Started: %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", r.Duration.Round(time.Millisecond))
	f.rule()

	for _, item := range r.Items {
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize(fmt.Sprintf("[%d]", item.Index), colorCyan), item.Text)
	}
}

// formatInfo renders profile metadata, pool sizes, and the combination count.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatInfo(r generator.InfoReport) {
	fmt.Fprintf(f.writer, "Profile: %s\n", f.colorize(r.Name, colorBold))
	fmt.Fprintf(f.writer, "Description: %s\n", orNA(r.Description))
	fmt.Fprintf(f.writer, "Version: %s\n", orNA(r.Version))
	fmt.Fprintln(f.writer)

	fmt.Fprintln(f.writer, f.colorize("Pool Sizes:", colorBold))
	for _, p := range r.Pools {
		fmt.Fprintf(f.writer, "  %s: %d entries\n", f.colorize(p.Name, colorCyan), p.Size)
	}
	fmt.Fprintf(f.writer, "  templates: %d variations\n", r.Templates)
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "Total unique prompts: %s\n", groupDigits(r.Combinations))
	fmt.Fprintf(f.writer, "Scientific notation: %s\n", r.Scientific)
}

// formatProfiles renders one aligned row per profile.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatProfiles(profiles []ProfileSummary) {
	if len(profiles) == 0 {
		fmt.Fprintln(f.writer, "No profiles found.")
		return
	}

	idWidth := len("PROFILE")
	nameWidth := len("NAME")
	for _, p := range profiles {
		if len(p.ID) > idWidth {
			idWidth = len(p.ID)
		}
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-8s  %9s  %5s  %s",
		idWidth, "PROFILE", nameWidth, "NAME", "VERSION", "TEMPLATES", "POOLS", "COMBINATIONS")
	fmt.Fprintln(f.writer, f.colorize(header, colorBold))
	f.rule()

	for _, p := range profiles {
		version := p.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(f.writer, "%-*s  %-*s  %-8s  %9d  %5d  %s\n",
			idWidth, p.ID, nameWidth, p.Name, version, p.Templates, p.Pools, groupDigits(p.Combinations))
	}
}

// formatCategories renders each category with its default profile and filters.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatCategories(categories []generator.Category) {
	for i, c := range categories {
		if i > 0 {
			fmt.Fprintln(f.writer)
		}
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize(c.Name, colorBold), f.colorize("("+c.Title+")", colorGray))
		fmt.Fprintf(f.writer, "  Default profile: %s\n", c.DefaultProfile)
		for _, flt := range c.Filters {
			fmt.Fprintf(f.writer, "  Filter %s: %s\n", f.colorize(flt.Name, colorCyan), strings.Join(flt.Choices, ", "))
		}
	}
}

// formatLint renders findings grouped by profile, then the severity totals.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatLint(r *lint.Report) {
	if len(r.Findings) == 0 {
		fmt.Fprintf(f.writer, "%s %d profile(s) checked, no findings\n", f.colorize("✓", colorGreen), r.Checked)
		return
	}

	current := ""
	for _, finding := range r.Findings {
		if finding.Profile != current {
			if current != "" {
				fmt.Fprintln(f.writer)
			}
			current = finding.Profile
			fmt.Fprintf(f.writer, "%s %s\n", f.colorize(current, colorBold), f.colorize("("+finding.Path+")", colorGray))
		}
		symbol, color := f.severityInfo(finding.Severity)
		fmt.Fprintf(f.writer, "  %s %s %s\n", f.colorize(symbol, color), f.colorize(finding.Rule+":", color), finding.Message)
	}

	fmt.Fprintln(f.writer)
	f.rule()
	errs, warnings, notes := r.Counts()
	fmt.Fprintf(f.writer, "%d profile(s) checked: %s, %s, %s\n",
		r.Checked,
		f.colorize(fmt.Sprintf("%d error(s)", errs), colorRed),
		f.colorize(fmt.Sprintf("%d warning(s)", warnings), colorYellow),
		f.colorize(fmt.Sprintf("%d note(s)", notes), colorGray))
}

// formatMix renders the mix inputs and the derived seed.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatMix(v MixView) {
	for i, in := range v.Inputs {
		fmt.Fprintf(f.writer, "seed[%d]: %d\n", i, in)
	}
	fmt.Fprintf(f.writer, "mixed:   %s (%s)\n", f.colorize(fmt.Sprintf("%d", v.Mixed), colorBold), v.Hex)
}

// severityInfo returns a symbol and color for the given severity.
func (f *TableFormatter) severityInfo(s lint.Severity) (string, string) {
	switch s {
	case lint.SeverityError:
		return "✗", colorRed
	case lint.SeverityWarning:
		return "⚠", colorYellow
	case lint.SeverityNote:
		return "·", colorGray
	default:
		return "?", colorReset
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// groupDigits inserts thousands separators into a decimal integer string.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
