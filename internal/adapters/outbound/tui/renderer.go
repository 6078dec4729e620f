package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	mustTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	shouldStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	entityStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	columnStyle   = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a full compliance report for the terminal.
func RenderReport(result *domain.ValidationResult) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("schemaguard")
	subtitle := dimStyle.Render("Schema Compliance Report")
	verdict := verdictLine(result.Summary)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	// ── Run metadata ──
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("scope %s   prefix %s   %d ms",
		result.Metadata.ScopeDescription,
		result.Metadata.PublisherPrefix,
		result.Metadata.ExecutionTimeMs)))
	if result.Metadata.CommitHash != "" {
		b.WriteString(dimStyle.Render("   commit " + shortHash(result.Metadata.CommitHash)))
	}
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf(
		"%d tables, %d columns checked   %d compliant   excluded: %d system, %d old, %d ref-data",
		result.Summary.EntitiesChecked,
		result.Summary.AttributesChecked,
		result.Summary.CompliantEntities,
		result.Statistics.SystemColumnsExcluded,
		result.Statistics.OldColumnsExcluded,
		result.Statistics.RefDataTablesSkipped)))
	b.WriteString("\n\n")

	// ── Rule groups ──
	if len(result.ViolationsSummary) > 0 {
		b.WriteString("  " + titleStyle.Render("Violations by rule"))
		b.WriteString("\n\n")
		for _, s := range result.ViolationsSummary {
			renderSummaryRow(&b, s)
		}
		b.WriteString("  " + separatorLine + "\n\n")
	}

	// ── Per-table findings ──
	for _, e := range result.Entities {
		if e.IsCompliant {
			continue
		}
		b.WriteString("  " + entityStyle.Render(e.LogicalName))
		if e.DisplayName != "" {
			b.WriteString("  " + dimStyle.Render(e.DisplayName))
		}
		b.WriteString("\n")
		for _, v := range e.Violations {
			renderViolation(&b, v)
		}
		b.WriteString("\n")
	}

	if result.Summary.TotalViolations == 0 {
		b.WriteString("  " + passStyle.Render("All checked tables are compliant.") + "\n")
	}

	return b.String()
}

func verdictLine(sum domain.ResultSummary) string {
	if sum.TotalViolations == 0 {
		return passStyle.Bold(true).Render("COMPLIANT")
	}
	line := mustTagStyle.Render(fmt.Sprintf("%d critical", sum.CriticalViolations))
	if sum.Warnings > 0 {
		line += "  " + shouldStyle.Render(fmt.Sprintf("%d warnings", sum.Warnings))
	}
	return line
}

func renderSummaryRow(b *strings.Builder, s domain.ViolationSummary) {
	tag := shouldStyle.Render("SHOULD")
	if s.Severity == domain.SeverityMust {
		tag = mustTagStyle.Render("MUST  ")
	}
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		tag,
		titleStyle.Render(s.Rule),
		dimStyle.Render(fmt.Sprintf("×%d in %d table(s)", s.TotalCount, len(s.AffectedEntities)))))
	if s.Action != "" {
		b.WriteString("         " + columnStyle.Render(s.Action) + "\n")
	}
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	tag := shouldStyle.Render("!")
	if v.Severity == domain.SeverityMust {
		tag = mustTagStyle.Render("✗")
	}
	locus := ""
	if v.Attribute != "" {
		locus = columnStyle.Render(v.Attribute) + "  "
	}
	b.WriteString(fmt.Sprintf("    %s %s%s\n", tag, locus, v.Message))
	if v.ExpectedValue != "" && v.CurrentValue != "" {
		b.WriteString("      " + faintStyle.Render(fmt.Sprintf("%s → %s", v.CurrentValue, v.ExpectedValue)) + "\n")
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
