package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// StatusColor maps a status to its display color.
func StatusColor(s goalplan.Status) lipgloss.Color {
	switch s {
	case goalplan.StatusAchievable:
		return ColorGreen
	case goalplan.StatusAdjustableWithChanges:
		return ColorYellow
	case goalplan.StatusNotAchievable:
		return ColorRed
	case goalplan.StatusDueToday:
		return ColorBlue
	default:
		return ColorTextMuted
	}
}

// RenderStatus renders a status badge in its color.
func RenderStatus(s goalplan.Status) string {
	return lipgloss.NewStyle().Bold(true).Foreground(StatusColor(s)).Render(StatusLabel(s))
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], false) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Right-align value columns (all except first)
			b.WriteString(valueStyle.Render(" " + pad(cell, widths[i], i > 0) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// pad pads by display width so styled cells line up.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderProgressBar renders a text progress bar for a 0-100 value.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", mutedStyle.Render(bar), FormatPercent(pct))
}

// RenderReport renders a feasibility report.
func RenderReport(r *goalplan.FeasibilityReport) string {
	var b strings.Builder

	name := r.GoalName
	if name == "" {
		name = r.GoalID
	}
	b.WriteString(RenderTitle(strings.ToUpper(name)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render("Status:  "), RenderStatus(r.Status))
	fmt.Fprintf(&b, "  %s  %s\n\n", mutedStyle.Render("Summary: "), valueStyle.Render(r.Message))

	if r.IsDegraded() {
		return b.String()
	}

	rows := [][]string{
		{"Deadline", FormatDays(r.DaysToDeadline)},
		{"Months left", fmt.Sprintf("%.2f", r.MonthsToDeadline)},
		{"Monthly income", FormatMoney(r.Snapshot.TotalMonthlyIncome)},
		{"Monthly expenses", FormatMoney(r.Snapshot.TotalMonthlyExpenses)},
		{"Available money", FormatMoney(r.Snapshot.AvailableMoney)},
	}
	if !r.Expired {
		rows = append(rows, []string{"Remaining", FormatMoney(r.Remaining)})
	}
	b.WriteString(RenderTable(Table{Title: "Overview", Rows: rows}))

	if r.RecommendedScenario != nil {
		b.WriteString("\n")
		b.WriteString(RenderTable(Table{
			Title:   "Recommended",
			Headers: scenarioHeaders,
			Rows:    [][]string{scenarioRow(r.RecommendedScenario)},
		}))
		if affected := r.RecommendedScenario.Result().AffectedExpenses; len(affected) > 0 {
			b.WriteString(renderAffected(affected))
		}
	}

	if len(r.Alternatives) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderScenarios("Alternatives", r.Alternatives))
	}

	return b.String()
}

var scenarioHeaders = []string{"Scenario", "Feasible", "Monthly", "By deadline"}

func scenarioRow(s goalplan.Scenario) []string {
	res := s.Result()
	feasible := "no"
	if res.Feasible {
		feasible = "yes"
	}
	return []string{
		ScenarioLabel(s),
		feasible,
		FormatMoney(res.ResultingMonthlySaving),
		FormatMoney(res.ResultingTotalSavedByDeadline),
	}
}

// RenderScenarios renders a list of scenarios as a table.
func RenderScenarios(title string, scenarios []goalplan.Scenario) string {
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, scenarioRow(s))
	}
	return RenderTable(Table{Title: title, Headers: scenarioHeaders, Rows: rows})
}

func renderAffected(affected []goalplan.AffectedExpense) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("  Expenses removed:"))
	b.WriteString("\n")
	for _, a := range affected {
		fmt.Fprintf(&b, "    %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("[tier %d]", a.Tier)),
			valueStyle.Render(a.Name),
			mutedStyle.Render(FormatMoney(a.Amount)+"/mo"),
		)
	}
	return b.String()
}

// RenderProgress renders the time and savings progress of a goal.
func RenderProgress(name string, p goalplan.GoalProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", headerStyle.Render(name))
	fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("Time:   "), RenderProgressBar(p.TimeProgress, 30))
	fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("Savings:"), RenderProgressBar(p.FinancialProgress, 30))
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d days passed, %d days remaining", p.DaysPassed, p.DaysRemaining)))
	return b.String()
}

// RenderAllocation renders an allocation check.
func RenderAllocation(proposed float64, s *goalplan.AllocationSummary) string {
	verdict := lipgloss.NewStyle().Bold(true).Foreground(ColorGreen).Render("fits")
	if !s.IsValid {
		verdict = lipgloss.NewStyle().Bold(true).Foreground(ColorRed).Render("exceeds 100%")
	}

	var b strings.Builder
	b.WriteString(RenderTable(Table{
		Title: "Allocation",
		Rows: [][]string{
			{"Existing goals", FormatPercent(s.ExistingPercentageTotal)},
			{"Existing fixed value", FormatMoney(s.ExistingFixedValueTotal)},
			{"Proposed", FormatPercent(proposed)},
			{"New total", FormatPercent(s.ProposedNewTotalPercentage)},
			{"Remaining", FormatPercent(s.RemainingPercentage)},
			{"Remaining fixed value", FormatMoney(s.RemainingFixedValue)},
		},
	}))
	fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("Proposal"), verdict)
	return b.String()
}
