// Package export writes feasibility reports to JSON, CSV and PDF files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/jung-kurt/gofpdf"
)

// Formats accepted by Write
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Exporter writes report files into a directory
type Exporter struct {
	// Dir is the output directory; empty uses the working directory
	Dir string

	// Now stamps file names; nil uses time.Now
	Now func() time.Time
}

// Write exports reports in the named format and returns the absolute file path
func (e *Exporter) Write(format, base string, reports []*goalplan.FeasibilityReport) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return e.JSON(base, reports)
	case FormatCSV:
		return e.CSV(base, reports)
	case FormatPDF:
		return e.PDF(base, reports)
	default:
		return "", fmt.Errorf("unsupported export format %q: want json, csv or pdf", format)
	}
}

// JSON writes the reports as an indented JSON array
func (e *Exporter) JSON(base string, reports []*goalplan.FeasibilityReport) (string, error) {
	outputFilename, err := e.generateFilename(base, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

var csvHeaders = []string{
	"Goal ID", "Goal", "Status", "Days To Deadline", "Months To Deadline",
	"Monthly Income", "Monthly Expenses", "Available Money", "Remaining",
	"Recommended", "Monthly Saving", "Saved By Deadline", "Message", "Evaluated At",
}

// CSV writes one row per report
func (e *Exporter) CSV(base string, reports []*goalplan.FeasibilityReport) (string, error) {
	outputFilename, err := e.generateFilename(base, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range reports {
		recommended, saving, saved := "", "", ""
		if r.RecommendedScenario != nil {
			res := r.RecommendedScenario.Result()
			recommended = r.RecommendedScenario.Kind().String()
			saving = money(res.ResultingMonthlySaving)
			saved = money(res.ResultingTotalSavedByDeadline)
		}

		record := []string{
			r.GoalID,
			r.GoalName,
			r.Status.String(),
			strconv.Itoa(r.DaysToDeadline),
			strconv.FormatFloat(r.MonthsToDeadline, 'f', 2, 64),
			money(r.Snapshot.TotalMonthlyIncome),
			money(r.Snapshot.TotalMonthlyExpenses),
			money(r.Snapshot.AvailableMoney),
			money(r.Remaining),
			recommended,
			saving,
			saved,
			r.Message,
			r.EvaluatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// PDF writes one page per report
func (e *Exporter) PDF(base string, reports []*goalplan.FeasibilityReport) (string, error) {
	outputFilename, err := e.generateFilename(base, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, title)
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	row := func(label, value string) {
		pdf.CellFormat(70, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(120, 6, tr(value), "", 1, "L", false, 0, "")
	}

	if len(reports) == 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 10, "No goals evaluated.")
	}

	for _, r := range reports {
		pdf.AddPage()

		name := r.GoalName
		if name == "" {
			name = r.GoalID
		}
		if len(name) > 80 {
			name = name[:77] + "..."
		}
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr("  "+name), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Status: %s", r.Status.String())), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		section("Summary")
		pdf.MultiCell(190, 5, tr(r.Message), "", "L", false)
		pdf.Ln(6)

		if r.IsDegraded() {
			continue
		}

		section("Finances")
		row("Days to deadline", strconv.Itoa(r.DaysToDeadline))
		row("Months to deadline", strconv.FormatFloat(r.MonthsToDeadline, 'f', 2, 64))
		row("Monthly income", money(r.Snapshot.TotalMonthlyIncome))
		row("Monthly expenses", money(r.Snapshot.TotalMonthlyExpenses))
		row("Available money", money(r.Snapshot.AvailableMoney))
		row("Remaining", money(r.Remaining))
		pdf.Ln(6)

		scenarios := r.Alternatives
		if r.RecommendedScenario != nil {
			scenarios = append([]goalplan.Scenario{r.RecommendedScenario}, scenarios...)
		}
		if len(scenarios) == 0 {
			continue
		}

		section("Scenarios")
		pdf.SetFont("Arial", "B", 10)
		for i, h := range []string{"Scenario", "Feasible", "Monthly", "By deadline"} {
			w := 40.0
			if i == 0 {
				w = 70
			}
			pdf.CellFormat(w, 7, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, s := range scenarios {
			res := s.Result()
			feasible := "no"
			if res.Feasible {
				feasible = "yes"
			}
			pdf.CellFormat(70, 6, tr(s.Kind().String()), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, feasible, "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, money(res.ResultingMonthlySaving), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, money(res.ResultingTotalSavedByDeadline), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (e *Exporter) generateFilename(base, ext string) (string, error) {
	dir := e.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	timestamp := now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
