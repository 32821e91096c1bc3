// Package reporter shapes a clustering run into a Report and exports it
// as JSON, PDF, or a console summary.
package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// NameGroup is one cluster: a dense id and its member account names.
type NameGroup struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
}

// Report is the top-level result of one clustering run.
type Report struct {
	ID               string      `json:"id"`
	TotalNames       int         `json:"total_names"`
	Groups           []NameGroup `json:"groups"`
	GroupCount       int         `json:"group_count"`
	AnalysisDuration float64     `json:"analysis_duration_seconds"`
	Timestamp        string      `json:"timestamp"`
	Mode             string      `json:"mode"`
	Status           string      `json:"status"` // "clustering", "finished"
}

// NewReport shapes a raw group map, as returned by an analyzer
// collection's Group methods, into a Report.
func NewReport(id string, totalNames int, groups map[int][]string, mode string, duration float64, timestamp string) Report {
	out := make([]NameGroup, 0, len(groups))
	for gid, members := range groups {
		out = append(out, NameGroup{ID: gid, Members: members})
	}
	return Report{
		ID:               id,
		TotalNames:       totalNames,
		Groups:           out,
		GroupCount:       len(out),
		AnalysisDuration: duration,
		Timestamp:        timestamp,
		Mode:             mode,
		Status:           "finished",
	}
}

// ExportJSON writes the report to filename as indented JSON.
func ExportJSON(report Report, filename string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ExportPDF renders a summary of the report to filename: a header, then
// every group's title and member list in sequence, continuing onto new
// pages through automatic page breaks.
func ExportPDF(report Report, filename string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Account Cluster Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", report.Timestamp))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Mode: %s    Total names: %d    Groups: %d    Duration: %.2fs",
		report.Mode, report.TotalNames, report.GroupCount, report.AnalysisDuration))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	for _, g := range report.Groups {
		pdf.CellFormat(0, 8, fmt.Sprintf("Group %d (%d members)", g.ID, len(g.Members)), "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, m := range g.Members {
			pdf.CellFormat(0, 6, "  "+m, "", 1, "", false, 0, "")
		}
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
	}

	return pdf.OutputFileAndClose(filename)
}

// PrintSummary prints a console summary of the analysis.
func PrintSummary(report Report) {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("📈 ANALYSIS SUMMARY")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📦 Total names analyzed: %d\n", report.TotalNames)
	fmt.Printf("🔄 Groups found: %d\n", report.GroupCount)
	fmt.Printf("⚙️  Mode: %s\n", report.Mode)
	fmt.Printf("⏱️  Analysis duration: %.2fs\n", report.AnalysisDuration)
	fmt.Println()
}
