package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsinha/bigen/pkg/application/dto"
)

// Result file names written into the results directory
const (
	ReportFileName  = "data_quality_report.txt"
	SummaryFileName = "data_quality_summary.csv"
	IssuesFileName  = "data_quality_issues.csv"
)

// Config holds configuration for output generation
// Format is text or json and goes to Stdout (os.Stdout when nil).
// An empty OutputDir skips the result files.
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Stdout    io.Writer
}

// Generate writes the quality result files and prints the report
func Generate(report *dto.QualityReport, config Config) error {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	if config.OutputDir != "" {
		if err := writeResultFiles(report, config); err != nil {
			return err
		}
	}

	switch config.Format {
	case "", "text":
		return writeText(config.Stdout, report)
	case "json":
		return generateJSONOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeResultFiles(report *dto.QualityReport, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	reportFile := filepath.Join(config.OutputDir, ReportFileName)
	file, err := os.Create(reportFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportFile, err)
	}
	if err := writeText(file, report); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", reportFile, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", reportFile, err)
	}

	summaryFile := filepath.Join(config.OutputDir, SummaryFileName)
	if err := writeSummaryCSV(report, summaryFile); err != nil {
		return fmt.Errorf("failed to write quality summary CSV: %w", err)
	}

	issuesFile := filepath.Join(config.OutputDir, IssuesFileName)
	if err := writeIssuesCSV(report, issuesFile); err != nil {
		return fmt.Errorf("failed to write quality issues CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Stdout, "💾 Quality results saved to:\n")
		fmt.Fprintf(config.Stdout, "  Report: %s\n", reportFile)
		fmt.Fprintf(config.Stdout, "  Summary: %s\n", summaryFile)
		fmt.Fprintf(config.Stdout, "  Issues: %s\n", issuesFile)
	}

	return nil
}

// writeText renders the human-readable report
func writeText(w io.Writer, report *dto.QualityReport) error {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "BEVCO EXECUTIVE DASHBOARD - DATA QUALITY REPORT\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Generated: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Directory: %s\n\n", report.Dir)

	fmt.Fprintf(&b, "SUMMARY\n%s\n", thin)
	fmt.Fprintf(&b, "%-22s %10s %8s %7s %-6s\n", "File", "Records", "Columns", "Issues", "Status")
	for _, f := range report.Files {
		fmt.Fprintf(&b, "%-22s %10d %8d %7d %-6s\n", f.File(), f.Records, f.Columns, len(f.Issues), f.Status)
	}
	b.WriteString("\n")

	issues := report.Issues()
	if len(issues) > 0 {
		fmt.Fprintf(&b, "ISSUES FOUND\n%s\n", thin)
		for _, issue := range issues {
			fmt.Fprintf(&b, "%s: %s\n", issue.File, issue.Issue)
		}
	} else {
		b.WriteString("No data quality issues found!\n")
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "\nTotal Records: %s\n", groupThousands(report.TotalRecords()))
	fmt.Fprintf(&b, "Total Issues: %d\n", report.TotalIssues())
	fmt.Fprintf(&b, "Quality Score: %.1f%%\n", report.Score())

	_, err := io.WriteString(w, b.String())
	return err
}

// generateJSONOutput prints the report as JSON
func generateJSONOutput(report *dto.QualityReport, config Config) error {
	jsonData, err := json.MarshalIndent(struct {
		*dto.QualityReport
		TotalRecords int     `json:"total_records"`
		TotalIssues  int     `json:"total_issues"`
		Score        float64 `json:"score"`
	}{report, report.TotalRecords(), report.TotalIssues(), report.Score()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(config.Stdout, string(jsonData))
	return err
}

func writeSummaryCSV(report *dto.QualityReport, filename string) error {
	rows := [][]string{{"File", "Records", "Columns", "Issues", "Status"}}
	for _, f := range report.Files {
		rows = append(rows, []string{
			f.File(),
			strconv.Itoa(f.Records),
			strconv.Itoa(f.Columns),
			strconv.Itoa(len(f.Issues)),
			string(f.Status),
		})
	}
	return writeCSV(filename, rows)
}

// writeIssuesCSV writes the header even for a clean run
func writeIssuesCSV(report *dto.QualityReport, filename string) error {
	rows := [][]string{{"File", "Issue"}}
	for _, issue := range report.Issues() {
		rows = append(rows, []string{issue.File, issue.Issue})
	}
	return writeCSV(filename, rows)
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
