package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/bigen/pkg/application/dto"
)

// GenerateKPI prints the dashboard KPI summary as text or json
func GenerateKPI(summary *dto.KPISummary, config Config) error {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	switch config.Format {
	case "", "text":
		return writeKPIText(config.Stdout, summary)
	case "json":
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(config.Stdout, string(jsonData))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeKPIText(w io.Writer, s *dto.KPISummary) error {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "BEVCO EXECUTIVE DASHBOARD - KPI SUMMARY\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "💰 Net Sales:     %s\n", s.Totals.NetSales.StringFixed(2))
	fmt.Fprintf(&b, "📈 Gross Profit:  %s\n", s.Totals.GrossProfit.StringFixed(2))
	fmt.Fprintf(&b, "📊 Margin:        %s%%\n", s.Totals.MarginPercent().StringFixed(2))
	fmt.Fprintf(&b, "🧾 Transactions:  %s\n", groupThousands(int(s.Totals.Transactions)))
	fmt.Fprintf(&b, "📦 Units Sold:    %s\n", groupThousands(int(s.Totals.UnitsSold)))
	fmt.Fprintf(&b, "⚠️  Low Stock:     %d\n\n", s.LowStockItems)

	sections := []struct {
		title string
		rows  []dto.SalesBreakdown
	}{
		{"SALES BY REGION", s.ByRegion},
		{"SALES BY CATEGORY", s.ByCategory},
		{"SALES BY VENDOR", s.ByVendor},
		{"SALES BY CHANNEL", s.ByChannel},
	}
	for _, section := range sections {
		fmt.Fprintf(&b, "%s\n%s\n", section.title, thin)
		fmt.Fprintf(&b, "%-24s %14s %14s %8s\n", "Name", "Net Sales", "Profit", "Margin")
		for _, row := range section.rows {
			fmt.Fprintf(&b, "%-24s %14s %14s %7s%%\n", row.Name,
				row.NetSales.StringFixed(2), row.GrossProfit.StringFixed(2), row.MarginPercent().StringFixed(1))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "MONTHLY SALES\n%s\n", thin)
	for _, m := range s.Monthly {
		fmt.Fprintf(&b, "%-8s %14s %14s %8d\n", m.Label(),
			m.NetSales.StringFixed(2), m.GrossProfit.StringFixed(2), m.Transactions)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "BUDGET VARIANCE\n%s\n", thin)
	fmt.Fprintf(&b, "%-12s %14s %14s %9s\n", "Department", "Budget", "Actual", "Variance")
	for _, v := range s.BudgetVariance {
		fmt.Fprintf(&b, "%-12s %14s %14s %8s%%\n", v.Department,
			v.Budget.StringFixed(2), v.Actual.StringFixed(2), v.VariancePercent().StringFixed(1))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "KPI TARGETS\n%s\n", thin)
	for _, target := range s.Targets {
		fmt.Fprintf(&b, "%-12s %-24s %12s  %s\n", target.Department, target.Name,
			target.TargetValue.String(), target.Period)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
