// Package render produces the export artifacts (CSV and PDF report files).
// Renderers are plain functions over already-computed report data; they
// never touch the engine.
package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockbook/internal/service"
)

// WriteReportCSV writes the report summary and top-products table to
// dir/fileName and returns the absolute path.
func WriteReportCSV(dir, fileName, companyName, symbol string, report service.ReportData, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("csv: create export dir: %w", err)
	}
	path := filepath.Join(dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{fmt.Sprintf("%s - Inventory Report (%s)", headerName(companyName), rangeName(report.Range))},
		{"Generated On", generatedAt.Format("2006-01-02 15:04")},
		{},
		{"Summary"},
		{"Total Sales", symbol + report.TotalSales.StringFixed(2)},
		{"Total Purchases", symbol + report.TotalPurchases.StringFixed(2)},
		{"Net Profit", symbol + report.TotalProfit.StringFixed(2)},
		{"Total Transactions", fmt.Sprintf("%d", report.TransactionCount)},
	}
	if len(report.TopProducts) > 0 {
		rows = append(rows, []string{}, []string{"Top Selling Products"},
			[]string{"Rank", "Product Name", "Units Sold", "Revenue"})
		for i, p := range report.TopProducts {
			rows = append(rows, []string{
				fmt.Sprintf("#%d", i+1),
				p.ProductName,
				fmt.Sprintf("%d", p.TotalQuantity),
				symbol + p.TotalRevenue.StringFixed(2),
			})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("csv: write %s: %w", path, err)
	}
	return path, nil
}

func headerName(companyName string) string {
	if companyName == "" {
		return "Stockbook"
	}
	return companyName
}

func rangeName(r service.DateRange) string {
	switch r {
	case service.RangeWeek:
		return "Last 7 Days"
	case service.RangeMonth:
		return "This Month"
	default:
		return "All Time"
	}
}
