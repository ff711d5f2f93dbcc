package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockbook/internal/service"

	"github.com/go-pdf/fpdf"
)

// WriteReportPDF renders the report to an A4 page at dir/fileName and
// returns the absolute path.
func WriteReportPDF(dir, fileName, companyName, symbol string, report service.ReportData, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create export dir: %w", err)
	}
	path := filepath.Join(dir, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, headerName(companyName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Inventory Report - "+rangeName(report.Range), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Summary", "", 1, "L", false, 0, "")

	summary := []struct{ label, value string }{
		{"Total Sales", symbol + report.TotalSales.StringFixed(2)},
		{"Total Purchases", symbol + report.TotalPurchases.StringFixed(2)},
		{"Net Profit", symbol + report.TotalProfit.StringFixed(2)},
		{"Total Transactions", fmt.Sprintf("%d", report.TransactionCount)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary {
		pdf.CellFormat(contentW*0.5, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 6, row.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Top products ─────────────────────────────────────────────────────────
	if len(report.TopProducts) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Top Selling Products", "", 1, "L", false, 0, "")

		col1 := contentW * 0.10 // rank
		col2 := contentW * 0.50 // name
		col3 := contentW * 0.18 // units
		col4 := contentW * 0.22 // revenue

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "#", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Product", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, "Units", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "Revenue", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for i, p := range report.TopProducts {
			name := p.ProductName
			if len(name) > 40 {
				name = name[:39] + "…"
			}
			pdf.CellFormat(col1, 6, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 6, fmt.Sprintf("x%d", p.TotalQuantity), "", 0, "C", false, 0, "")
			pdf.CellFormat(col4, 6, symbol+p.TotalRevenue.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return path, nil
}
