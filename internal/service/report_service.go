package service

import (
	"context"
	"sort"
	"time"

	"stockbook/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold marks products that need restocking on the dashboard.
const LowStockThreshold = 10

// TopProductsLimit caps the report's best-seller table.
const TopProductsLimit = 5

type DateRange string

const (
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeAll   DateRange = "all"
)

func ValidDateRange(r DateRange) bool {
	return r == RangeWeek || r == RangeMonth || r == RangeAll
}

type DashboardSummary struct {
	TotalProducts    int             `json:"totalProducts"`
	StockValue       decimal.Decimal `json:"stockValue"`
	MonthlySales     decimal.Decimal `json:"monthlySales"`
	MonthlyPurchases decimal.Decimal `json:"monthlyPurchases"`
	MonthlyProfit    decimal.Decimal `json:"monthlyProfit"`
	LowStockProducts []model.Product `json:"lowStockProducts"`
}

type TopProduct struct {
	ProductID     uuid.UUID       `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type ReportData struct {
	Range            DateRange       `json:"range"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	TransactionCount int             `json:"transactionCount"`
	TopProducts      []TopProduct    `json:"topProducts"`
}

// BuildDashboard derives the dashboard summary from a snapshot. Pure: same
// snapshot in, same summary out, no hidden state, safe to call concurrently.
// The monthly window starts at the first day of the current calendar month,
// inclusive.
func BuildDashboard(products []model.Product, transactions []model.Transaction, now time.Time) DashboardSummary {
	monthStart := firstDayOfMonth(now)

	stockValue := decimal.Zero
	lowStock := []model.Product{}
	for _, p := range products {
		stockValue = stockValue.Add(p.BuyingPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.Stock <= LowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}

	sales, purchases, profit := sumWindow(transactions, monthStart)

	return DashboardSummary{
		TotalProducts:    len(products),
		StockValue:       stockValue,
		MonthlySales:     sales,
		MonthlyPurchases: purchases,
		MonthlyProfit:    profit,
		LowStockProducts: lowStock,
	}
}

// BuildReport derives the time-ranged report from a ledger snapshot.
// transactionCount covers every transaction type in the window; removals
// contribute to neither sales nor purchases nor profit. Top products rank
// sale revenue descending, ties kept in first-encountered order, capped at
// five entries.
func BuildReport(transactions []model.Transaction, r DateRange, now time.Time) ReportData {
	start := rangeStart(r, now)

	sales, purchases, profit := sumWindow(transactions, start)

	count := 0
	type bucket struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := map[uuid.UUID]*bucket{}
	order := []uuid.UUID{}

	for _, tx := range transactions {
		if tx.Date.Before(start) {
			continue
		}
		count++
		if tx.Type != model.TransactionSale {
			continue
		}
		b, ok := byProduct[tx.ProductID]
		if !ok {
			b = &bucket{name: tx.ProductName}
			byProduct[tx.ProductID] = b
			order = append(order, tx.ProductID)
		}
		b.quantity += tx.Quantity
		b.revenue = b.revenue.Add(tx.TotalAmount)
	}

	top := make([]TopProduct, 0, len(order))
	for _, id := range order {
		b := byProduct[id]
		top = append(top, TopProduct{
			ProductID:     id,
			ProductName:   b.name,
			TotalQuantity: b.quantity,
			TotalRevenue:  b.revenue,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalRevenue.GreaterThan(top[j].TotalRevenue)
	})
	if len(top) > TopProductsLimit {
		top = top[:TopProductsLimit]
	}

	return ReportData{
		Range:            r,
		TotalSales:       sales,
		TotalPurchases:   purchases,
		TotalProfit:      profit,
		TransactionCount: count,
		TopProducts:      top,
	}
}

// sumWindow totals sales, purchases and profit for transactions dated at or
// after start. Removals are skipped entirely.
func sumWindow(transactions []model.Transaction, start time.Time) (sales, purchases, profit decimal.Decimal) {
	sales, purchases, profit = decimal.Zero, decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		if tx.Date.Before(start) {
			continue
		}
		switch tx.Type {
		case model.TransactionSale:
			sales = sales.Add(tx.TotalAmount)
			if tx.Profit != nil {
				profit = profit.Add(*tx.Profit)
			}
		case model.TransactionPurchase:
			purchases = purchases.Add(tx.TotalAmount)
		}
	}
	return sales, purchases, profit
}

func firstDayOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func rangeStart(r DateRange, now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.Add(-7 * 24 * time.Hour) // rolling, not calendar week
	case RangeMonth:
		return firstDayOfMonth(now)
	default: // RangeAll
		return time.Time{}
	}
}

// ── Service wrapper ──────────────────────────────────────────────────────────

// ReportService feeds live snapshots into the pure aggregation functions.
type ReportService interface {
	Dashboard(ctx context.Context) DashboardSummary
	Report(ctx context.Context, r DateRange) (ReportData, error)
}

type reportService struct {
	inventory InventoryService
	now       func() time.Time
}

func NewReportService(inventory InventoryService) ReportService {
	return &reportService{inventory: inventory, now: time.Now}
}

func (s *reportService) Dashboard(ctx context.Context) DashboardSummary {
	products, transactions := s.inventory.Snapshot(ctx)
	return BuildDashboard(products, transactions, s.now())
}

func (s *reportService) Report(ctx context.Context, r DateRange) (ReportData, error) {
	if !ValidDateRange(r) {
		return ReportData{}, validationf("range", "must be one of week, month, all")
	}
	_, transactions := s.inventory.Snapshot(ctx)
	return BuildReport(transactions, r, s.now()), nil
}
