package transfer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// Export kinds, used as file name prefixes.
const (
	KindTransactions    = "transactions"
	KindBudgets         = "budgets"
	KindAnalyticsReport = "analytics_report"
)

// Fixed export headers.
var (
	TransactionHeader = []string{"Date", "Description", "Category", "Amount", "Currency", "Account"}
	BudgetHeader      = []string{"Category", "Amount", "Spent", "Remaining", "Currency", "Progress %", "Status", "Period"}
)

// FileName returns the timestamped download name, e.g. transactions_2024-03-01.csv.
func FileName(kind string, now time.Time) string {
	return kind + "_" + now.Format("2006-01-02") + ".csv"
}

// csvWriter writes pre-rendered cells and remembers the first error.
type csvWriter struct {
	w   *bufio.Writer
	err error
}

func newCSVWriter(w io.Writer) *csvWriter { return &csvWriter{w: bufio.NewWriter(w)} }

func (c *csvWriter) row(cells ...string) {
	if c.err != nil {
		return
	}
	if _, err := c.w.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
		c.err = err
	}
}

func (c *csvWriter) flush() error {
	if c.err != nil {
		return c.err
	}
	return c.w.Flush()
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// lineBreaks flattens multi-line text. The importer reads one record per line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// cell renders s as a quoted single-line CSV cell.
func cell(s string) string { return quote(lineBreaks.Replace(s)) }

// ExportTransactions writes txs in the transaction export format. The
// Account column holds the name of the matching account, or "". Line breaks
// in text cells are written as spaces.
func ExportTransactions(w io.Writer, txs []domain.Transaction, accounts []domain.Account) error {
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	cw := newCSVWriter(w)
	cw.row(TransactionHeader...)
	for _, t := range txs {
		cw.row(
			t.TransactionDate.Date(),
			cell(t.Description),
			cell(t.Category),
			money(t.Amount),
			cell(currencyOrDefault(t.Currency)),
			cell(names[t.AccountID]),
		)
	}
	return cw.flush()
}

// ExportBudgets writes budgets in the budget export format.
func ExportBudgets(w io.Writer, budgets []domain.Budget) error {
	cw := newCSVWriter(w)
	cw.row(BudgetHeader...)
	for _, b := range budgets {
		cw.row(
			cell(b.Category),
			money(b.Amount),
			money(b.SpentAmount),
			money(b.Remaining),
			cell(currencyOrDefault(b.Currency)),
			strconv.FormatFloat(b.Progress, 'f', 1, 64),
			cell(b.Status),
			cell(b.Period),
		)
	}
	return cw.flush()
}

// AnalyticsReport gathers the inputs of the analytics export. Nil sections
// are left out.
type AnalyticsReport struct {
	GeneratedAt time.Time
	TimeRange   string
	Health      *domain.FinancialHealth
	Insights    *domain.SpendingInsights
	Forecast    *domain.CashFlowForecast
}

// forecastPreviewDays is how many forecast days the report lists.
const forecastPreviewDays = 10

// ExportAnalyticsReport writes a sectioned, fully quoted analytics report.
func ExportAnalyticsReport(w io.Writer, r AnalyticsReport) error {
	cw := newCSVWriter(w)
	row := func(cells ...string) {
		quoted := make([]string, len(cells))
		for i, c := range cells {
			quoted[i] = cell(c)
		}
		cw.row(quoted...)
	}
	blank := func() { cw.row() }

	row("NEXUS FINANCE AI - ANALYTICS REPORT")
	row("Generated: " + r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if r.TimeRange != "" {
		row("Time Range: " + r.TimeRange)
	}
	blank()

	if h := r.Health; h != nil {
		row("FINANCIAL HEALTH SCORE")
		row("Overall Score", strconv.FormatFloat(h.Score, 'f', -1, 64)+"/100")
		for _, k := range sortedKeys(h.Breakdown) {
			row(strings.ToUpper(strings.ReplaceAll(k, "_", " ")), strconv.FormatFloat(h.Breakdown[k], 'f', 2, 64))
		}
		blank()
	}

	in := r.Insights
	if in != nil && len(in.CategoryBreakdown) > 0 {
		row("SPENDING BY CATEGORY")
		row("Category", "Amount (USD)")
		for _, k := range sortedKeys(in.CategoryBreakdown) {
			row(capitalize(k), money(in.CategoryBreakdown[k].Abs()))
		}
		blank()
	}
	if in != nil && len(in.TopCategories) > 0 {
		row("TOP 5 SPENDING CATEGORIES")
		row("Category", "Amount (USD)")
		for _, k := range byAmountDesc(in.TopCategories) {
			row(capitalize(k), money(in.TopCategories[k]))
		}
		blank()
	}
	if in != nil && len(in.MonthlyTrends) > 0 {
		row("MONTHLY SPENDING TRENDS")
		row("Month", "Amount (USD)")
		for _, t := range in.MonthlyTrends {
			row(t.Month, money(t.Amount))
		}
		blank()
	}

	if f := r.Forecast; f != nil && len(f.Forecast) > 0 {
		row(fmt.Sprintf("CASH FLOW FORECAST (%d DAYS)", len(f.Forecast)))
		row("Date", "Projected Balance (USD)", "Day")
		for i, d := range f.Forecast {
			if i == forecastPreviewDays {
				row("...", "...", "...")
				break
			}
			row(d.Date, money(d.ProjectedBalance), d.DayOfWeek)
		}
		row("Risk Assessment", upperOrNA(f.RiskAssessment))
		days := "N/A"
		if f.DaysUntilNegativeBalance != nil && *f.DaysUntilNegativeBalance > 0 {
			days = strconv.Itoa(*f.DaysUntilNegativeBalance)
		}
		row("Days Until Negative Balance", days)
		blank()
	}

	if in != nil && in.LocalContext != nil {
		lc := in.LocalContext
		row("REGIONAL CONTEXT INSIGHTS")
		if lc.MobileMoneyUsage != nil {
			row("Mobile Money Transactions", strconv.Itoa(lc.MobileMoneyUsage.Count))
			row("Mobile Money Usage %", strconv.FormatFloat(lc.MobileMoneyUsage.PercentageOfTotal, 'f', 1, 64)+"%")
		}
		if len(lc.CurrencyBreakdown) > 0 {
			row("Currencies Used", strings.Join(sortedKeys(lc.CurrencyBreakdown), ", "))
		}
		if lc.InformalSector != nil {
			row("Informal Sector Transactions", strconv.Itoa(lc.InformalSector.Count))
		}
		blank()
	}

	row("SUMMARY STATISTICS")
	if in != nil {
		if !in.TotalIncome.IsZero() {
			row("Total Income", money(in.TotalIncome))
		}
		if !in.TotalExpenses.IsZero() {
			row("Total Expenses", money(in.TotalExpenses.Abs()))
		}
		if !in.NetCashFlow.IsZero() {
			row("Net Cash Flow", money(in.NetCashFlow))
		}
		if !in.AverageMonthlySpend.IsZero() {
			row("Average Monthly Spend", money(in.AverageMonthlySpend))
		}
	}

	if h := r.Health; h != nil && len(h.Recommendations) > 0 {
		blank()
		row("RECOMMENDATIONS")
		for i, rec := range h.Recommendations {
			row(fmt.Sprintf("%d. %s", i+1, rec))
		}
	}
	return cw.flush()
}

func currencyOrDefault(c string) string {
	if c == "" {
		return domain.DefaultCurrency
	}
	return c
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func upperOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return strings.ToUpper(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func byAmountDesc(m map[string]decimal.Decimal) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]].Abs().GreaterThan(m[keys[j]].Abs())
	})
	return keys
}
