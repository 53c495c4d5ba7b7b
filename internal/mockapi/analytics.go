package mockapi

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// defaultInflationRate is the monthly rate applied to the forecast.
const defaultInflationRate = 0.02

const forecastDays = 30

var (
	mobileKeywords   = []string{"ecocash", "onemoney", "telecash", "mobile money"}
	bankKeywords     = []string{"bank", "atm", "cbz", "stanbic", "standard chartered", "nmb"}
	informalKeywords = []string{"market", "musika", "vendor", "street", "informal", "hawker", "mbare", "road port", "avondale", "flea market"}
)

func containsAny(s string, words []string) bool {
	s = strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func monthOf(t domain.Timestamp) string { return t.UTC().Format("2006-01") }

// monthlyTotals sums amounts per month and returns them in calendar order.
func monthlyTotals(txs []domain.Transaction, keep func(domain.Transaction) bool) []domain.MonthlyTrend {
	sums := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if keep != nil && !keep(tx) {
			continue
		}
		m := monthOf(tx.TransactionDate)
		sums[m] = sums[m].Add(tx.Amount)
	}
	out := make([]domain.MonthlyTrend, 0, len(sums))
	for m, v := range sums {
		out = append(out, domain.MonthlyTrend{Month: m, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func spendingInsights(txs []domain.Transaction, now time.Time) domain.SpendingInsights {
	if len(txs) == 0 {
		return domain.SpendingInsights{}
	}

	trends := monthlyTotals(txs, nil)
	byCategory := map[string]decimal.Decimal{}
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.Amount.IsNegative():
			expenses = expenses.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount.Abs())
		case tx.Amount.IsPositive():
			income = income.Add(tx.Amount)
		}
	}

	current, previous := decimal.Zero, decimal.Zero
	thisMonth, lastMonth := now.Format("2006-01"), now.AddDate(0, 0, -30).Format("2006-01")
	sum := decimal.Zero
	for _, t := range trends {
		sum = sum.Add(t.Amount)
		switch t.Month {
		case thisMonth:
			current = t.Amount
		case lastMonth:
			previous = t.Amount
		}
	}
	velocity := 0.0
	if !previous.IsZero() {
		velocity, _ = current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	return domain.SpendingInsights{
		MonthlyTrends:       trends,
		CategoryBreakdown:   byCategory,
		SpendingVelocity:    velocity,
		AverageMonthlySpend: sum.Div(decimal.NewFromInt(int64(len(trends)))).Round(2),
		RecurringExpenses:   recurringExpenses(txs, now),
		TopCategories:       topCategories(byCategory, 5),
		TotalIncome:         income,
		TotalExpenses:       expenses,
		NetCashFlow:         income.Add(expenses),
		LocalContext:        localContext(txs),
	}
}

func topCategories(byCategory map[string]decimal.Decimal, n int) map[string]decimal.Decimal {
	keys := make([]string, 0, len(byCategory))
	for k := range byCategory {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := byCategory[keys[i]].Cmp(byCategory[keys[j]]); c != 0 {
			return c > 0
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		out[k] = byCategory[k]
	}
	return out
}

// recurringExpenses reports descriptions seen at least three times over more
// than thirty days.
func recurringExpenses(txs []domain.Transaction, now time.Time) []domain.RecurringExpense {
	type group struct {
		count       int
		total       decimal.Decimal
		first, last time.Time
	}
	groups := map[string]*group{}
	for _, tx := range txs {
		g, ok := groups[tx.Description]
		if !ok {
			g = &group{first: tx.TransactionDate.Time, last: tx.TransactionDate.Time}
			groups[tx.Description] = g
		}
		g.count++
		g.total = g.total.Add(tx.Amount)
		if tx.TransactionDate.Before(g.first) {
			g.first = tx.TransactionDate.Time
		}
		if tx.TransactionDate.After(g.last) {
			g.last = tx.TransactionDate.Time
		}
	}

	var out []domain.RecurringExpense
	for desc, g := range groups {
		span := int(g.last.Sub(g.first).Hours() / 24)
		if g.count < 3 || span <= 30 {
			continue
		}
		freq := span / g.count
		out = append(out, domain.RecurringExpense{
			Description:       desc,
			FrequencyDays:     freq,
			AverageAmount:     g.total.Div(decimal.NewFromInt(int64(g.count))).Abs().Round(2),
			Occurrences:       g.count,
			EstimatedNextDate: now.AddDate(0, 0, freq).Format("2006-01-02"),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Description < out[j].Description
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func localContext(txs []domain.Transaction) *domain.LocalContext {
	currencies := map[string]decimal.Decimal{}
	mobile := &domain.ChannelUsage{}
	bank := &domain.ChannelUsage{}
	informal := &domain.InformalSectorInsights{CommonCategories: map[string]int{}}
	for _, tx := range txs {
		currencies[tx.Currency] = currencies[tx.Currency].Add(tx.Amount)
		if containsAny(tx.Description, mobileKeywords) {
			mobile.Count++
			mobile.TotalAmount = mobile.TotalAmount.Add(tx.Amount)
		}
		if containsAny(tx.Description, bankKeywords) {
			bank.Count++
			bank.TotalAmount = bank.TotalAmount.Add(tx.Amount)
		}
		if containsAny(tx.Description, informalKeywords) {
			informal.Count++
			informal.TotalAmount = informal.TotalAmount.Add(tx.Amount)
			informal.CommonCategories[tx.Category]++
		}
	}
	n := float64(len(txs))
	mobile.PercentageOfTotal = round(float64(mobile.Count)/n*100, 2)
	bank.PercentageOfTotal = round(float64(bank.Count)/n*100, 2)
	if informal.Count > 0 {
		informal.AverageTransaction = informal.TotalAmount.Div(decimal.NewFromInt(int64(informal.Count))).Round(2)
	}
	return &domain.LocalContext{
		CurrencyBreakdown: currencies,
		MobileMoneyUsage:  mobile,
		BankUsage:         bank,
		InformalSector:    informal,
	}
}

func totalBalance(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

// cashFlowForecast spreads the recent monthly expense average, inflated by
// rate, over the next thirty days.
func cashFlowForecast(txs []domain.Transaction, accounts []domain.Account, rate float64, now time.Time) domain.CashFlowForecast {
	balance := totalBalance(accounts)
	if len(txs) == 0 {
		days := forecastDays
		return domain.CashFlowForecast{
			Forecast:                 []domain.ForecastDay{},
			RiskAssessment:           "low",
			DaysUntilNegativeBalance: &days,
			InflationAdjustment:      rate,
			CurrentBalance:           balance,
		}
	}

	monthly := monthlyTotals(txs, func(tx domain.Transaction) bool { return tx.Amount.IsNegative() })
	if len(monthly) > 3 {
		monthly = monthly[len(monthly)-3:]
	}
	monthlySpend := decimal.Zero
	if len(monthly) > 0 {
		sum := decimal.Zero
		for _, m := range monthly {
			sum = sum.Add(m.Amount)
		}
		monthlySpend = sum.Div(decimal.NewFromInt(int64(len(monthly)))).Abs().
			Mul(decimal.NewFromFloat(1 + rate))
	}
	daily := monthlySpend.Div(decimal.NewFromInt(forecastDays))

	out := domain.CashFlowForecast{
		Forecast:             make([]domain.ForecastDay, 0, forecastDays),
		AverageDailySpending: daily.Round(2),
		InflationAdjustment:  rate,
		CurrentBalance:       balance,
	}
	running := balance
	positive := 0
	for i := 1; i <= forecastDays; i++ {
		day := now.AddDate(0, 0, i)
		running = running.Sub(daily)
		if running.IsPositive() {
			positive++
		}
		out.Forecast = append(out.Forecast, domain.ForecastDay{
			Date:              day.Format("2006-01-02"),
			ProjectedSpending: daily.Round(2),
			ProjectedBalance:  running.Round(2),
			DayOfWeek:         day.Weekday().String(),
		})
	}
	out.DaysUntilNegativeBalance = &positive
	switch {
	case positive > 20:
		out.RiskAssessment = "low"
	case positive > 10:
		out.RiskAssessment = "medium"
	default:
		out.RiskAssessment = "high"
	}
	return out
}

func financialHealth(txs []domain.Transaction, accounts []domain.Account, goals []domain.Goal) domain.FinancialHealth {
	if len(txs) == 0 {
		return domain.FinancialHealth{
			Breakdown:       map[string]float64{},
			Recommendations: []string{"Start tracking your transactions to get a financial health score."},
		}
	}

	cats := map[string]struct{}{}
	days := map[string]struct{}{}
	income, expense := 0.0, 0.0
	for _, tx := range txs {
		cats[tx.Category] = struct{}{}
		days[tx.TransactionDate.Date()] = struct{}{}
		v := tx.Amount.InexactFloat64()
		if v > 0 {
			income += v
		} else {
			expense -= v
		}
	}

	diversity := minf(float64(len(cats))/10, 1)
	savings := 0.0
	if income > 0 {
		savings = clamp((income-expense)/income, 0, 1)
	}
	progress := 0.0
	if len(goals) > 0 {
		cur, target := 0.0, 0.0
		for _, g := range goals {
			cur += g.CurrentAmount.InexactFloat64()
			target += g.TargetAmount.InexactFloat64()
		}
		if target > 0 {
			progress = minf(cur/target, 1)
		}
	}
	balance := totalBalance(accounts).InexactFloat64()
	monthlyExpenses := expense / float64(len(days))
	emergency := 0.0
	if monthlyExpenses > 0 {
		emergency = balance / monthlyExpenses
	}

	breakdown := map[string]float64{
		"spending_diversity": round(diversity*20, 2),
		"savings_rate":       round(savings*30, 2),
		"goal_progress":      round(progress*20, 2),
		"emergency_fund":     round(clamp(emergency*2, 0, 20), 2),
		"account_diversity":  minf(float64(len(accounts))*2, 10),
	}
	score := 0.0
	for _, v := range breakdown {
		score += v
	}
	return domain.FinancialHealth{
		Score:           round(score, 0),
		Breakdown:       breakdown,
		Recommendations: recommendations(breakdown, balance, monthlyExpenses),
	}
}

func recommendations(b map[string]float64, balance, monthlyExpenses float64) []string {
	var out []string
	if b["savings_rate"] < 15 {
		out = append(out, "Consider increasing your savings rate by 5-10% of your income")
	}
	if b["emergency_fund"] < 10 {
		months := 0.0
		if monthlyExpenses > 0 {
			months = balance / monthlyExpenses
		}
		out = append(out, "Build an emergency fund (currently "+decimal.NewFromFloat(months).StringFixed(1)+" months covered, aim for 3-6 months)")
	}
	if b["spending_diversity"] < 10 {
		out = append(out, "Diversify your spending categories for better budget management")
	}
	if b["goal_progress"] < 10 {
		out = append(out, "Set clear financial goals and track your progress regularly")
	}
	if b["account_diversity"] < 5 {
		out = append(out, "Consider diversifying your accounts across different financial institutions")
	}
	if len(out) == 0 {
		out = append(out, "Great job! Your financial health is on track. Consider exploring investment opportunities.")
	}
	return out
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
