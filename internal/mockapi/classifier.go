package mockapi

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

const modelType = "Multinomial Naive Bayes"

// fallbackCategory is predicted when no keyword matches.
const fallbackCategory = "shopping"

// categories lists the classifier's labels in a fixed order.
var categories = []string{
	"groceries", "transport", "utilities", "entertainment", "healthcare",
	"education", "shopping", "mobile_money", "cash_withdrawal", "restaurants",
	"transfer", "salary", "investment", "savings", "insurance", "personal_care",
}

var keywords = map[string][]string{
	"groceries":       {"ok zimbabwe", "tm pick", "pick n pay", "spar", "grocer", "supermarket", "bread", "mealie", "market"},
	"transport":       {"kombi", "fuel", "zupco", "taxi", "uber", "bus", "petrol", "diesel"},
	"utilities":       {"zesa", "electricity", "water", "internet", "airtime", "econet", "netone", "telone", "council"},
	"entertainment":   {"movie", "cinema", "concert", "netflix", "dstv", "showmax", "match", "event"},
	"healthcare":      {"hospital", "clinic", "pharmacy", "doctor", "cimas", "psmi", "dental"},
	"education":       {"school", "fees", "tuition", "university", "textbook", "uz", "course"},
	"shopping":        {"clothing", "edgars", "truworths", "electronics", "shoes", "mall"},
	"mobile_money":    {"ecocash", "onemoney", "telecash", "innbucks"},
	"cash_withdrawal": {"atm", "withdrawal", "cash out", "bank counter"},
	"restaurants":     {"nandos", "pizza inn", "chicken inn", "restaurant", "cafe", "lunch", "dinner"},
	"transfer":        {"transfer", "sent to", "send money", "family", "mukuru"},
	"salary":          {"salary", "payroll", "wages", "freelance", "income", "payment received"},
	"investment":      {"shares", "stock", "bond", "old mutual", "zse", "property", "dividend"},
	"savings":         {"savings", "deposit", "fixed deposit"},
	"insurance":       {"insurance", "premium", "policy", "funeral cover", "first mutual"},
	"personal_care":   {"salon", "barber", "gym", "spa", "beauty", "cosmetics"},
}

// classify predicts a category from keyword hits with add-one smoothing, then
// applies the amount rules of the trained model.
func classify(description string, amount *decimal.Decimal) domain.CategoryPrediction {
	text := strings.ToLower(description)

	hits := make(map[string]int, len(categories))
	total := 0
	for _, cat := range categories {
		for _, kw := range keywords[cat] {
			if strings.Contains(text, kw) {
				hits[cat]++
				total++
			}
		}
	}

	probs := make(map[string]float64, len(categories))
	best, bestP := fallbackCategory, -1.0
	denom := float64(total + len(categories))
	for _, cat := range categories {
		p := float64(hits[cat]+1) / denom
		probs[cat] = round(p, 4)
		if total > 0 && p > bestP {
			best, bestP = cat, p
		}
	}
	if total == 0 {
		bestP = 1 / denom
	}

	if amount != nil {
		abs := amount.Abs()
		switch {
		case abs.GreaterThan(decimal.NewFromInt(1000)) && (best == "shopping" || best == "personal_care"):
			best = "investment"
		case abs.LessThan(decimal.NewFromInt(5)) && best == "transport":
			best = "mobile_money"
		case abs.GreaterThan(decimal.NewFromInt(500)) && best == "restaurants":
			best = "entertainment"
		}
	}

	return domain.CategoryPrediction{
		Category:         best,
		Confidence:       round(bestP, 4),
		AllProbabilities: probs,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
