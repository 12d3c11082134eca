package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const uncategorized = "uncategorized"

// Totals aggregates income and expense over a set of transactions
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

func (t *Totals) add(tx *Transaction) {
	switch tx.Kind {
	case Income:
		t.Income = t.Income.Add(tx.Amount)
	case Expense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Net = t.Income.Sub(t.Expense)
	t.Count++
}

// CategoryTotals are the totals of one category
type CategoryTotals struct {
	Category string `json:"category"`
	Totals
}

// MonthTotals are the totals of one calendar month
type MonthTotals struct {
	Month string `json:"month"` // YYYY-MM
	Totals
}

// Summary is the aggregated view of the ledger over a date range
type Summary struct {
	From       string           `json:"from,omitempty"`
	To         string           `json:"to,omitempty"`
	Totals
	Categories []CategoryTotals `json:"categories"`
	Months     []MonthTotals    `json:"months"`
}

// summarize aggregates the transactions dated within [from, to]; zero bounds are open
func summarize(transactions []*Transaction, from, to time.Time) *Summary {
	summary := &Summary{
		Categories: []CategoryTotals{},
		Months:     []MonthTotals{},
	}
	if !from.IsZero() {
		summary.From = from.Format(dateLayout)
	}
	if !to.IsZero() {
		summary.To = to.Format(dateLayout)
	}

	categories := map[string]*CategoryTotals{}
	months := map[string]*MonthTotals{}

	for _, tx := range transactions {
		day := tx.Date.Format(dateLayout)
		if summary.From != "" && day < summary.From {
			continue
		}
		if summary.To != "" && day > summary.To {
			continue
		}

		summary.add(tx)

		category := tx.Category
		if category == "" {
			category = uncategorized
		}
		if _, ok := categories[category]; !ok {
			categories[category] = &CategoryTotals{Category: category}
		}
		categories[category].add(tx)

		month := tx.Date.Format("2006-01")
		if _, ok := months[month]; !ok {
			months[month] = &MonthTotals{Month: month}
		}
		months[month].add(tx)
	}

	for _, c := range categories {
		summary.Categories = append(summary.Categories, *c)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	for _, m := range months {
		summary.Months = append(summary.Months, *m)
	}
	sort.Slice(summary.Months, func(i, j int) bool {
		return summary.Months[i].Month < summary.Months[j].Month
	})

	return summary
}
