// Package insight turns ledger summaries into short business advice using a
// language model.
package insight

import (
	"fmt"
	"strings"

	"github.com/zombor/slip-tracker/internal/ledger"
)

const advisorInstructions = `You are a bookkeeping assistant for a small Thai business.
Using only the figures below (amounts in THB), write 3 to 5 short, practical observations
about cash flow, the largest expense categories and month-over-month changes.
Do not invent numbers. Answer in plain text without markdown headings.`

// Prompt renders a summary into the text sent to the model
func Prompt(summary *ledger.Summary) string {
	var b strings.Builder
	b.WriteString(advisorInstructions)
	b.WriteString("\n\n")

	period := "all recorded transactions"
	switch {
	case summary.From != "" && summary.To != "":
		period = fmt.Sprintf("%s to %s", summary.From, summary.To)
	case summary.From != "":
		period = "since " + summary.From
	case summary.To != "":
		period = "until " + summary.To
	}
	fmt.Fprintf(&b, "Period: %s\n", period)
	fmt.Fprintf(&b, "Transactions: %d\n", summary.Count)
	fmt.Fprintf(&b, "Income: %s\nExpense: %s\nNet: %s\n",
		summary.Income.StringFixed(2), summary.Expense.StringFixed(2), summary.Net.StringFixed(2))

	if len(summary.Categories) > 0 {
		b.WriteString("\nBy category:\n")
		for _, c := range summary.Categories {
			fmt.Fprintf(&b, "- %s: income %s, expense %s (%d)\n",
				c.Category, c.Income.StringFixed(2), c.Expense.StringFixed(2), c.Count)
		}
	}

	if len(summary.Months) > 0 {
		b.WriteString("\nBy month:\n")
		for _, m := range summary.Months {
			fmt.Fprintf(&b, "- %s: income %s, expense %s, net %s\n",
				m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net.StringFixed(2))
		}
	}

	return b.String()
}
