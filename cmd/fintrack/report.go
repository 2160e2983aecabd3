package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"expense_tracker/internal/aggregate"
	"expense_tracker/internal/ai"
	"expense_tracker/internal/clientstate"
)

func printDashboard(w io.Writer, auth clientstate.Auth, d aggregate.Dashboard) {
	currency := "USD"
	if auth.User != nil {
		fmt.Fprintf(w, "%s <%s>\n", auth.User.Name, auth.User.Email)
		if auth.User.Currency != "" {
			currency = auth.User.Currency
		}
	}
	window := string(d.Range.Kind)
	if d.Range.Date != "" {
		window += " " + d.Range.Date
	}
	fmt.Fprintf(w, "Range: %s  Expenses: %d  Total: %s %s\n\n", window, d.Count, d.Total.StringFixed(2), currency)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL\t")
	for _, t := range d.CategoryTotals {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", t.Category, t.Count, t.Total.StringFixed(2))
	}
	_ = tw.Flush()

	if len(d.BudgetVsActual) == 0 {
		return
	}
	fmt.Fprintf(w, "\nBudgets for %s\n", d.Month)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tBUDGET\tSPENT\tREMAINING\tOVER\t")
	for _, b := range d.BudgetVsActual {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", b.Category,
			b.Budget.StringFixed(2), b.Spent.StringFixed(2), b.Remaining.StringFixed(2), b.OverBy.StringFixed(2))
	}
	_ = tw.Flush()
}

func printAnalysis(w io.Writer, a *ai.Analysis) {
	fmt.Fprintln(w, "\nAI analysis")
	if a.Format == ai.FormatText {
		var text string
		_ = json.Unmarshal(a.SpendingAnalysis, &text)
		fmt.Fprintln(w, text)
		return
	}
	for _, section := range []struct {
		title string
		body  json.RawMessage
	}{
		{"Spending", a.SpendingAnalysis},
		{"Anomalies", a.Anomalies},
		{"Recommendations", a.Recommendations},
		{"Alerts", a.Alerts},
	} {
		fmt.Fprintf(w, "%s:\n%s\n", section.title, indent(section.body))
	}
}

func indent(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	if s, ok := v.(string); ok {
		return "  " + s
	}
	out, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return string(raw)
	}
	return "  " + string(out)
}
