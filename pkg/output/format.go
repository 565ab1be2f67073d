// Package output provides utilities for formatting and displaying allocation
// advice.
package output

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/iwvelando/stockwatch-advisor/internal/advisor"
	"github.com/iwvelando/stockwatch-advisor/pkg/format"
)

// Report bundles everything the formatters print: the solved advice, the
// input assets (for the verbose projection table), and the informational
// eviction ratio.
type Report struct {
	Advice              *advisor.Advice
	Assets              []advisor.Asset
	EvictionProbability float64
	Verbose             bool
}

// PrettyFormat outputs a human-readable advice report. In verbose mode it
// additionally prints every asset's projections and lists zero-unit
// recommendations rather than only positive ones.
func PrettyFormat(r Report) {
	if r.Verbose {
		projectionTable(r.Assets)
	}

	fmt.Printf("Net worth: %s\n\n", format.Currency(r.Advice.NetWorth))

	fmt.Printf("Advice\n")
	fmt.Printf("------\n")
	for _, position := range r.Advice.Positions {
		if position.Units > 0 || r.Verbose {
			fmt.Printf("%s: %d (%s -> %s)\n", position.Name, position.Units,
				format.Currency(position.CostBasis), format.Currency(position.ProjectedValue))
		}
	}
	if r.Advice.CashHeldCents > 0 || r.Verbose {
		cash := r.Advice.CashHeld()
		fmt.Printf("Holdings: %d (%s -> %s)\n", r.Advice.CashHeldCents,
			format.Currency(cash), format.Currency(cash))
	}
	fmt.Printf("------\n\n")

	fmt.Printf("Expected Value: %s (%s)\n\n", format.Currency(r.Advice.ExpectedValue),
		format.Percent(r.Advice.ExpectedChangePercent()))

	fmt.Printf("Eviction Probability: %g\n", r.EvictionProbability)
}

// projectionTable prints cost, raw projections, mean projection, and
// expected change for every asset regardless of whether it was selected.
func projectionTable(assets []advisor.Asset) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name\tCost ($)\tProjections ($)\tAverage Projection ($)\tExpected Change (%%)\n")
	fmt.Fprintf(w, "____\t________\t_______________\t______________________\t___________________\n")
	for _, asset := range assets {
		fmt.Fprintf(w, "%s\t%.2f\t%v\t%.2f\t%s\n",
			asset.Name, asset.Cost, asset.Projections, asset.Projection(),
			format.Percent(asset.ExpectedChange()))
	}
	_ = w.Flush()
	fmt.Printf("\n")
}

// CsvFormat outputs the advice in comma-separated value format.
func CsvFormat(r Report) {
	fmt.Printf(`"name","units","cost basis","projected value"`)
	fmt.Printf("\n")
	for _, position := range r.Advice.Positions {
		fmt.Printf(`"%s","%d","%.2f","%.2f"`, position.Name, position.Units,
			position.CostBasis, position.ProjectedValue)
		fmt.Printf("\n")
	}
	cash := r.Advice.CashHeld()
	fmt.Printf(`"holdings","%d","%.2f","%.2f"`, r.Advice.CashHeldCents, cash, cash)
	fmt.Printf("\n")
	fmt.Printf(`"expected value","","%.2f","%.4f%%"`, r.Advice.ExpectedValue, r.Advice.ExpectedChangePercent())
	fmt.Printf("\n")
	fmt.Printf(`"eviction probability","%g","",""`, r.EvictionProbability)
	fmt.Printf("\n")
}
