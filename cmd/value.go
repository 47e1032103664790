package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/cryptocompare"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	token    string
	date     string
	markdown bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value per-token net balances in USD" }
func (*valueCmd) Usage() string {
	return `hld value [-t <token>] [-d <MM-DD-YYYY>]

  Folds the ledger into per-token net balances and converts each balance to
  USD, printing one line per token:

      BTC : $12,345.67

  Without -d, a single bulk request resolves current prices. With -d, the
  balance is computed as of 23:59:59 UTC of that day, and each token is
  priced at that instant with one historical request per token.

  With -md, the report is rendered as a table with the balance and the unit
  price behind each value.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "t", "", "Restrict to one token symbol (exact match).")
	f.StringVar(&c.date, "d", "", "Value the balances as of this date (strict MM-DD-YYYY).")
	f.BoolVar(&c.markdown, "md", false, "Render the report as a markdown table with unit prices.")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := holdings.Filter{Token: c.token}
	if c.date != "" {
		cutoff, err := holdings.ParseCutoff(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.Cutoff = &cutoff
	}

	// a missing credential must fail before any work, not as an opaque oracle error.
	apiKey := cryptocompare.APIKey()
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cryptocompare.ErrMissingAPIKey)
		return subcommands.ExitFailure
	}

	records, closeLedger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closeLedger()

	balances, err := holdings.Aggregate(records, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("processed all transactions, %d token(s) to value", len(balances))

	var prices holdings.PriceSet
	if filter.Cutoff == nil {
		// bulk mode: a failure here has no partial result to fall back to.
		current, err := cryptocompare.CurrentPrices(apiKey, balances.Tokens())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching current prices: %v\n", err)
			return subcommands.ExitFailure
		}
		prices.Unit = make(map[string]holdings.Money, len(current))
		for token, price := range current {
			prices.Unit[token] = holdings.USD(price)
		}
	} else {
		prices = cryptocompare.HistoricalPrices(apiKey, balances.Tokens(), filter.Cutoff.Unix())
	}

	report := holdings.NewValuation(balances, prices)
	if c.markdown {
		printMarkdown(renderer.ValuationMarkdown(report))
	} else {
		fmt.Print(renderer.Valuation(report))
	}
	for _, token := range report.Unpriced {
		fmt.Fprintf(os.Stderr, "Warning: no USD price for %s, not valued\n", token)
	}
	for _, token := range balances.Tokens() {
		if err, ok := report.Errors[token]; ok {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if allLookupsFailed(report, balances) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// allLookupsFailed reports whether the run produced nothing at all: every
// token with a balance has a lookup failure on record. A partially valued
// report still counts as a success; the failed tokens are warned about.
func allLookupsFailed(report *holdings.Valuation, balances holdings.Balances) bool {
	return len(balances) > 0 && len(report.Errors) == len(balances)
}
