package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	token string
	date  string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display per-token net balances, without pricing" }
func (*balanceCmd) Usage() string {
	return `hld balance [-t <token>] [-d <MM-DD-YYYY>]

  Folds the ledger into per-token net balances and displays them. No network
  access: this is the aggregation half of 'value' alone.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "t", "", "Restrict to one token symbol (exact match).")
	f.StringVar(&c.date, "d", "", "Balance as of this date (strict MM-DD-YYYY).")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := holdings.Filter{Token: c.token}
	if c.date != "" {
		cutoff, err := holdings.ParseCutoff(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.Cutoff = &cutoff
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

	printMarkdown(renderer.BalancesMarkdown(balances))
	return subcommands.ExitSuccess
}
