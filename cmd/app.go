// Package cmd implements the CLI application to value a token ledger.
package cmd

import (
	"flag"
	"fmt"
	"iter"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands.
// A main package registers each of them on a commander.
var Commands = []subcommands.Command{
	&valueCmd{},
	&balanceCmd{},
	&logCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "data/transactions.csv", "Path to the ledger file containing transactions (CSV format)")

// DecodeLedger opens the app ledger file and returns its lazy transaction
// stream. The returned closer releases the file once the stream has been
// consumed.
func DecodeLedger() (iter.Seq2[holdings.Transaction, error], func() error, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read ledger file %q: %w", *ledgerFile, err)
	}
	return holdings.DecodeTransactions(f), f.Close, nil
}

// decodeAllTransactions reads the whole ledger file into memory, for the
// commands that need more than a single pass.
func decodeAllTransactions() ([]holdings.Transaction, error) {
	records, closeLedger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	defer closeLedger()

	var txs []holdings.Transaction
	for tx, err := range records {
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
