package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	token string
}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display a chronological log of the ledger transactions"
}
func (*logCmd) Usage() string {
	return `hld log [-t <token>]

  Lists the ledger transactions in chronological order. The file itself is
  not required to be sorted.
`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.token, "t", "", "Restrict to one token symbol (exact match).")
}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := decodeAllTransactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if p.token != "" {
		kept := txs[:0]
		for _, tx := range txs {
			if tx.Token == p.token {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Timestamp < txs[j].Timestamp })

	printMarkdown(renderer.Transactions(txs))
	return subcommands.ExitSuccess
}
