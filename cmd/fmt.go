package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `hld fmt [-o <file>]

  Validates and formats the ledger file. This command reads all transactions,
  validates them, sorts them by timestamp, and writes them back as a CSV with
  the columns in their conventional order. By default it rewrites the ledger
  in place; use -o to write elsewhere.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output file. Rewrites the ledger in place by default.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := decodeAllTransactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Timestamp < txs[j].Timestamp })

	filename := p.outputFile
	if filename == "" {
		filename = *ledgerFile
	}
	// write to a sibling temp file and rename over the target, so a mid-write
	// failure never truncates the only copy of the ledger.
	out, err := os.CreateTemp(filepath.Dir(filename), ".fmt-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if err := holdings.EncodeTransactions(out, txs); err != nil {
		out.Close()
		os.Remove(out.Name())
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(out.Name(), filename); err != nil {
		os.Remove(out.Name())
		fmt.Fprintf(os.Stderr, "Error replacing ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully formatted %d transactions into %s\n", len(txs), filename)
	return subcommands.ExitSuccess
}
