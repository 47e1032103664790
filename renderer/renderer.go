// Package renderer formats reports into plain text or markdown strings,
// ready for the terminal.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/holdings"
)

// Valuation renders the report in its console format, one line per valued
// token:
//
//	BTC : $12,345.67
func Valuation(v *holdings.Valuation) string {
	var b strings.Builder
	for _, line := range v.Lines {
		fmt.Fprintf(&b, "%s : %s\n", line.Token, line.Value)
	}
	return b.String()
}

// ValuationMarkdown renders the report as a markdown table, one row per
// valued token with its balance and the unit price the value came from.
func ValuationMarkdown(v *holdings.Valuation) string {
	var b strings.Builder
	b.WriteString("## Valuation\n\n")
	b.WriteString("| Token | Balance | Unit Price | Value |\n")
	b.WriteString("|:---|---:|---:|---:|\n")
	for _, line := range v.Lines {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", line.Token, line.Balance, line.Unit, line.Value)
	}
	b.WriteString("\n")
	return b.String()
}

// BalancesMarkdown renders per-token balances as a markdown table.
func BalancesMarkdown(balances holdings.Balances) string {
	var b strings.Builder
	b.WriteString("## Token Balances\n\n")
	b.WriteString("| Token | Balance |\n")
	b.WriteString("|:---|---:|\n")
	for _, token := range balances.Tokens() {
		fmt.Fprintf(&b, "| %s | %s |\n", token, balances[token])
	}
	b.WriteString("\n")
	return b.String()
}

// Transactions renders a chronological listing of ledger rows as a markdown
// table. Rows are printed in the order given.
func Transactions(txs []holdings.Transaction) string {
	var b strings.Builder
	b.WriteString("## Transactions\n\n")
	b.WriteString("| Date | Token | Type | Amount |\n")
	b.WriteString("|:---|:---|:---|---:|\n")
	for _, tx := range txs {
		on := time.Unix(tx.Timestamp, 0).UTC().Format("2006-01-02 15:04:05")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", on, tx.Token, tx.Type, tx.Amount)
	}
	b.WriteString("\n")
	return b.String()
}
