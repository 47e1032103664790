// Package holdings computes per-token net balances from a ledger of
// deposit and withdrawal transactions, and values those balances in USD.
//
// The core functionalities include:
//   - Ledger Decoding: Streaming transactions out of a header-mapped CSV
//     file, one record at a time, with strict row validation.
//   - Balance Aggregation: A pure fold of the transaction stream into a
//     per-token balance mapping, with an optional single-token filter and
//     an optional as-of-date cutoff.
//   - Valuation: Combining a balance mapping with resolved USD unit prices
//     into a report, keeping explicit track of tokens whose price could
//     not be resolved.
//
// All amounts are carried as exact decimals ([Quantity], [Money]); binary
// floating point never enters a balance or a valuation.
//
// This package serves as the foundational logic for the `hld` command-line
// tool. Price resolution itself lives in the cryptocompare subpackage.
package holdings
