package holdings

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// this file contains functions to handle the ledger CSV format.
// It should remain human readable, single file and easy to produce from any
// exchange export.

// the required ledger columns. Order in the file is not significant, the
// header row decides.
const (
	colToken     = "token"
	colType      = "transaction_type"
	colAmount    = "amount"
	colTimestamp = "timestamp"
)

// DecodeTransactions returns a lazy sequence of transactions read from 'r'.
//
// The first row is the header; it maps column names to fields, so columns can
// appear in any order, and extra columns are ignored. A malformed header or
// row yields a non-nil error and terminates the sequence: consumers are
// expected to abort rather than aggregate over an incomplete ledger.
func DecodeTransactions(r io.Reader) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		cr := csv.NewReader(r)

		header, err := cr.Read()
		if err == io.EOF {
			yield(Transaction{}, fmt.Errorf("ledger is empty, a header row is required"))
			return
		}
		if err != nil {
			yield(Transaction{}, fmt.Errorf("cannot read ledger header: %w", err))
			return
		}
		index := make(map[string]int, len(header))
		for i, name := range header {
			index[name] = i
		}
		for _, name := range []string{colToken, colType, colAmount, colTimestamp} {
			if _, ok := index[name]; !ok {
				yield(Transaction{}, fmt.Errorf("ledger header is missing required column %q", name))
				return
			}
		}

		row := 1 // the header was row 1
		for {
			record, err := cr.Read()
			if err == io.EOF {
				return
			}
			row++
			if err != nil {
				yield(Transaction{}, fmt.Errorf("cannot parse ledger row %d: %w", row, err))
				return
			}

			amount, err := ParseQuantity(record[index[colAmount]])
			if err != nil {
				yield(Transaction{}, fmt.Errorf("ledger row %d has a non-numeric amount %q: %w", row, record[index[colAmount]], err))
				return
			}
			timestamp, err := strconv.ParseInt(record[index[colTimestamp]], 10, 64)
			if err != nil {
				yield(Transaction{}, fmt.Errorf("ledger row %d has an invalid timestamp %q: %w", row, record[index[colTimestamp]], err))
				return
			}

			tx := Transaction{
				Token:     record[index[colToken]],
				Type:      TransactionType(record[index[colType]]),
				Amount:    amount,
				Timestamp: timestamp,
			}
			if err := tx.Validate(); err != nil {
				yield(Transaction{}, fmt.Errorf("ledger row %d: %w", row, err))
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

// EncodeTransactions writes transactions to 'w' in the canonical ledger
// format: the four required columns in their conventional order, spelling
// variants normalized.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{colToken, colType, colAmount, colTimestamp}); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.Token,
			string(tx.Type.normalize()),
			tx.Amount.String(),
			strconv.FormatInt(tx.Timestamp, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
