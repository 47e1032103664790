package holdings

import (
	"iter"
	"sort"
)

// Balances maps a token symbol to its signed net balance: the sum of its
// deposit amounts minus the sum of its withdrawal amounts.
type Balances map[string]Quantity

// Tokens returns the token symbols in lexical order.
func (b Balances) Tokens() []string {
	tokens := make([]string, 0, len(b))
	for token := range b {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Filter restricts which records take part in the aggregation.
type Filter struct {
	Token  string  // exact-match token symbol, empty keeps all tokens
	Cutoff *Cutoff // as-of-date restriction, nil keeps all dates
}

// keeps reports whether a record survives the filter.
func (f Filter) keeps(tx Transaction) bool {
	if f.Token != "" && tx.Token != f.Token {
		return false
	}
	if f.Cutoff != nil && f.Cutoff.Excludes(tx.Timestamp) {
		return false
	}
	return true
}

// Aggregate folds the record sequence into per-token net balances.
//
// It is a pure fold: the returned mapping is freshly allocated and owned by
// the caller. A token filtered out never appears in the result, not even at
// zero, but a surviving token does appear on first sight, even when its
// transaction type is unsupported and leaves the balance at zero.
//
// The fold aborts on the first error from the sequence or the first invalid
// record: a partial aggregation with silently skipped rows would be a
// misleading balance.
func Aggregate(records iter.Seq2[Transaction, error], f Filter) (Balances, error) {
	balances := make(Balances)
	for tx, err := range records {
		if err != nil {
			return nil, err
		}
		if !f.keeps(tx) {
			continue
		}
		balance, ok := balances[tx.Token]
		if !ok {
			balance = Q(0)
		}
		switch tx.Type.Sign() {
		case 1:
			balance = balance.Add(tx.Amount)
		case -1:
			balance = balance.Sub(tx.Amount)
		}
		balances[tx.Token] = balance
	}
	return balances, nil
}
