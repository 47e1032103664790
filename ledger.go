package holdings

import "fmt"

// TransactionType classifies a ledger row.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"

	// Some historical exchange exports misspell the withdrawal type.
	// It is accepted on read and rewritten as Withdrawal by EncodeTransactions.
	withdrawalAlt TransactionType = "WITHDRAWL"
)

// Sign returns the sign the amount is applied with: +1 for deposits, -1 for
// withdrawals, and 0 for any other type. The record's own sign is never
// trusted; the type alone decides.
func (t TransactionType) Sign() int {
	switch t {
	case Deposit:
		return 1
	case Withdrawal, withdrawalAlt:
		return -1
	default:
		return 0
	}
}

// normalize maps accepted spelling variants to their canonical type.
func (t TransactionType) normalize() TransactionType {
	if t == withdrawalAlt {
		return Withdrawal
	}
	return t
}

// Transaction is one row of the ledger file.
type Transaction struct {
	Token     string          // token symbol, case-sensitive identity key
	Type      TransactionType // DEPOSIT, WITHDRAWAL, or anything (ignored)
	Amount    Quantity        // non-negative magnitude
	Timestamp int64           // unix epoch seconds, not necessarily sorted in the file
}

// Validate checks the record-level invariants.
func (tx Transaction) Validate() error {
	if tx.Token == "" {
		return fmt.Errorf("transaction has no token")
	}
	if tx.Amount.IsNegative() {
		return fmt.Errorf("transaction amount %s for token %q is negative, the sign is derived from the type", tx.Amount, tx.Token)
	}
	return nil
}
