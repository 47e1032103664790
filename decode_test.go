package holdings

import (
	"strings"
	"testing"
)

// readAll drains the decoded stream, stopping at the first error.
func readAll(input string) ([]Transaction, error) {
	var txs []Transaction
	for tx, err := range DecodeTransactions(strings.NewReader(input)) {
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func TestDecodeTransactions(t *testing.T) {
	input := `token,transaction_type,amount,timestamp
BTC,DEPOSIT,0.5,1609459200
ETH,WITHDRAWAL,2,1612137600
`
	txs, err := readAll(input)
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("DecodeTransactions() = %d rows, want 2", len(txs))
	}
	want := Transaction{Token: "BTC", Type: Deposit, Amount: Q(0.5), Timestamp: 1609459200}
	if txs[0].Token != want.Token || txs[0].Type != want.Type || txs[0].Timestamp != want.Timestamp || !txs[0].Amount.Equal(want.Amount) {
		t.Errorf("DecodeTransactions()[0] = %+v, want %+v", txs[0], want)
	}
}

func TestDecodeTransactions_ColumnOrder(t *testing.T) {
	// column order is decided by the header, extra columns are ignored.
	input := `timestamp,exchange,amount,token,transaction_type
1609459200,kraken,0.5,BTC,DEPOSIT
`
	txs, err := readAll(input)
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(txs) != 1 || txs[0].Token != "BTC" || !txs[0].Amount.Equal(Q(0.5)) || txs[0].Timestamp != 1609459200 {
		t.Errorf("DecodeTransactions() = %+v, want the reordered columns mapped by name", txs)
	}
}

func TestDecodeTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{
			name: "missing amount column",
			input: `token,transaction_type,timestamp
BTC,DEPOSIT,1609459200
`,
		},
		{
			name: "non-numeric amount",
			input: `token,transaction_type,amount,timestamp
BTC,DEPOSIT,lots,1609459200
`,
		},
		{
			name: "bad timestamp",
			input: `token,transaction_type,amount,timestamp
BTC,DEPOSIT,0.5,tomorrow
`,
		},
		{
			name: "missing token",
			input: `token,transaction_type,amount,timestamp
,DEPOSIT,0.5,1609459200
`,
		},
		{
			name: "negative amount",
			input: `token,transaction_type,amount,timestamp
BTC,DEPOSIT,-0.5,1609459200
`,
		},
		{
			name: "ragged row",
			input: `token,transaction_type,amount,timestamp
BTC,DEPOSIT,0.5
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := readAll(tc.input); err == nil {
				t.Errorf("DecodeTransactions() expected an error for %s", tc.name)
			}
		})
	}
}

func TestTransactionType_Sign(t *testing.T) {
	testCases := []struct {
		typ  TransactionType
		want int
	}{
		{Deposit, 1},
		{Withdrawal, -1},
		{"WITHDRAWL", -1}, // misspelling found in historical exports
		{"TRANSFER", 0},
		{"deposit", 0}, // types are case-sensitive
		{"", 0},
	}
	for _, tc := range testCases {
		if got := tc.typ.Sign(); got != tc.want {
			t.Errorf("TransactionType(%q).Sign() = %d, want %d", tc.typ, got, tc.want)
		}
	}
}

func TestEncodeTransactions(t *testing.T) {
	txs := []Transaction{
		{Token: "BTC", Type: Deposit, Amount: Q(0.5), Timestamp: 1609459200},
		{Token: "ETH", Type: "WITHDRAWL", Amount: Q(2), Timestamp: 1612137600},
	}
	var b strings.Builder
	if err := EncodeTransactions(&b, txs); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	want := `token,transaction_type,amount,timestamp
BTC,DEPOSIT,0.5,1609459200
ETH,WITHDRAWAL,2,1612137600
`
	if b.String() != want {
		t.Errorf("EncodeTransactions() = %q, want %q", b.String(), want)
	}

	// the canonical form must decode back to the same transactions.
	back, err := readAll(b.String())
	if err != nil {
		t.Fatalf("DecodeTransactions() on canonical output error = %v", err)
	}
	if len(back) != len(txs) {
		t.Fatalf("round trip lost rows: %d, want %d", len(back), len(txs))
	}
}
