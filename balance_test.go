package holdings

import (
	"errors"
	"iter"
	"testing"
)

// seq turns a fixed set of transactions into a record stream.
func seq(txs ...Transaction) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		for _, tx := range txs {
			if !yield(tx, nil) {
				return
			}
		}
	}
}

func mustCutoff(t *testing.T, str string) *Cutoff {
	t.Helper()
	c, err := ParseCutoff(str)
	if err != nil {
		t.Fatalf("ParseCutoff(%q) error = %v", str, err)
	}
	return &c
}

func TestAggregate(t *testing.T) {
	// t1 < t2 are in January 2021, t3 is the first second of February.
	const (
		t1 = 1609459200 // 2021-01-01T00:00:00Z
		t2 = 1610000000
		t3 = 1612137600 // 2021-02-01T00:00:00Z
	)
	records := []Transaction{
		{Token: "A", Type: Deposit, Amount: Q(10), Timestamp: t1},
		{Token: "A", Type: Withdrawal, Amount: Q(3), Timestamp: t2},
		{Token: "B", Type: Deposit, Amount: Q(5), Timestamp: t3},
	}

	testCases := []struct {
		name    string
		records []Transaction
		filter  Filter
		want    map[string]float64
	}{
		{
			name:    "no filter no date",
			records: records,
			want:    map[string]float64{"A": 7, "B": 5},
		},
		{
			name:    "single token filter",
			records: records,
			filter:  Filter{Token: "A"},
			want:    map[string]float64{"A": 7},
		},
		{
			name:    "filtered-out token has no zero entry",
			records: records,
			filter:  Filter{Token: "B"},
			want:    map[string]float64{"B": 5},
		},
		{
			name:    "cutoff between t2 and t3 excludes B",
			records: records,
			filter:  Filter{Cutoff: mustCutoff(t, "01-31-2021")},
			want:    map[string]float64{"A": 7},
		},
		{
			name:    "cutoff on the record day includes it",
			records: records,
			filter:  Filter{Cutoff: mustCutoff(t, "02-01-2021")},
			want:    map[string]float64{"A": 7, "B": 5},
		},
		{
			name: "order does not matter",
			records: []Transaction{
				{Token: "B", Type: Deposit, Amount: Q(5), Timestamp: t3},
				{Token: "A", Type: Withdrawal, Amount: Q(3), Timestamp: t2},
				{Token: "A", Type: Deposit, Amount: Q(10), Timestamp: t1},
			},
			want: map[string]float64{"A": 7, "B": 5},
		},
		{
			name: "unsupported type still creates a zero entry",
			records: []Transaction{
				{Token: "A", Type: "TRANSFER", Amount: Q(10), Timestamp: t1},
			},
			want: map[string]float64{"A": 0},
		},
		{
			name: "misspelled withdrawal subtracts",
			records: []Transaction{
				{Token: "A", Type: Deposit, Amount: Q(10), Timestamp: t1},
				{Token: "A", Type: "WITHDRAWL", Amount: Q(4), Timestamp: t2},
			},
			want: map[string]float64{"A": 6},
		},
		{
			name: "empty ledger",
			want: map[string]float64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Aggregate(seq(tc.records...), tc.filter)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Aggregate() = %v, want %d tokens %v", got, len(tc.want), tc.want)
			}
			for token, balance := range tc.want {
				if !got[token].Equal(Q(balance)) {
					t.Errorf("Aggregate()[%q] = %v, want %v", token, got[token], balance)
				}
			}
		})
	}
}

func TestAggregate_Idempotence(t *testing.T) {
	records := []Transaction{
		{Token: "A", Type: Deposit, Amount: Q(1.5), Timestamp: 1},
		{Token: "A", Type: Withdrawal, Amount: Q(0.25), Timestamp: 2},
		{Token: "B", Type: Deposit, Amount: Q(100), Timestamp: 3},
	}
	first, err := Aggregate(seq(records...), Filter{})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	second, err := Aggregate(seq(records...), Filter{})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("two identical runs disagree: %v vs %v", first, second)
	}
	for token := range first {
		if !first[token].Equal(second[token]) {
			t.Errorf("two identical runs disagree on %q: %v vs %v", token, first[token], second[token])
		}
	}
}

func TestAggregate_CutoffMonotonicity(t *testing.T) {
	// moving the cutoff later can only add deposits or withdrawals, never
	// un-count anything: every token balance seen at an earlier cutoff must
	// come from a superset of records at a later cutoff.
	records := []Transaction{
		{Token: "A", Type: Deposit, Amount: Q(10), Timestamp: 1609459200},  // 2021-01-01
		{Token: "A", Type: Deposit, Amount: Q(5), Timestamp: 1612137600},   // 2021-02-01
		{Token: "B", Type: Withdrawal, Amount: Q(1), Timestamp: 1614556800}, // 2021-03-01
	}
	early, err := Aggregate(seq(records...), Filter{Cutoff: mustCutoff(t, "01-15-2021")})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	late, err := Aggregate(seq(records...), Filter{Cutoff: mustCutoff(t, "02-15-2021")})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if !early["A"].Equal(Q(10)) {
		t.Errorf("early cutoff A = %v, want 10", early["A"])
	}
	if !late["A"].Equal(Q(15)) {
		t.Errorf("late cutoff A = %v, want 15", late["A"])
	}
	if _, ok := early["B"]; ok {
		t.Errorf("early cutoff must not contain B, got %v", early["B"])
	}
	if _, ok := late["B"]; ok {
		t.Errorf("late cutoff must not contain B, got %v", late["B"])
	}
}

func TestAggregate_InvalidRecordAborts(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{name: "missing token", tx: Transaction{Type: Deposit, Amount: Q(1)}},
		{name: "negative amount", tx: Transaction{Token: "A", Type: Deposit, Amount: Q(-1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bad := func(yield func(Transaction, error) bool) {
				if err := tc.tx.Validate(); err != nil {
					yield(Transaction{}, err)
					return
				}
				yield(tc.tx, nil)
			}
			if _, err := Aggregate(bad, Filter{}); err == nil {
				t.Errorf("Aggregate() expected an error for %s", tc.name)
			}
		})
	}
}

func TestAggregate_PropagatesStreamError(t *testing.T) {
	streamErr := errors.New("broken pipe")
	broken := func(yield func(Transaction, error) bool) {
		if !yield(Transaction{Token: "A", Type: Deposit, Amount: Q(1)}, nil) {
			return
		}
		yield(Transaction{}, streamErr)
	}
	_, err := Aggregate(broken, Filter{})
	if !errors.Is(err, streamErr) {
		t.Errorf("Aggregate() error = %v, want %v", err, streamErr)
	}
}
