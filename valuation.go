package holdings

// PriceSet holds the outcome of a price-oracle round: the USD unit prices
// that resolved, and the per-token failures when lookups were issued one
// token at a time.
type PriceSet struct {
	Unit   map[string]Money // resolved USD unit price per token
	Errors map[string]error // per-token lookup failures, nil when none
}

// Line is the valued position of a single token.
type Line struct {
	Token   string
	Balance Quantity
	Unit    Money // USD price of one unit
	Value   Money // Balance × Unit
}

// Valuation is the final report: one line per token with both a balance and
// a resolved price. Tokens the oracle left out are not silently dropped,
// they are listed in Unpriced; tokens whose lookup failed keep their error
// in Errors.
type Valuation struct {
	Lines    []Line
	Unpriced []string // tokens with a balance but absent from the oracle response
	Errors   map[string]error
}

// NewValuation combines balances with resolved prices. It is a pure
// function of its inputs; lines come out in lexical token order.
func NewValuation(balances Balances, prices PriceSet) *Valuation {
	v := &Valuation{Errors: prices.Errors}
	for _, token := range balances.Tokens() {
		unit, ok := prices.Unit[token]
		if !ok {
			if _, failed := prices.Errors[token]; !failed {
				v.Unpriced = append(v.Unpriced, token)
			}
			continue
		}
		v.Lines = append(v.Lines, Line{
			Token:   token,
			Balance: balances[token],
			Unit:    unit,
			Value:   unit.Mul(balances[token]),
		})
	}
	return v
}
