package cryptocompare

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/holdings"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the CryptoCompare API.

// apiError detects CryptoCompare's in-band error payload. The service
// answers HTTP 200 with {"Response":"Error","Message":...} on bad symbols,
// rate limits or bad credentials.
func apiError(jobj any) error {
	m, ok := jobj.(map[string]any)
	if !ok {
		return nil
	}
	if m["Response"] != "Error" {
		return nil
	}
	if msg, ok := m["Message"].(string); ok {
		return fmt.Errorf("price service error: %s", msg)
	}
	return fmt.Errorf("price service error")
}

// usdOf extracts the USD price quoted for a token out of a decoded payload.
// The payload keys are the token symbols themselves, so the value is reached
// by path rather than by a static struct.
func usdOf(jobj any, token string) (decimal.Decimal, bool) {
	path := fmt.Sprintf("$[%q].USD", token)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, false
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(val), true
}

// CurrentPrices returns the current USD unit price for each token, in a
// single bulk request.
//
// https://min-api.cryptocompare.com/data/pricemulti?fsyms=BTC,ETH&tsyms=USD
//
//	{
//	   "BTC": { "USD": 64123.45 },
//	   "ETH": { "USD": 3456.78 }
//	}
//
// A token the service does not quote is simply absent from the result; it is
// the caller's job to surface it, absence must never read as a zero price.
func CurrentPrices(apiKey string, tokens []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(tokens))
	if len(tokens) == 0 {
		return prices, nil
	}

	addr := fmt.Sprintf("%s/data/pricemulti?fsyms=%s&tsyms=USD", baseURL, url.QueryEscape(strings.Join(tokens, ",")))

	// that's the payload, keyed by token symbol
	var jobj any
	if err := jwget(newClient(apiKey), addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch current prices: %w", err)
	}
	if err := apiError(jobj); err != nil {
		return nil, err
	}

	for _, token := range tokens {
		if price, ok := usdOf(jobj, token); ok {
			prices[token] = price
		}
	}
	return prices, nil
}

// HistoricalPrice returns the USD unit price of one token at the given
// epoch second.
//
// https://min-api.cryptocompare.com/data/pricehistorical?fsym=BTC&tsyms=USD&ts=1640995199
//
//	{ "BTC": { "USD": 46216.93 } }
//
// Historical answers never change, so the response goes through the daily
// disk cache.
func HistoricalPrice(apiKey, token string, timestamp int64) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/data/pricehistorical?fsym=%s&tsyms=USD&ts=%d", baseURL, url.QueryEscape(token), timestamp)

	var jobj any
	if err := jwget(newCachingClient(apiKey), addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch historical price for %q: %w", token, err)
	}
	if err := apiError(jobj); err != nil {
		return decimal.Zero, fmt.Errorf("historical price for %q: %w", token, err)
	}

	price, ok := usdOf(jobj, token)
	if !ok {
		return decimal.Zero, fmt.Errorf("no USD quote for %q at %d in the response", token, timestamp)
	}
	return price, nil
}

// HistoricalPrices resolves the USD unit price of each token at the given
// epoch second, one sequential request per token. A failing lookup is
// isolated: its error is collected and the remaining tokens are still
// fetched, so one delisted or misspelled token cannot abort the whole run.
func HistoricalPrices(apiKey string, tokens []string, timestamp int64) holdings.PriceSet {
	prices := holdings.PriceSet{
		Unit:   make(map[string]holdings.Money, len(tokens)),
		Errors: make(map[string]error),
	}
	for _, token := range tokens {
		price, err := HistoricalPrice(apiKey, token, timestamp)
		if err != nil {
			prices.Errors[token] = err
			continue
		}
		prices.Unit[token] = holdings.USD(price)
	}
	return prices
}
