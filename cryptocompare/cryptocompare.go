// Package cryptocompare is a client for the CryptoCompare min-api, used as
// the price oracle: current and historical USD unit prices for token symbols.
package cryptocompare

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"time"
)

const apiKeyEnv = "CRYPTO_COMPARE_API_KEY"

var apiKeyFlag = flag.String("cryptocompare-api-key", "", "CryptoCompare API key to use for fetching prices.\n If missing it will read the environment variable \""+apiKeyEnv+"\". You can get one at https://min-api.cryptocompare.com/")

// ErrMissingAPIKey is returned before any request when no credential is
// configured, so the failure reads as a configuration problem and not as an
// opaque oracle failure.
var ErrMissingAPIKey = errors.New("missing CryptoCompare API key: set " + apiKeyEnv + " or pass -cryptocompare-api-key")

// APIKey returns the configured API key: the flag when set, the environment
// variable otherwise.
func APIKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

// baseURL is a variable so that tests can point the client at a local server.
var baseURL = "https://min-api.cryptocompare.com"

// requestTimeout bounds every oracle call so a dead network cannot hang the run.
const requestTimeout = 30 * time.Second

// apiKeyTransport adds the CryptoCompare authorization header to every request.
type apiKeyTransport struct {
	base http.RoundTripper
	key  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Apikey "+t.key)
	return t.base.RoundTrip(req)
}

// newClient returns an authenticated client with a bounded timeout.
func newClient(apiKey string) *http.Client {
	return &http.Client{
		Timeout:   requestTimeout,
		Transport: &apiKeyTransport{base: http.DefaultTransport, key: apiKey},
	}
}

// newCachingClient returns an authenticated client whose responses are
// cached on disk with daily expiry. Suited to historical lookups, whose
// answers never change.
func newCachingClient(apiKey string) *http.Client {
	return &http.Client{
		Timeout:   requestTimeout,
		Transport: &diskCache{base: &apiKeyTransport{base: http.DefaultTransport, key: apiKey}},
	}
}
