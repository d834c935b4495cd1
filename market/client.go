// Package market fetches live quotes for watchlist and portfolio rows.
package market

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Quote is one symbol's current price and 24h move.
type Quote struct {
	Price     decimal.Decimal
	Change24h decimal.Decimal
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return NewClientWithBase(defaultBaseURL)
}

func NewClientWithBase(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// symbolToCoinID maps ticker symbols to CoinGecko ids.
var symbolToCoinID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"DOGE":  "dogecoin",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"ALGO":  "algorand",
	"XLM":   "stellar",
	"ATOM":  "cosmos",
	"UNI":   "uniswap",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"BCH":   "bitcoin-cash",
	"MATIC": "matic-network",
	"XRP":   "ripple",
	"TRX":   "tron",
	"FIL":   "filecoin",
	"AAVE":  "aave",
	"NEAR":  "near",
}

// KnownSymbols lists the symbols the client can quote.
func KnownSymbols() []string {
	symbols := make([]string, 0, len(symbolToCoinID))
	for s := range symbolToCoinID {
		symbols = append(symbols, s)
	}
	return symbols
}

// Quotes fetches current prices for the given symbols. Symbols without a
// known CoinGecko id are skipped silently; a symbol missing from the
// response is simply absent from the result map.
func (c *Client) Quotes(symbols []string) (map[string]Quote, error) {
	var ids []string
	idToSymbol := make(map[string]string)
	for _, s := range symbols {
		s = strings.ToUpper(s)
		if id, ok := symbolToCoinID[s]; ok {
			ids = append(ids, id)
			idToSymbol[id] = s
		}
	}
	if len(ids) == 0 {
		return map[string]Quote{}, nil
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		c.baseURL, strings.Join(ids, ","))
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}

	quotes := make(map[string]Quote, len(body))
	for id, fields := range body {
		symbol, ok := idToSymbol[id]
		if !ok {
			continue
		}
		price, ok := fields["usd"]
		if !ok || price <= 0 {
			continue
		}
		quotes[symbol] = Quote{
			Price:     decimal.NewFromFloat(price),
			Change24h: decimal.NewFromFloat(fields["usd_24h_change"]),
		}
	}
	return quotes, nil
}
