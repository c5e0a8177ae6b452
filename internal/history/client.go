package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/topmonde/pkg/httputil"
	"github.com/wonny/topmonde/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client fetches monthly price history from the Yahoo Finance chart API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a history client against the given chart API base URL.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// chartResponse mirrors the chart API payload. Quote arrays use pointers:
// the API reports missing months as nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				ShortName string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchMonthly retrieves the monthly bars of one symbol over the trailing
// number of months. Months with a missing open or close are dropped.
func (c *Client) FetchMonthly(ctx context.Context, symbol string, months int) (Series, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1mo&range=%dmo",
		c.baseURL, url.PathEscape(symbol), months)

	resp, err := c.httpClient.Get(ctx, fullURL, map[string]string{
		"User-Agent": userAgent,
	})
	if err != nil {
		return Series{}, fmt.Errorf("chart request for %s failed: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Series{}, fmt.Errorf("chart request for %s: unexpected status code %d", symbol, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Series{}, fmt.Errorf("decode chart response for %s: %w", symbol, err)
	}

	return seriesFromChart(symbol, payload)
}

// seriesFromChart converts a chart payload into a Series.
func seriesFromChart(symbol string, payload chartResponse) (Series, error) {
	if payload.Chart.Error != nil {
		return Series{}, fmt.Errorf("chart API error for %s: %s (%s)",
			symbol, payload.Chart.Error.Description, payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return Series{}, fmt.Errorf("chart API returned no result for %s", symbol)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return Series{}, fmt.Errorf("chart API returned no quote data for %s", symbol)
	}

	quote := result.Indicators.Quote[0]
	series := Series{
		Symbol: symbol,
		Name:   result.Meta.ShortName,
	}
	if series.Name == "" {
		series.Name = symbol
	}

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.Close[i] == nil {
			continue
		}
		series.Bars = append(series.Bars, Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  *quote.Open[i],
			Close: *quote.Close[i],
		})
	}

	return series, nil
}
