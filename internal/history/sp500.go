package history

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const sp500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// SP500Symbols scrapes the current S&P 500 membership from the Wikipedia
// constituents table. Dots in class tickers become dashes (BRK.B -> BRK-B)
// to match the chart API notation.
func (c *Client) SP500Symbols(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, sp500URL, map[string]string{
		"User-Agent": userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch S&P 500 constituents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch S&P 500 constituents: unexpected status code %d", resp.StatusCode)
	}

	symbols, err := parseConstituents(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(symbols)).Info("Fetched current S&P 500 membership")
	return symbols, nil
}

// parseConstituents extracts the ticker column of the constituents table.
func parseConstituents(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	var symbols []string
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		symbol := strings.TrimSpace(row.Find("td").First().Text())
		if symbol == "" {
			return // header row
		}
		symbols = append(symbols, strings.ReplaceAll(symbol, ".", "-"))
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("constituents table not found")
	}
	return symbols, nil
}
