package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LookupResult is one row of the Yahoo symbol lookup table.
type LookupResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// lookupPath is the HTML symbol search page. Yahoo has no stable public
// JSON endpoint for lookup, so the table is scraped.
const lookupPath = "/lookup"

// Lookup searches Yahoo's symbol lookup page and parses the result
// table. The lookup page lives on finance.yahoo.com rather than the
// chart query host, hence the separate base URL.
func (c *Client) Lookup(ctx context.Context, query string) ([]LookupResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("lookup query must not be empty")
	}

	u := fmt.Sprintf("%s%s?s=%s", c.lookupBaseURL, lookupPath, url.QueryEscape(query))

	resp, err := c.http.GetWithHeaders(ctx, u, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo lookup %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("yahoo lookup: status %d for %q", resp.StatusCode, query)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo lookup parse: %w", err)
	}

	var results []LookupResult
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		r := LookupResult{
			Symbol: strings.TrimSpace(cells.Eq(0).Text()),
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
		}
		if cells.Length() > 2 {
			r.Exchange = strings.TrimSpace(cells.Eq(cells.Length() - 1).Text())
		}
		if cells.Length() > 3 {
			r.Type = strings.TrimSpace(cells.Eq(cells.Length() - 2).Text())
		}
		if r.Symbol != "" {
			results = append(results, r)
		}
	})

	c.log.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("symbol lookup completed")

	return results, nil
}
