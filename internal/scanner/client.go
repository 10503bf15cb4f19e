// Package scanner is the REST client for the scanner query endpoint.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	imetrics "github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/types"
)

// PageSize is the fixed page size of GET /scanner.
const PageSize = 100

type Client struct {
	baseURL string
	log     *zap.Logger
	http    *http.Client
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchPage runs GET /scanner with the filter's query parameters and
// returns one decoded page.
func (c *Client) FetchPage(ctx context.Context, f types.Filters) (types.ScannerPage, error) {
	endpoint := c.baseURL + "/scanner?" + f.Query().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.ScannerPage{}, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return types.ScannerPage{}, fmt.Errorf("scanner fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.ScannerPage{}, fmt.Errorf("scanner %d: %s", resp.StatusCode, string(b))
	}

	var page types.ScannerPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return types.ScannerPage{}, fmt.Errorf("scanner decode: %w", err)
	}

	imetrics.FetchLatency.Observe(time.Since(start).Seconds())
	c.log.Debug("scanner page fetched",
		zap.Int("page", f.Page),
		zap.Int("pairs", len(page.Pairs)),
		zap.Int("total_rows", page.TotalRows),
		zap.Duration("took", time.Since(start)),
	)
	return page, nil
}

// HasMore reports whether pages remain past the current one given the
// server's row count.
func HasMore(page, totalRows int) bool {
	if page < 1 {
		page = 1
	}
	totalPages := (totalRows + PageSize - 1) / PageSize
	return page < totalPages
}
