package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"book-talk-api/internal/metrics"
)

// AladinBook is one item from the Aladin open API
type AladinBook struct {
	ItemID       int64      `json:"itemId"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Publisher    string     `json:"publisher"`
	PubDate      string     `json:"pubDate"`
	Description  string     `json:"description"`
	Cover        string     `json:"cover"`
	CategoryName string     `json:"categoryName"`
	SubInfo      *AladinSub `json:"subInfo,omitempty"`
}

// AladinSub carries the lookup-only fields of an item
type AladinSub struct {
	ItemPage int `json:"itemPage"`
}

// AladinSearchResult is the list envelope of the Aladin open API
type AladinSearchResult struct {
	TotalResults int          `json:"totalResults"`
	StartIndex   int          `json:"startIndex"`
	ItemsPerPage int          `json:"itemsPerPage"`
	Item         []AladinBook `json:"item"`
}

// AladinClient defines the interface for the external book catalog API
type AladinClient interface {
	// SearchBooks searches the catalog by keyword
	SearchBooks(ctx context.Context, query string, page, limit int) (*AladinSearchResult, error)
	// ListBestsellers returns the current bestseller list
	ListBestsellers(ctx context.Context, page, limit int) (*AladinSearchResult, error)
	// LookupBook fetches one item with its full detail fields
	LookupBook(ctx context.Context, itemID string) (*AladinBook, error)
}

// aladinClient implements AladinClient against the HTTP API
type aladinClient struct {
	baseURL    string
	ttbKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewAladinClient creates a new Aladin open API client
func NewAladinClient(baseURL, ttbKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) AladinClient {
	return &aladinClient{
		baseURL: baseURL,
		ttbKey:  ttbKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SearchBooks searches the catalog by keyword
func (c *aladinClient) SearchBooks(ctx context.Context, query string, page, limit int) (*AladinSearchResult, error) {
	params := c.baseParams()
	params.Set("Query", query)
	params.Set("QueryType", "Keyword")
	params.Set("SearchTarget", "Book")
	params.Set("Start", strconv.Itoa(page))
	params.Set("MaxResults", strconv.Itoa(limit))

	var result AladinSearchResult
	if err := c.get(ctx, "/ItemSearch.aspx", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListBestsellers returns the current bestseller list
func (c *aladinClient) ListBestsellers(ctx context.Context, page, limit int) (*AladinSearchResult, error) {
	params := c.baseParams()
	params.Set("QueryType", "Bestseller")
	params.Set("SearchTarget", "Book")
	params.Set("Start", strconv.Itoa(page))
	params.Set("MaxResults", strconv.Itoa(limit))

	var result AladinSearchResult
	if err := c.get(ctx, "/ItemList.aspx", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LookupBook fetches one item with its full detail fields
func (c *aladinClient) LookupBook(ctx context.Context, itemID string) (*AladinBook, error) {
	params := c.baseParams()
	params.Set("ItemID", itemID)
	params.Set("ItemIdType", "ItemId")
	params.Set("OptResult", "itemPage")

	var result AladinSearchResult
	if err := c.get(ctx, "/ItemLookUp.aspx", params, &result); err != nil {
		return nil, err
	}
	if len(result.Item) == 0 {
		return nil, fmt.Errorf("aladin item %s not found", itemID)
	}
	return &result.Item[0], nil
}

func (c *aladinClient) baseParams() url.Values {
	params := url.Values{}
	params.Set("ttbkey", c.ttbKey)
	params.Set("output", "js")
	params.Set("Version", "20131101")
	return params
}

func (c *aladinClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(c.baseURL+path, "GET", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Aladin API request failed",
			zap.Error(err),
			zap.String("path", path),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("aladin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Aladin API returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("path", path),
		)
		return fmt.Errorf("aladin returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read aladin response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode aladin response: %w", err)
	}
	return nil
}
