// Package pricebook is the HTTP client for the remote catalog/pricing
// service. The matching algorithm itself lives behind this contract and
// is opaque here.
//
// Calls are synchronous and single-shot: no retry, no backoff. Deadlines
// are the caller's job via context. Non-2xx responses are inspected, not
// thrown; they come back as *StatusError with the body verbatim.
package pricebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"cenar/internal/model"
)

// bypassHeader lets requests through tunnel middleware that would
// otherwise answer with an interstitial page.
const bypassHeader = "bypass-tunnel-reminder"

// Client talks to the pricing backend.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(bypassHeader, "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend call failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type matchRequest struct {
	Type      model.PriceKind `json:"type"`
	Items     []string        `json:"items"`
	Threshold float64         `json:"threshold"`
}

// MatchBulk asks the backend to price a batch of descriptions of one
// kind in a single round trip. Descriptions absent from the returned map
// mean "no match", not an error.
func (c *Client) MatchBulk(ctx context.Context, descriptions []string, kind model.PriceKind, threshold float64) (map[string]*model.MatchResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid price kind %q", kind)
	}

	var results map[string]*model.MatchResult
	err := c.do(ctx, http.MethodPost, "/match", matchRequest{
		Items:     descriptions,
		Type:      kind,
		Threshold: threshold,
	}, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LaborSuggestions returns labor items the backend recommends for a
// material name.
func (c *Client) LaborSuggestions(ctx context.Context, materialName string) ([]model.LaborSuggestion, error) {
	var suggestions []model.LaborSuggestion
	err := c.do(ctx, http.MethodPost, "/match/labor-suggestions", map[string]string{
		"material_name": materialName,
	}, &suggestions)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ItemDetails fetches the full detail view of one catalog item.
func (c *Client) ItemDetails(ctx context.Context, itemID int64) (*model.ItemDetails, error) {
	var details model.ItemDetails
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%d/details", itemID), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// DeleteItem removes (blacklists) one catalog item.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", itemID), nil, nil)
}

// AddItem creates a custom catalog item.
func (c *Client) AddItem(ctx context.Context, item model.CatalogItem) (*model.CatalogItem, error) {
	if item.Unit == "" {
		item.Unit = "ks"
	}

	var created model.CatalogItem
	err := c.do(ctx, http.MethodPost, "/items/add", map[string]any{
		"name":           item.Name,
		"price_material": item.PriceMaterial,
		"price_labor":    item.PriceLabor,
		"unit":           item.Unit,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Search finds catalog items by name.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	var hits []model.SearchHit
	if err := c.do(ctx, http.MethodGet, "/search?q="+url.QueryEscape(query), nil, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// ItemHistory returns the price-over-time series of one item.
func (c *Client) ItemHistory(ctx context.Context, itemID int64) ([]model.PricePoint, error) {
	var history []model.PricePoint
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%d/history", itemID), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// HistoryByName resolves a description to an item via search (first hit
// wins) and fetches its history.
func (c *Client) HistoryByName(ctx context.Context, description string) (*model.ItemHistory, error) {
	hits, err := c.Search(ctx, description)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("no catalog item matches %q", description)
	}

	history, err := c.ItemHistory(ctx, hits[0].ID)
	if err != nil {
		return nil, err
	}
	return &model.ItemHistory{ItemName: hits[0].Name, History: history}, nil
}

// Status probes backend liveness. Any failure reports offline as a
// value; this call never returns an error.
func (c *Client) Status(ctx context.Context) model.BackendStatus {
	var status model.BackendStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		c.logger.Debug("status probe failed", "error", err)
		return model.BackendStatus{Status: "offline"}
	}
	return status
}

// AdminItems fetches the full catalog dump for the mirror.
func (c *Client) AdminItems(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := c.do(ctx, http.MethodGet, "/admin/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdminSync sends the full mirror row set as one upsert batch. The
// server alone decides insert-vs-update by id.
func (c *Client) AdminSync(ctx context.Context, items []model.CatalogItem) error {
	return c.do(ctx, http.MethodPost, "/admin/sync", items, nil)
}

// AdminBatchDelete deletes catalog items by id.
func (c *Client) AdminBatchDelete(ctx context.Context, itemIDs []int64) error {
	return c.do(ctx, http.MethodPost, "/admin/batch-delete", itemIDs, nil)
}

// Aliases lists all learned aliases.
func (c *Client) Aliases(ctx context.Context) ([]model.Alias, error) {
	var aliases []model.Alias
	if err := c.do(ctx, http.MethodGet, "/admin/aliases", nil, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

// AliasBatchDelete forgets learned aliases by alias id.
func (c *Client) AliasBatchDelete(ctx context.Context, aliasIDs []int64) error {
	return c.do(ctx, http.MethodPost, "/admin/aliases/batch-delete", aliasIDs, nil)
}

// ResetDatabase irreversibly wipes the backend. Callers are responsible
// for the confirmation ceremony; this is just the trigger.
func (c *Client) ResetDatabase(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/reset-database", nil, nil)
}

// Learn teaches the backend one alias: free-text query to item id.
func (c *Client) Learn(ctx context.Context, query string, itemID int64) error {
	return c.do(ctx, http.MethodPost, "/feedback/learn", map[string]any{
		"query":   query,
		"item_id": itemID,
	}, nil)
}
