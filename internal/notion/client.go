package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/metrics"
)

const defaultBaseURL = "https://api.notion.com"

// pageSize is the maximum page size the store allows per query request.
const pageSize = 100

// Client talks to the hosted database API. Every request carries the bearer
// token and the pinned API version header.
type Client struct {
	BaseURL string
	token   string
	version string
	http    *http.Client
}

func NewClient(token, version string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		version: version,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type queryRequest struct {
	PageSize    int            `json:"page_size"`
	Filter      map[string]any `json:"filter,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryDatabase returns all pages of a database, following cursor pagination
// until the store reports no more results. filter may be nil.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter map[string]any) ([]Page, error) {
	var pages []Page
	cursor := ""

	for {
		req := queryRequest{PageSize: pageSize, Filter: filter, StartCursor: cursor}

		var resp queryResponse
		if err := c.do(ctx, "query", http.MethodPost, "/v1/databases/"+databaseID+"/query", req, &resp); err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	log.Debug("Queried database", "database_id", databaseID, "pages", len(pages))
	return pages, nil
}

// CreatePage creates a page in the given database and returns its id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]any) (string, error) {
	body := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": properties,
	}

	var resp Page
	if err := c.do(ctx, "create_page", http.MethodPost, "/v1/pages", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdatePage patches selected properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) error {
	body := map[string]any{"properties": properties}
	return c.do(ctx, "update_page", http.MethodPatch, "/v1/pages/"+pageID, body, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	started := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	metrics.ObserveStoreRequest(operation, time.Since(started), err)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("store error: %s: %s", resp.Status, string(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Property value builders for create/update payloads.

func TitleValue(content string) any {
	return map[string]any{
		"title": []any{
			map[string]any{"text": map[string]any{"content": content}},
		},
	}
}

func SelectValue(name string) any {
	return map[string]any{"select": map[string]any{"name": name}}
}

func DateStartValue(isoDate string) any {
	return map[string]any{"date": map[string]any{"start": isoDate}}
}

func RelationValue(ids ...string) any {
	refs := make([]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return map[string]any{"relation": refs}
}

// SelectEqualsFilter builds a query filter matching a select property value.
func SelectEqualsFilter(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"equals": value},
	}
}
