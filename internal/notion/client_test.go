package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryDatabaseFollowsPagination(t *testing.T) {
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/databases/db1/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("missing version header, got %q", got)
		}

		var req struct {
			PageSize    int    `json:"page_size"`
			StartCursor string `json:"start_cursor"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		cursors = append(cursors, req.StartCursor)

		switch req.StartCursor {
		case "":
			json.NewEncoder(w).Encode(map[string]any{
				"results":     []map[string]any{{"id": "p1"}, {"id": "p2"}},
				"has_more":    true,
				"next_cursor": "c2",
			})
		case "c2":
			json.NewEncoder(w).Encode(map[string]any{
				"results":  []map[string]any{{"id": "p3"}},
				"has_more": false,
			})
		default:
			t.Errorf("unexpected cursor %q", req.StartCursor)
		}
	}))
	defer server.Close()

	client := NewClient("secret", "2022-06-28")
	client.BaseURL = server.URL

	pages, err := client.QueryDatabase(context.Background(), "db1", nil)
	if err != nil {
		t.Fatalf("QueryDatabase: %v", err)
	}
	if len(pages) != 3 {
		t.Errorf("expected 3 pages across 2 requests, got %d", len(pages))
	}
	if len(cursors) != 2 || cursors[1] != "c2" {
		t.Errorf("expected cursor follow-up, got %v", cursors)
	}
	if pages[2].ID != "p3" {
		t.Errorf("expected page order preserved, got %+v", pages)
	}
}

func TestQueryDatabaseForwardsFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Filter map[string]any `json:"filter"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Filter["property"] != "Type" {
			t.Errorf("filter not forwarded: %v", req.Filter)
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "has_more": false})
	}))
	defer server.Close()

	client := NewClient("secret", "2022-06-28")
	client.BaseURL = server.URL

	if _, err := client.QueryDatabase(context.Background(), "db1", SelectEqualsFilter("Type", "In House")); err != nil {
		t.Fatalf("QueryDatabase: %v", err)
	}
}

func TestCreatePageReturnsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/pages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Parent map[string]string `json:"parent"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Parent["database_id"] != "locdb" {
			t.Errorf("missing parent database, got %v", body.Parent)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "newpage"})
	}))
	defer server.Close()

	client := NewClient("secret", "2022-06-28")
	client.BaseURL = server.URL

	id, err := client.CreatePage(context.Background(), "locdb", map[string]any{"Name": TitleValue("Acme")})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if id != "newpage" {
		t.Errorf("expected id newpage, got %q", id)
	}
}

func TestUpdatePageNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		http.Error(w, `{"message": "validation_error"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("secret", "2022-06-28")
	client.BaseURL = server.URL

	err := client.UpdatePage(context.Background(), "p1", map[string]any{"Locations": RelationValue("loc1")})
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
