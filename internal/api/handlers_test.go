package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martinsuchenak/rentd/internal/inventory"
	"github.com/martinsuchenak/rentd/internal/model"
	"github.com/martinsuchenak/rentd/internal/store"
)

func newTestServer(t *testing.T) (*store.Memory, *httptest.Server) {
	t.Helper()

	mem := store.NewMemory()
	mux := http.NewServeMux()
	NewHandler(mem).RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return mem, server
}

func seedBooked(mem *store.Memory) {
	client := mem.AddLocation(model.Location{Name: "Trade Fair", Type: model.LocationClient, StartDate: "2025-06-01", EndDate: "2025-06-10"})
	mem.AddDevice(model.Device{Name: "iPhone 15", Tag: "iPhone"})
	mem.AddDevice(model.Device{Name: "iPad Air", Tag: "iPad", LocationIDs: []string{client}})
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestListDevicesFiltersByTag(t *testing.T) {
	mem, server := newTestServer(t)
	seedBooked(mem)

	var devices []model.Device
	if status := getJSON(t, server.URL+"/api/devices?tag=iPad", &devices); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(devices) != 1 || devices[0].Name != "iPad Air" {
		t.Errorf("expected only the iPad, got %v", devices)
	}
}

func TestAvailabilityBoundaryOverlap(t *testing.T) {
	mem, server := newTestServer(t)
	seedBooked(mem)

	var report inventory.Report
	status := getJSON(t, server.URL+"/api/availability?start=2025-06-10&end=2025-06-12", &report)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	available := report.AvailableDevices()
	if len(available) != 1 || available[0].Name != "iPhone 15" {
		t.Errorf("expected the booked iPad excluded on its boundary day, got %v", available)
	}

	// One day after the booking ends, both are free.
	status = getJSON(t, server.URL+"/api/availability?start=2025-06-11&end=2025-06-15", &report)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(report.AvailableDevices()) != 2 {
		t.Errorf("expected both devices available after the booking, got %v", report.AvailableDevices())
	}
}

func TestAvailabilityRejectsInvalidRanges(t *testing.T) {
	_, server := newTestServer(t)

	cases := []string{
		"/api/availability",
		"/api/availability?start=2025-06-10",
		"/api/availability?start=2025-06-10&end=2025-06-01", // inverted
		"/api/availability?start=junk&end=2025-06-01",
	}
	for _, path := range cases {
		if status := getJSON(t, server.URL+path, nil); status != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, status)
		}
	}
}

func TestAssignClientFullSuccess(t *testing.T) {
	mem, server := newTestServer(t)
	mem.AddDevice(model.Device{Name: "D1"})
	mem.AddDevice(model.Device{Name: "D2"})

	var result model.AssignmentResult
	status := postJSON(t, server.URL+"/api/assignments/client",
		`{"devices": ["D1", "D2"], "client_name": "Acme", "start": "2025-06-01", "end": "2025-06-10"}`, &result)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for full success, got %d", status)
	}
	if result.Succeeded != 2 || !result.FullSuccess() {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAssignClientPartialSuccessIsMultiStatus(t *testing.T) {
	mem, server := newTestServer(t)
	mem.AddDevice(model.Device{Name: "D1"})

	var result model.AssignmentResult
	status := postJSON(t, server.URL+"/api/assignments/client",
		`{"devices": ["D1", "Ghost"], "client_name": "Acme", "start": "2025-06-01", "end": "2025-06-10"}`, &result)
	if status != http.StatusMultiStatus {
		t.Fatalf("expected 207 for partial success, got %d", status)
	}
	if result.Succeeded != 1 || len(result.Failures) != 1 || result.Failures[0] != "Ghost" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAssignClientValidation(t *testing.T) {
	mem, server := newTestServer(t)
	mem.AddDevice(model.Device{Name: "D1"})

	cases := []string{
		`{"devices": [], "client_name": "Acme", "start": "2025-06-01", "end": "2025-06-10"}`,
		`{"devices": ["D1"], "client_name": "", "start": "2025-06-01", "end": "2025-06-10"}`,
		`{"devices": ["D1"], "client_name": "Acme", "start": "2025-06-10", "end": "2025-06-01"}`,
		`not json`,
	}
	for _, body := range cases {
		if status := postJSON(t, server.URL+"/api/assignments/client", body, nil); status != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, status)
		}
	}

	// Validation failures must not create locations.
	locations, _ := mem.ListLocations(context.Background(), "")
	if len(locations) != 0 {
		t.Errorf("expected no locations after rejected requests, got %d", len(locations))
	}
}

func TestAssignInHouseCreatesAndAssigns(t *testing.T) {
	mem, server := newTestServer(t)
	mem.AddDevice(model.Device{Name: "D1"})

	var result model.AssignmentResult
	status := postJSON(t, server.URL+"/api/assignments/in-house",
		`{"devices": ["D1"], "location_name": "Office Pool"}`, &result)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	// Start date defaulted to today; the location exists and is open-ended.
	locations, _ := mem.ListLocations(context.Background(), model.LocationInHouse)
	if len(locations) != 1 {
		t.Fatalf("expected 1 in-house location, got %d", len(locations))
	}
	if locations[0].StartDate == "" || locations[0].EndDate != "" {
		t.Errorf("expected open-ended location starting today, got %+v", locations[0])
	}
}

func TestListLocationsRejectsUnknownType(t *testing.T) {
	_, server := newTestServer(t)

	if status := getJSON(t, server.URL+"/api/locations?type=Warehouse", nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", status)
	}
}

func TestDiagnosticsUnsupportedByMemoryStore(t *testing.T) {
	_, server := newTestServer(t)

	if status := getJSON(t, server.URL+"/api/diagnostics/fields", nil); status != http.StatusNotImplemented {
		t.Errorf("expected 501 from a store without field diagnostics, got %d", status)
	}
}

func TestExportReturnsSpreadsheet(t *testing.T) {
	mem, server := newTestServer(t)
	seedBooked(mem)

	resp, err := http.Get(server.URL + "/api/availability/export?start=2025-06-01&end=2025-06-10")
	if err != nil {
		t.Fatalf("GET export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "availability_2025-06-01_2025-06-10.xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestAuthMiddleware(t *testing.T) {
	mem := store.NewMemory()
	mux := http.NewServeMux()
	NewHandler(mem).RegisterRoutes(mux)
	server := httptest.NewServer(AuthMiddleware("sesame", mux))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/devices")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest("GET", server.URL+"/api/devices", nil)
	req.Header.Set("Authorization", "Bearer sesame")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with token: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", resp.StatusCode)
	}
}
