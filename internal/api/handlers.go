package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/martinsuchenak/rentd/internal/inventory"
	"github.com/martinsuchenak/rentd/internal/log"
	"github.com/martinsuchenak/rentd/internal/metrics"
	"github.com/martinsuchenak/rentd/internal/model"
	"github.com/martinsuchenak/rentd/internal/store"
)

// Handler handles HTTP requests
type Handler struct {
	store store.Store
}

// NewHandler creates a new API handler
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/devices", h.listDevices)
	mux.HandleFunc("GET /api/locations", h.listLocations)

	mux.HandleFunc("GET /api/availability", h.queryAvailability)
	mux.HandleFunc("GET /api/availability/export", h.exportAvailability)

	mux.HandleFunc("POST /api/assignments/client", h.assignToClient)
	mux.HandleFunc("POST /api/assignments/in-house", h.assignToInHouse)

	mux.HandleFunc("GET /api/diagnostics/fields", h.listFields)
}

// listDevices handles GET /api/devices
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	filter := model.DeviceFilter{Tag: r.URL.Query().Get("tag")}

	devices, err := h.store.ListDevices(r.Context())
	if err != nil {
		log.Error("Failed to list devices", "error", err)
		h.internalError(w, err)
		return
	}

	filtered := make([]model.Device, 0, len(devices))
	for _, d := range devices {
		if filter.Matches(d) {
			filtered = append(filtered, d)
		}
	}

	log.Info("Listed devices", "count", len(filtered), "tag", filter.Tag)
	h.writeJSON(w, http.StatusOK, filtered)
}

// listLocations handles GET /api/locations
func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locType := model.LocationType(r.URL.Query().Get("type"))
	if locType != "" && locType != model.LocationClient && locType != model.LocationInHouse {
		log.Warn("List locations with unknown type", "type", locType)
		h.writeError(w, http.StatusBadRequest, "unknown location type")
		return
	}

	locations, err := h.store.ListLocations(r.Context(), locType)
	if err != nil {
		log.Error("Failed to list locations", "error", err, "type", locType)
		h.internalError(w, err)
		return
	}

	log.Info("Listed locations", "count", len(locations), "type", locType)
	h.writeJSON(w, http.StatusOK, locations)
}

// queryAvailability handles GET /api/availability
func (h *Handler) queryAvailability(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	metrics.RecordAvailabilityQuery(len(report.AvailableDevices()))
	h.writeJSON(w, http.StatusOK, report)
}

// exportAvailability handles GET /api/availability/export
func (h *Handler) exportAvailability(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = inventory.BuildReportXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = inventory.BuildReportPDF(report)
		contentType = "application/pdf"
	default:
		h.writeError(w, http.StatusBadRequest, "unknown format: "+format)
		return
	}
	if err != nil {
		log.Error("Failed to build availability export", "error", err, "format", format)
		h.internalError(w, err)
		return
	}

	filename := fmt.Sprintf("availability_%s_%s.%s", report.Start, report.End, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	log.Info("Exported availability report", "format", format, "devices", len(report.Results))
}

// buildReport parses the range, fetches a snapshot and evaluates it. On
// failure it has already written the error response.
func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (inventory.Report, bool) {
	rangeStart, rangeEnd, err := parseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		log.Warn("Invalid availability range", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return inventory.Report{}, false
	}

	devices, err := h.store.ListDevices(r.Context())
	if err != nil {
		log.Error("Failed to fetch device snapshot", "error", err)
		h.internalError(w, err)
		return inventory.Report{}, false
	}

	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter := model.DeviceFilter{Tag: tag}
		kept := devices[:0]
		for _, d := range devices {
			if filter.Matches(d) {
				kept = append(kept, d)
			}
		}
		devices = kept
	}

	return inventory.CheckAll(devices, rangeStart, rangeEnd), true
}

type clientAssignmentRequest struct {
	Devices    []string `json:"devices"`
	ClientName string   `json:"client_name"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
}

// assignToClient handles POST /api/assignments/client
func (h *Handler) assignToClient(w http.ResponseWriter, r *http.Request) {
	var req clientAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid client assignment request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Devices) == 0 {
		log.Warn("Client assignment with no devices")
		h.writeError(w, http.StatusBadRequest, "devices are required")
		return
	}
	if _, _, err := parseRange(req.Start, req.End); err != nil {
		log.Warn("Invalid client assignment range", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := h.store.ListDevices(r.Context())
	if err != nil {
		log.Error("Failed to fetch device snapshot", "error", err)
		h.internalError(w, err)
		return
	}

	result, err := inventory.AssignToClient(r.Context(), h.store, req.Devices, req.ClientName, req.Start, req.End, snapshot)
	h.writeAssignment(w, "client", result, err)
}

type inHouseAssignmentRequest struct {
	Devices      []string `json:"devices"`
	LocationID   string   `json:"location_id"`
	LocationName string   `json:"location_name"`
	Start        string   `json:"start"`
}

// assignToInHouse handles POST /api/assignments/in-house
func (h *Handler) assignToInHouse(w http.ResponseWriter, r *http.Request) {
	var req inHouseAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid in-house assignment request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Devices) == 0 {
		log.Warn("In-house assignment with no devices")
		h.writeError(w, http.StatusBadRequest, "devices are required")
		return
	}

	// In-house occupancy starts today unless the caller says otherwise.
	if req.Start == "" {
		req.Start = time.Now().Format("2006-01-02")
	} else if _, ok := inventory.ParseDate(req.Start); !ok {
		log.Warn("Invalid in-house start date", "start", req.Start)
		h.writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}

	snapshot, err := h.store.ListDevices(r.Context())
	if err != nil {
		log.Error("Failed to fetch device snapshot", "error", err)
		h.internalError(w, err)
		return
	}

	result, err := inventory.AssignToInHouse(r.Context(), h.store, req.Devices, req.LocationID, req.LocationName, req.Start, snapshot)
	h.writeAssignment(w, "in_house", result, err)
}

// writeAssignment maps an orchestrator outcome onto the response. Full and
// partial success get distinct status codes so callers can tell them apart
// without inspecting the body.
func (h *Handler) writeAssignment(w http.ResponseWriter, kind string, result model.AssignmentResult, err error) {
	if err != nil {
		if inventory.IsValidationError(err) {
			log.Warn("Assignment rejected", "kind", kind, "error", err)
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Assignment failed", "kind", kind, "error", err)
		metrics.RecordAssignment(kind, metrics.AssignmentFailed, 0, 0)
		h.internalError(w, err)
		return
	}

	status := http.StatusOK
	outcome := metrics.AssignmentFull
	if !result.FullSuccess() {
		status = http.StatusMultiStatus
		outcome = metrics.AssignmentPartial
	}
	metrics.RecordAssignment(kind, outcome, result.Succeeded, len(result.Failures))
	h.writeJSON(w, status, result)
}

// listFields handles GET /api/diagnostics/fields
func (h *Handler) listFields(w http.ResponseWriter, r *http.Request) {
	lister, ok := h.store.(store.FieldLister)
	if !ok {
		h.writeError(w, http.StatusNotImplemented, "field diagnostics not supported by store backend")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := lister.FieldNames(r.Context(), limit)
	if err != nil {
		log.Error("Failed to list record fields", "error", err)
		h.internalError(w, err)
		return
	}

	log.Info("Listed record fields", "records", len(records))
	h.writeJSON(w, http.StatusOK, records)
}

// parseRange validates a requested [start, end] calendar-date range. The
// availability engine assumes start <= end, so inverted ranges are rejected
// here.
func parseRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("start and end dates are required")
	}
	rangeStart, ok := inventory.ParseDate(start)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %s", start)
	}
	rangeEnd, ok := inventory.ParseDate(end)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %s", end)
	}
	if rangeStart.After(rangeEnd) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must not be before start date")
	}
	return rangeStart, rangeEnd, nil
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// internalError logs the error and writes a generic 500 response
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Error("Internal server error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
