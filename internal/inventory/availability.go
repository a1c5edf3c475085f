package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/martinsuchenak/rentd/internal/model"
)

const dateLayout = "2006-01-02"

// Result pairs a device with its availability verdict for a queried range.
type Result struct {
	Device    model.Device `json:"device"`
	Available bool         `json:"available"`
	Reason    string       `json:"reason"`
}

// Report is the outcome of one availability query over a device snapshot.
// It is a plain value; callers own any selection state layered on top.
type Report struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Results []Result `json:"results"`
}

// AvailableDevices returns the free devices of the report, in report order.
func (r Report) AvailableDevices() []model.Device {
	var devices []model.Device
	for _, res := range r.Results {
		if res.Available {
			devices = append(devices, res.Device)
		}
	}
	return devices
}

// ParseDate parses an ISO calendar date, ignoring any time component the
// store appends to rolled-up dates.
func ParseDate(s string) (time.Time, bool) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

// Check decides whether a device is free for the closed range
// [rangeStart, rangeEnd] and explains the verdict. Callers must reject
// inverted ranges before calling; behavior for rangeStart > rangeEnd is
// undefined.
//
// Boundary days are shared: a request ending exactly on the booking's start
// date, or starting exactly on its end date, conflicts. A booking date that
// cannot be parsed means occupancy cannot be determined, which counts as
// unavailable.
func Check(d model.Device, rangeStart, rangeEnd time.Time) (bool, string) {
	if !d.Assigned() {
		return true, "unassigned"
	}

	if d.StartDate == "" && d.EndDate == "" {
		return false, "occupied indefinitely"
	}

	var locStart, locEnd time.Time
	if d.StartDate != "" {
		t, ok := ParseDate(d.StartDate)
		if !ok {
			return false, "booking start date unreadable: " + d.StartDate
		}
		locStart = t
	}
	if d.EndDate != "" {
		t, ok := ParseDate(d.EndDate)
		if !ok {
			return false, "booking end date unreadable: " + d.EndDate
		}
		locEnd = t
	}

	switch {
	case d.StartDate != "" && d.EndDate != "":
		if !rangeStart.After(locEnd) && !rangeEnd.Before(locStart) {
			return false, "booked " + d.StartDate + " to " + d.EndDate
		}
		return true, "free outside booking " + d.StartDate + " to " + d.EndDate

	case d.StartDate != "":
		if !rangeEnd.Before(locStart) {
			return false, "occupied from " + d.StartDate
		}
		return true, "free before open-ended booking"

	case d.EndDate != "":
		if !rangeStart.After(locEnd) {
			return false, "occupied until " + d.EndDate
		}
		return true, "free after booking ends"
	}

	return true, "available"
}

// CheckAll evaluates a whole snapshot and returns a report sorted by
// case-insensitive device name.
func CheckAll(devices []model.Device, rangeStart, rangeEnd time.Time) Report {
	report := Report{
		Start:   rangeStart.Format(dateLayout),
		End:     rangeEnd.Format(dateLayout),
		Results: make([]Result, 0, len(devices)),
	}

	for _, d := range devices {
		available, reason := Check(d, rangeStart, rangeEnd)
		report.Results = append(report.Results, Result{Device: d, Available: available, Reason: reason})
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return strings.ToLower(report.Results[i].Device.Name) < strings.ToLower(report.Results[j].Device.Name)
	})

	return report
}
