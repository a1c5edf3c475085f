package model

// AssignmentResult aggregates the outcome of assigning a batch of devices to
// a location. Writes are independent, so partial success is a normal outcome
// and callers must distinguish it from full success.
type AssignmentResult struct {
	LocationID string   `json:"location_id"`
	Requested  int      `json:"requested"`
	Succeeded  int      `json:"succeeded"`
	Failures   []string `json:"failures,omitempty"` // device names that were not assigned
}

// FullSuccess reports whether every requested device was assigned.
func (r AssignmentResult) FullSuccess() bool {
	return r.Succeeded == r.Requested
}
