package dto

// TrackerEntryRequest payload for the legacy tracker.
type TrackerEntryRequest struct {
	Company     string  `json:"company" validate:"required"`
	Position    string  `json:"position" validate:"required"`
	Link        *string `json:"link"`
	AppliedDate string  `json:"appliedDate" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=applied interviewing offer rejected"`
	Notes       *string `json:"notes"`
}
