package habits

import (
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
)

// RecordRequest is the payload for logging one brew.
type RecordRequest struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	AmountML  *float64  `json:"amountMl,omitempty"`
	MG        *float64  `json:"mg,omitempty"`
}

// ListRequest bounds a log query. Zero bounds default to the last 7 days.
type ListRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ListResponse returns the events inside the requested range.
type ListResponse struct {
	Events []caffeine.BrewEvent `json:"events"`
	From   time.Time            `json:"from"`
	To     time.Time            `json:"to"`
}
