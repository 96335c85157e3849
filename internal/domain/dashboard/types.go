package dashboard

import (
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	"github.com/evanlin/lifeboard/pkg/metrics"
)

// Config tunes the aggregation layer, not the simulator itself.
type Config struct {
	CacheTTL time.Duration
	// MaxWindow caps how much history one request may ask for.
	MaxWindow time.Duration
}

// SeriesRequest selects the window and resolution for one chart. Zero
// values fall through to the simulator defaults (last 24 hours, 15 minute
// steps, hourly when aligned).
type SeriesRequest struct {
	StartMS     int64 `json:"startMs,omitempty"`
	EndMS       int64 `json:"endMs,omitempty"`
	GridMinutes int   `json:"gridMinutes,omitempty"`
	AlignToHour bool  `json:"alignToHour,omitempty"`
}

// SeriesResponse is the chart payload.
type SeriesResponse struct {
	Points  []caffeine.Point    `json:"points"`
	Stats   metrics.SeriesStats `json:"stats"`
	StartMS int64               `json:"startMs"`
	EndMS   int64               `json:"endMs"`
	StepMS  int64               `json:"stepMs"`
	Cached  bool                `json:"cached,omitempty"`
}

// CurrentResponse reports the modeled caffeine load right now.
type CurrentResponse struct {
	At          time.Time `json:"at"`
	BodyMG      float64   `json:"body_mg"`
	BloodMGPerL float64   `json:"blood_mg_per_l"`
}
