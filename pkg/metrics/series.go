package metrics

import "time"

// SeriesStats captures the headline numbers for a simulated caffeine series,
// rendered above the dashboard chart.
type SeriesStats struct {
	PeakBodyMG    float64   `json:"peakBodyMg"`
	PeakAt        time.Time `json:"peakAt,omitempty"`
	TotalIntakeMG float64   `json:"totalIntakeMg"`
	EndingBodyMG  float64   `json:"endingBodyMg"`
}

// IsZero reports whether the series carried no caffeine at all.
func (s SeriesStats) IsZero() bool {
	return s.PeakBodyMG == 0 && s.TotalIntakeMG == 0 && s.EndingBodyMG == 0
}
