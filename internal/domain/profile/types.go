package profile

import (
	"time"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
)

// Record is the persisted body profile plus bookkeeping. The embedded
// snapshot is what the simulator consumes.
type Record struct {
	caffeine.BodyProfile
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest replaces the stored profile wholesale. Absent fields clear
// their stored counterparts; the simulator substitutes defaults for them.
type UpdateRequest struct {
	caffeine.BodyProfile
}
