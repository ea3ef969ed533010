// Package engine implements the customer tagging and segmentation core:
// spend tiers, lifecycle stages and behavior labels computed over a customer
// roster, plus the automation triggers and personalized campaign content
// derived from tag transitions. The engine performs no I/O; callers supply
// the roster and persist the results.
package engine

import (
	"math"
	"time"

	"github.com/tableloyal/tableloyal/internal/models"
)

// Engine runs the tagging pipeline over in-memory rosters. The clock is
// injected so a whole run shares one "now" and tests stay deterministic.
type Engine struct {
	cfg   models.TaggingConfig
	clock func() time.Time
}

func New(cfg models.TaggingConfig) *Engine {
	return &Engine{cfg: cfg, clock: time.Now}
}

// NewWithClock builds an engine on a fixed time source.
func NewWithClock(cfg models.TaggingConfig, clock func() time.Time) *Engine {
	return &Engine{cfg: cfg, clock: clock}
}

// daysBetween returns the whole-day ceiling of the absolute distance between
// two instants.
func daysBetween(now, then time.Time) float64 {
	return math.Ceil(math.Abs(now.Sub(then).Hours()) / 24)
}
