package repositories

import (
	"context"

	"github.com/tableloyal/tableloyal/internal/models"
)

// CustomerRepository supplies the roster and persists what the engine
// produces. The engine itself never touches a store; this is the boundary the
// batch runner talks to.
type CustomerRepository interface {
	GetRoster(ctx context.Context) ([]models.Customer, error)
	Count(ctx context.Context) (int, error)
	SaveTagResults(ctx context.Context, results []models.TagCalculationResult) error
	SaveTriggers(ctx context.Context, triggers []models.AutomationTrigger) error
}
