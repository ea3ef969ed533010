package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tableloyal/tableloyal/internal/models"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetRoster loads every customer with their order history. Order history is
// stored as a JSONB column so one query materializes the full roster.
func (r *CustomerRepository) GetRoster(ctx context.Context) ([]models.Customer, error) {
	query := `
        SELECT
            id, name, phone, email, total_visits, total_spend,
            average_order_value, average_visit_gap, guest_estimate_avg,
            first_visit_date, last_visit_date,
            spend_tag, activity_tag, behavior_tags, order_history
        FROM customers
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var behaviorTags, orderHistory []byte
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Phone,
			&c.Email,
			&c.TotalVisits,
			&c.TotalSpend,
			&c.AvgOrderValue,
			&c.AvgVisitGapDays,
			&c.GuestEstimateAvg,
			&c.FirstVisitDate,
			&c.LastVisitDate,
			&c.SpendTag,
			&c.ActivityTag,
			&behaviorTags,
			&orderHistory,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}

		if len(behaviorTags) > 0 {
			if err := json.Unmarshal(behaviorTags, &c.BehaviorTags); err != nil {
				return nil, fmt.Errorf("decoding behavior tags for %s: %w", c.ID, err)
			}
		}
		if c.BehaviorTags == nil {
			c.BehaviorTags = models.NewBehaviorTagSet()
		}
		if len(orderHistory) > 0 {
			if err := json.Unmarshal(orderHistory, &c.OrderHistory); err != nil {
				return nil, fmt.Errorf("decoding order history for %s: %w", c.ID, err)
			}
		}

		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid customer record: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count)
	return count, err
}

// SaveTagResults writes the fresh tags back onto the customer rows.
func (r *CustomerRepository) SaveTagResults(ctx context.Context, results []models.TagCalculationResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        UPDATE customers
        SET spend_tag = $2, activity_tag = $3, behavior_tags = $4, tags_updated_at = NOW()
        WHERE id = $1`

	for _, result := range results {
		behaviorTags, err := json.Marshal(result.NewTags.BehaviorTags)
		if err != nil {
			return fmt.Errorf("encoding behavior tags for %s: %w", result.CustomerID, err)
		}
		_, err = tx.Exec(ctx, stmt,
			result.CustomerID,
			result.NewTags.SpendTag,
			result.NewTags.ActivityTag,
			behaviorTags,
		)
		if err != nil {
			return fmt.Errorf("updating tags for %s: %w", result.CustomerID, err)
		}
	}

	return tx.Commit(ctx)
}

// SaveTriggers appends the emitted automation triggers.
func (r *CustomerRepository) SaveTriggers(ctx context.Context, triggers []models.AutomationTrigger) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO automation_triggers (
            id, customer_id, trigger_type, trigger_data, created_at, processed
        ) VALUES ($1, $2, $3, $4, $5, $6)`

	for _, trigger := range triggers {
		data, err := json.Marshal(trigger.TriggerData)
		if err != nil {
			return fmt.Errorf("encoding trigger data for %s: %w", trigger.ID, err)
		}
		_, err = tx.Exec(ctx, stmt,
			trigger.ID,
			trigger.CustomerID,
			trigger.TriggerType,
			data,
			trigger.CreatedAt,
			trigger.Processed,
		)
		if err != nil {
			return fmt.Errorf("inserting trigger %s: %w", trigger.ID, err)
		}
	}

	return tx.Commit(ctx)
}
