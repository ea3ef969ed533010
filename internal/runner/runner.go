// Package runner drives a full tagging run: load the roster, recalculate
// tags, derive triggers and campaign messages, aggregate the restaurant
// summary, and fan everything out to the configured sinks.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/tableloyal/tableloyal/internal/engine"
	"github.com/tableloyal/tableloyal/internal/factories"
	"github.com/tableloyal/tableloyal/internal/models"
	"github.com/tableloyal/tableloyal/internal/repositories"
	"github.com/tableloyal/tableloyal/internal/repositories/postgres"
	"github.com/tableloyal/tableloyal/internal/sink"
)

// Runner owns one batch execution end to end.
type Runner struct {
	cfg  *models.Config
	eng  *engine.Engine
	repo repositories.CustomerRepository
	pool *pgxpool.Pool
}

func New(cfg *models.Config) *Runner {
	return &Runner{
		cfg: cfg,
		eng: engine.New(cfg.Tagging),
	}
}

// Run executes the batch and returns the first error encountered.
func (r *Runner) Run(ctx context.Context) error {
	customers, err := r.loadRoster(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	defer func() {
		if r.pool != nil {
			r.pool.Close()
		}
	}()

	log.Info().
		Str("restaurant_id", r.cfg.RestaurantID).
		Int("customers", len(customers)).
		Str("input_source", r.cfg.InputSource).
		Msg("starting tagging run")

	results := r.eng.CalculateCustomerTags(customers, r.cfg.RestaurantAvgVisitGap)
	triggers := r.eng.ProcessTagChanges(results)
	engine.ApplyResults(customers, results)

	changed := 0
	for _, res := range results {
		if res.ChangesDetected {
			changed++
		}
	}
	log.Info().
		Int("changed", changed).
		Int("triggers", len(triggers)).
		Msg("tag calculation complete")

	messages, err := r.composeMessages(customers, triggers)
	if err != nil {
		return err
	}

	summary := r.eng.CalculateRestaurantSummary(customers, r.cfg.RestaurantID)

	if r.repo != nil {
		if err := r.repo.SaveTagResults(ctx, results); err != nil {
			return fmt.Errorf("saving tag results: %w", err)
		}
		if err := r.repo.SaveTriggers(ctx, triggers); err != nil {
			return fmt.Errorf("saving triggers: %w", err)
		}
	}

	return r.export(results, triggers, messages, summary)
}

func (r *Runner) loadRoster(ctx context.Context) ([]models.Customer, error) {
	switch r.cfg.InputSource {
	case models.InputSourcePostgres:
		pool, err := pgxpool.New(ctx, r.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		r.pool = pool
		r.repo = postgres.NewCustomerRepository(pool)
		return r.repo.GetRoster(ctx)
	case models.InputSourceJSON:
		return models.LoadRoster(r.cfg.InputFile)
	case models.InputSourceDemo, "":
		count := r.cfg.DemoCustomers
		if count <= 0 {
			count = 100
		}
		factory := factories.NewCustomerFactory(r.cfg.Seed)
		return factory.CreateRoster(count, time.Now()), nil
	}
	return nil, fmt.Errorf("unsupported input source: %s", r.cfg.InputSource)
}

// composeMessages renders per-channel campaign copy for every trigger.
func (r *Runner) composeMessages(customers []models.Customer, triggers []models.AutomationTrigger) ([]models.CampaignMessage, error) {
	byID := make(map[string]*models.Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}

	bar := progressbar.Default(int64(len(triggers)))
	messages := make([]models.CampaignMessage, 0, len(triggers))
	for _, trigger := range triggers {
		c, ok := byID[trigger.CustomerID]
		if !ok {
			return nil, fmt.Errorf("trigger %s references unknown customer %s", trigger.ID, trigger.CustomerID)
		}
		personalization := r.eng.GeneratePersonalizedContent(c)
		messages = append(messages, r.eng.GenerateCampaignMessage(trigger, c, personalization))
		bar.Add(1)
	}
	return messages, nil
}

func (r *Runner) export(results []models.TagCalculationResult, triggers []models.AutomationTrigger, messages []models.CampaignMessage, summary models.RestaurantCustomerSummary) error {
	sinks := make([]sink.Sink, 0, 2)

	out, err := sink.New(r.cfg)
	if err != nil {
		return err
	}
	sinks = append(sinks, out)

	if r.cfg.KafkaEnabled {
		kafkaSink, err := sink.NewKafkaSink(r.cfg)
		if err != nil {
			return err
		}
		sinks = append(sinks, kafkaSink)
	}

	writeAll := func(topic string, payloads ...interface{}) error {
		for _, payload := range payloads {
			msg, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("serializing %s payload: %w", topic, err)
			}
			for _, s := range sinks {
				if err := s.WriteMessage(topic, msg); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, res := range results {
		if err := writeAll(models.TopicTagResults, res); err != nil {
			return err
		}
	}
	for _, trigger := range triggers {
		if err := writeAll(models.TopicTriggers, trigger); err != nil {
			return err
		}
	}
	for _, msg := range messages {
		if err := writeAll(models.TopicCampaignMessages, msg); err != nil {
			return err
		}
	}
	if err := writeAll(models.TopicRestaurantSummary, summary); err != nil {
		return err
	}

	for _, s := range sinks {
		if err := s.Close(); err != nil {
			return fmt.Errorf("closing sink: %w", err)
		}
	}

	log.Info().
		Int("tag_results", len(results)).
		Int("triggers", len(triggers)).
		Int("campaign_messages", len(messages)).
		Msg("tagging run complete")
	return nil
}
