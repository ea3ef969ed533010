// Package sink routes engine output (tag results, triggers, campaign
// messages and summaries) to its destination. Every sink takes the same
// topic+payload shape so the runner can fan out to several at once.
package sink

import (
	"fmt"
	"os"

	"github.com/tableloyal/tableloyal/internal/models"
)

// Sink receives serialized engine output keyed by topic.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// New builds the sink named by the config's output destination.
func New(cfg *models.Config) (Sink, error) {
	switch cfg.OutputDestination {
	case models.OutputConsole, "":
		return &ConsoleSink{}, nil
	case models.OutputJSON:
		return NewJSONSink(cfg.OutputPath, cfg.OutputFolder), nil
	case models.OutputParquet:
		return NewParquetSink(cfg)
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.OutputDestination)
	}
}

// ConsoleSink prints one JSON document per line, prefixed with its topic.
type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "%s\t%s\n", topic, msg)
	return err
}

func (c *ConsoleSink) Close() error {
	return nil
}
