package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// ErrNoPages is returned when a run is configured with fewer than one page.
var ErrNoPages = errors.New("at least one page is required")

// Processor defines how one run turns search pages into items.
type Processor interface {
	Process(ctx context.Context, pages int) (models.ItemSet, error)
}

// Sink defines how to persist the items of a run.
type Sink interface {
	Save(ctx context.Context, items models.ItemSet) error
}

// Config holds run settings.
type Config struct {
	Pages int
}

// Engine runs a Processor and hands its result to a Sink. Runs are
// sequential and hold no state between calls.
type Engine struct {
	config    Config
	processor Processor
	sink      Sink
	logger    *log.Logger
}

func NewEngine(cfg Config, proc Processor, sink Sink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		config:    cfg,
		processor: proc,
		sink:      sink,
		logger:    logger,
	}
}

// Run processes the configured pages and saves the resulting items.
func (engine *Engine) Run(ctx context.Context) (models.ItemSet, error) {
	if engine.config.Pages < 1 {
		return nil, ErrNoPages
	}

	start := time.Now()
	items, err := engine.processor.Process(ctx, engine.config.Pages)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	engine.logger.Info("extracted items", "pages", engine.config.Pages, "items", len(items), "took", time.Since(start))

	if len(items) == 0 {
		return items, nil
	}
	if err := engine.sink.Save(ctx, items); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	engine.logger.Info("saved items", "items", len(items))
	return items, nil
}
