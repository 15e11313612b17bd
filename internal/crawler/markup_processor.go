package crawler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// MarkupProcessor implements engine.Processor for the HTML search pages.
// All pages are fetched first, then extracted as one batch.
type MarkupProcessor struct {
	Source    LineSource
	Extractor ListingExtractor
	// Attributor runs the category pass; nil skips it.
	Attributor *CategoryAttributor
	Size       models.Size
	Logger     *log.Logger
}

func (p *MarkupProcessor) Process(ctx context.Context, pages int) (models.ItemSet, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	batch := NewBatch()
	for i := 0; i < pages; i++ {
		page, err := p.Source.FetchLines(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", i, err)
		}
		logger.Info("fetched page", "page", i, "lines", len(page))
		batch.Add(page)
	}

	items, err := p.Extractor.Extract(batch, p.Size)
	if err != nil {
		return nil, fmt.Errorf("extract listings: %w", err)
	}
	if p.Attributor != nil {
		if err := p.Attributor.Attribute(batch, items); err != nil {
			return nil, fmt.Errorf("attribute categories: %w", err)
		}
	}
	return items, nil
}
