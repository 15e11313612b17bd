package crawler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// SearchProcessor implements engine.Processor for the JSON render
// endpoint. Pages are fetched and extracted one at a time; it stops early
// once a known total count has been covered.
type SearchProcessor struct {
	Source    JSONSource
	Extractor *JSONExtractor
	PerPage   int
	Logger    *log.Logger
}

func (p *SearchProcessor) Process(ctx context.Context, pages int) (models.ItemSet, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = 10
	}

	items := models.NewItemSet()
	for i := 0; i < pages; i++ {
		doc, err := p.Source.FetchJSON(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", i, err)
		}
		res := p.Extractor.Extract(doc)
		items.DedupSearchItems(res.Items)

		total, known := res.Total.Value()
		if !known {
			logger.Warn("search total unknown", "page", i)
			continue
		}
		logger.Info("fetched page", "page", i, "results", len(res.Items), "total", total)
		if (i+1)*perPage >= total {
			break
		}
	}
	return items, nil
}
