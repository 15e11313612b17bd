package crawler

import (
	"strings"

	"market-crawler/pkg/models"
)

// CategoryAttributor sets the game of already extracted items from the
// name blocks of the same pages. The name block of a row is not adjacent
// to its listing anchor, so this runs as a second pass.
type CategoryAttributor struct {
	Layout ListingLayout
}

func NewCategoryAttributor() *CategoryAttributor {
	return &CategoryAttributor{Layout: SteamLayout}
}

// Attribute overwrites the game of every item in items whose name appears
// in a name block of batch. Names not in items are ignored.
func (a *CategoryAttributor) Attribute(batch *Batch, items models.ItemSet) error {
	for i := 0; i < batch.Len(); i++ {
		page, err := batch.Page(i)
		if err != nil {
			return err
		}
		for k, line := range page {
			if !strings.Contains(line, a.Layout.NameBlockAnchor) {
				continue
			}
			r := record{page: page, at: k}
			name := stripTags(r.field(a.Layout.NameOffset))
			it, ok := items[name]
			if !ok {
				continue
			}
			it.Game = models.GameOf(stripTags(r.field(a.Layout.GameOffset)))
			items[name] = it
		}
	}
	return nil
}
