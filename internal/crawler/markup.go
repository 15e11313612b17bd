package crawler

import (
	"strings"

	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// ListingExtractor turns a batch of search pages into a name-keyed item set.
type ListingExtractor interface {
	Extract(batch *Batch, size models.Size) (models.ItemSet, error)
}

// MarkupExtractor reads listing rows out of search page markup using the
// fixed line offsets of its Layout.
type MarkupExtractor struct {
	Layout         ListingLayout
	ListingsPrefix string
	Filter         RowFilter
	Logger         *log.Logger
}

func NewMarkupExtractor(listingsPrefix string, logger *log.Logger) *MarkupExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &MarkupExtractor{
		Layout:         SteamLayout,
		ListingsPrefix: listingsPrefix,
		Filter:         IdentityFilter{Marker: SteamLayout.IdentityMarker, Span: 1},
		Logger:         logger,
	}
}

// Extract scans every page of batch in order. Later rows overwrite
// earlier rows of the same name.
func (e *MarkupExtractor) Extract(batch *Batch, size models.Size) (models.ItemSet, error) {
	items := models.NewItemSet()
	for i := 0; i < batch.Len(); i++ {
		if err := e.ExtractPage(batch, i, size, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// ExtractPage scans page i of batch and puts its items into items.
func (e *MarkupExtractor) ExtractPage(batch *Batch, i int, size models.Size, items models.ItemSet) error {
	page, err := batch.Page(i)
	if err != nil {
		return err
	}

	found := 0
	for k, line := range page {
		if !strings.Contains(line, e.Layout.RowAnchor) {
			continue
		}
		if e.Filter != nil && !e.Filter.Accept(page, k) {
			e.Logger.Debug("skipping row without item identity", "page", i, "line", k)
			continue
		}
		it, ok := e.row(record{page: page, at: k}, size)
		if !ok {
			e.Logger.Debug("skipping row without item name", "page", i, "line", k)
			continue
		}
		items.Put(it)
		found++
	}
	e.Logger.Debug("extracted page", "page", i, "rows", found)
	return nil
}

func (e *MarkupExtractor) row(r record, size models.Size) (models.Item, bool) {
	href := attrValue(r.field(0), "href")
	name := listingName(href, e.ListingsPrefix)
	if name == "" {
		return models.Item{}, false
	}

	it := models.Item{
		Name: name,
		URL:  strings.TrimSpace(href),
		Img:  iconURL(attrValue(r.field(e.Layout.ImageOffset), "src"), e.Layout.IconSizeWidth, size.Suffix()),
	}

	qtyText := stripTags(r.field(e.Layout.QuantityOffset))
	if q, ok := parseQuantity(qtyText); ok {
		it.Quantity = q
	} else {
		e.Logger.Debug("malformed quantity", "item", name, "text", qtyText)
	}

	priceText := stripTags(r.field(e.Layout.PriceOffset))
	if p, ok := parsePrice(priceText); ok {
		it.Price = p
	} else {
		e.Logger.Debug("malformed price", "item", name, "text", priceText)
	}
	return it, true
}
