package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// TreeExtractor reads listing rows from the parsed element tree of a
// search page and locates fields by class instead of line offset. It
// survives reformatting of the markup that would break MarkupExtractor,
// and attaches the game in the same pass.
type TreeExtractor struct {
	ListingsPrefix string
	IconSizeWidth  int
	Logger         *log.Logger
}

func NewTreeExtractor(listingsPrefix string, logger *log.Logger) *TreeExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &TreeExtractor{
		ListingsPrefix: listingsPrefix,
		IconSizeWidth:  SteamLayout.IconSizeWidth,
		Logger:         logger,
	}
}

func (e *TreeExtractor) Extract(batch *Batch, size models.Size) (models.ItemSet, error) {
	items := models.NewItemSet()
	for i := 0; i < batch.Len(); i++ {
		page, err := batch.Page(i)
		if err != nil {
			return nil, err
		}
		if err := e.ExtractPage(page, size, items); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
	}
	return items, nil
}

// ExtractPage parses page and puts its items into items.
func (e *TreeExtractor) ExtractPage(page Page, size models.Size, items models.ItemSet) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.Join(page, "\n")))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("a." + SteamLayout.RowAnchor).Each(func(_ int, row *goquery.Selection) {
		marker := "[" + SteamLayout.IdentityMarker + "]"
		if !row.Is(marker) && row.Find(marker).Length() == 0 {
			return
		}
		href := row.AttrOr("href", "")
		name := listingName(href, e.ListingsPrefix)
		if name == "" {
			return
		}

		it := models.Item{
			Name: name,
			URL:  strings.TrimSpace(href),
			Img:  iconURL(row.Find("img.market_listing_item_img").AttrOr("src", ""), e.IconSizeWidth, size.Suffix()),
		}
		if q, ok := parseQuantity(row.Find(".market_listing_num_listings_qty").First().Text()); ok {
			it.Quantity = q
		}
		priceSel := row.Find("span.normal_price[data-price]")
		if priceSel.Length() == 0 {
			priceSel = row.Find(".normal_price")
		}
		if p, ok := parsePrice(priceSel.First().Text()); ok {
			it.Price = p
		}
		if game := strings.TrimSpace(row.Find(".market_listing_game_name").First().Text()); game != "" {
			it.Game = models.GameOf(game)
		}
		items.Put(it)
	})
	return nil
}
