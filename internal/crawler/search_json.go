package crawler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"market-crawler/pkg/models"
)

// searchDocument is the payload of the search render endpoint.
type searchDocument struct {
	Results []struct {
		Name             string `json:"name"`
		HashName         string `json:"hash_name"`
		SellListings     int    `json:"sell_listings"`
		SellPriceText    string `json:"sell_price_text"`
		AppName          string `json:"app_name"`
		AssetDescription struct {
			AppID   int    `json:"appid"`
			IconURL string `json:"icon_url"`
		} `json:"asset_description"`
	} `json:"results"`
	TotalCount *int `json:"total_count"`
}

// JSONExtractor reads items out of a search render document.
type JSONExtractor struct {
	MarketURL string
	CDNURL    string
	Logger    *log.Logger
}

func NewJSONExtractor(marketURL, cdnURL string, logger *log.Logger) *JSONExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &JSONExtractor{
		MarketURL: strings.TrimRight(marketURL, "/"),
		CDNURL:    strings.TrimRight(cdnURL, "/"),
		Logger:    logger,
	}
}

// Extract decodes doc. Results keep their document order and are not
// deduplicated. An empty or undecodable document, or one without a
// total_count, yields no items and an unknown total.
func (e *JSONExtractor) Extract(doc []byte) models.SearchResult {
	if len(strings.TrimSpace(string(doc))) == 0 {
		e.Logger.Warn("empty search document")
		return models.SearchResult{Items: []models.SearchItem{}}
	}

	var data searchDocument
	if err := json.Unmarshal(doc, &data); err != nil {
		e.Logger.Warn("undecodable search document", "err", err)
		return models.SearchResult{Items: []models.SearchItem{}}
	}
	if data.TotalCount == nil {
		e.Logger.Warn("search document has no total_count")
		return models.SearchResult{Items: []models.SearchItem{}}
	}

	items := make([]models.SearchItem, 0, len(data.Results))
	for _, r := range data.Results {
		items = append(items, models.SearchItem{
			Name:     r.Name,
			Game:     models.GameOf(r.AppName),
			URL:      fmt.Sprintf("%s/market/listings/%d/%s", e.MarketURL, r.AssetDescription.AppID, escapeHashName(r.HashName)),
			Img:      e.CDNURL + "/economy/image/" + r.AssetDescription.IconURL,
			Quantity: r.SellListings,
			Price:    keepDecimal(r.SellPriceText),
		})
	}
	return models.SearchResult{Items: items, Total: models.KnownTotal(*data.TotalCount)}
}

// escapeHashName query-escapes a hash name with spaces as %20.
func escapeHashName(hashName string) string {
	return strings.ReplaceAll(url.QueryEscape(hashName), "+", "%20")
}
