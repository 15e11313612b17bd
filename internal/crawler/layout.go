package crawler

import (
	"net/url"
	"strings"
)

// ListingLayout declares where the fields of a listing sit relative to
// the anchor lines of a search results page.
//
// The layout is coupled to the upstream markup line by line. If the
// marketplace changes its templates the offsets silently point at the
// wrong lines and fields come out as zero values or garbage; no error is
// raised. Keep the fixture pages in the tests in sync with whatever
// layout is declared here.
type ListingLayout struct {
	// RowAnchor marks the first line of a listing row.
	RowAnchor string
	// IdentityMarker is the attribute real item rows carry and promo rows lack.
	IdentityMarker string
	ImageOffset    int
	QuantityOffset int
	PriceOffset    int
	// IconSizeWidth is the number of trailing characters of the image src
	// that hold the source's own size token.
	IconSizeWidth int

	// NameBlockAnchor marks the block holding the item name and its game.
	NameBlockAnchor string
	NameOffset      int
	GameOffset      int
}

// SteamLayout is the layout of the community market search page.
var SteamLayout = ListingLayout{
	RowAnchor:       "market_listing_row_link",
	IdentityMarker:  "data-hash-name",
	ImageOffset:     2,
	QuantityOffset:  6,
	PriceOffset:     12,
	IconSizeWidth:   8,
	NameBlockAnchor: "market_listing_item_name_block",
	NameOffset:      1,
	GameOffset:      3,
}

// ListingsPrefix is the href prefix of listing pages under marketURL.
func ListingsPrefix(marketURL string) string {
	return strings.TrimRight(marketURL, "/") + "/market/listings/"
}

// listingName derives the item name from a listing href: the prefix is
// removed, and the second path segment of the rest is unescaped.
func listingName(href, prefix string) string {
	rest := href
	if prefix != "" {
		rest = strings.ReplaceAll(href, prefix, "")
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return ""
	}
	name, err := url.QueryUnescape(parts[1])
	if err != nil {
		return parts[1]
	}
	return name
}

// iconURL drops the trailing size token of src and appends suffix.
func iconURL(src string, width int, suffix string) string {
	if len(src) < width {
		return suffix
	}
	return src[:len(src)-width] + suffix
}
