package crawler

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const testPrefix = "https://steamcommunity.com/market/listings/"

var quietLogger = log.New(io.Discard)

type fixtureRow struct {
	href     string
	hashName string // empty renders a promo row without identity
	src      string
	qty      string
	price    string
	name     string
	game     string
}

// lines renders the row the way the search page lays it out: anchor at
// +0, image at +2, quantity at +6, price at +12 and the name block at
// +16 with the name at +17 and the game at +19.
func (r fixtureRow) lines(idx int) []string {
	identity := fmt.Sprintf(`	<div id="result_%d" class="market_listing_row market_recent_listing_row market_listing_searchresult" data-appid="440" data-hash-name="%s">`, idx, r.hashName)
	if r.hashName == "" {
		identity = `	<div class="market_listing_row market_promo_row">`
	}
	return []string{
		fmt.Sprintf(`<a class="market_listing_row_link" href="%s" id="resultlink_%d">`, r.href, idx),
		identity,
		fmt.Sprintf(`		<img id="result_%d_image" src="%s" style="border-color: #7D6D00;" class="market_listing_item_img" alt="" />`, idx, r.src),
		`		<div class="market_listing_right_cell market_listing_num_listings">`,
		`			<span class="market_table_value">`,
		`				<span class="market_listing_num_listings_qty" data-qty="0">`,
		`					<span>` + r.qty + `</span>`,
		`				</span>`,
		`			</span>`,
		`		</div>`,
		`		<div class="market_listing_right_cell market_listing_their_price">`,
		`			<span class="market_table_value">`,
		`				Starting at:<br/><span class="normal_price" data-price="1" data-currency="1">` + r.price + `</span>`,
		`				<span class="sale_price">$0.01 USD</span>`,
		`			</span>`,
		`		</div>`,
		`		<div class="market_listing_item_name_block">`,
		fmt.Sprintf(`			<span id="result_%d_name" class="market_listing_item_name">%s</span>`, idx, r.name),
		`			<br/>`,
		`			<span class="market_listing_game_name">` + r.game + `</span>`,
		`		</div>`,
		`	</div>`,
		`</a>`,
	}
}

func fixturePage(rows ...fixtureRow) Page {
	page := Page{
		`<!DOCTYPE html>`,
		`<html>`,
		`<body>`,
		`<div id="searchResultsRows">`,
	}
	for i, r := range rows {
		page = append(page, r.lines(i)...)
	}
	return append(page, `</div>`, `</body>`, `</html>`)
}

var (
	keyRow = fixtureRow{
		href:     testPrefix + "440/Mann%20Co.%20Supply%20Crate%20Key",
		hashName: "Mann Co. Supply Crate Key",
		src:      "https://community.cloudflare.steamstatic.com/economy/image/fWFc82js0fmoRAP/62fx62f",
		qty:      "1,234 listings",
		price:    "$2.50 USD",
		name:     "Mann Co. Supply Crate Key",
		game:     "Team Fortress 2",
	}
	caseRow = fixtureRow{
		href:     testPrefix + "730/Chroma%202%20Case",
		hashName: "Chroma 2 Case",
		src:      "https://community.cloudflare.steamstatic.com/economy/image/-9a81dlWLwJ2UUGc/62fx62f",
		qty:      "98,765",
		price:    "$0.87 USD",
		name:     "Chroma 2 Case",
		game:     "Counter-Strike 2",
	}
	promoRow = fixtureRow{
		href:  testPrefix + "753/Summer%20Sale",
		src:   "https://community.cloudflare.steamstatic.com/economy/image/promo/62fx62f",
		qty:   "1",
		price: "$1.00",
		name:  "Summer Sale",
		game:  "Steam",
	}
)

func pageString(p Page) string {
	return strings.Join(p, "\n") + "\n"
}
