package crawler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrPageIndex is returned when a page index is outside the batch.
var ErrPageIndex = errors.New("page index out of range")

// Page is one fetched search page split on the transport's line
// boundaries. Field offsets are counted in these lines.
type Page []string

// SplitLines splits a response body into a Page. A trailing newline does
// not produce an extra empty line.
func SplitLines(body string) Page {
	if body == "" {
		return Page{}
	}
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return Page(lines)
}

// At returns line k, or "" when k falls outside the page.
func (p Page) At(k int) string {
	if k < 0 || k >= len(p) {
		return ""
	}
	return p[k]
}

// Batch is the ordered set of pages one extraction run works on.
type Batch struct {
	pages []Page
}

func NewBatch(pages ...Page) *Batch {
	return &Batch{pages: pages}
}

func (b *Batch) Add(p Page) {
	b.pages = append(b.pages, p)
}

func (b *Batch) Len() int {
	return len(b.pages)
}

// Page returns page i of the batch.
func (b *Batch) Page(i int) (Page, error) {
	if i < 0 || i >= len(b.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", i, len(b.pages), ErrPageIndex)
	}
	return b.pages[i], nil
}

// record reads the fields of one listing row. Fields are addressed by
// their line offset from the anchor line.
type record struct {
	page Page
	at   int
}

func (r record) field(offset int) string {
	return r.page.At(r.at + offset)
}

// stripTags drops markup from a single line and returns its trimmed text.
// Entities in text are decoded.
func stripTags(line string) string {
	z := html.NewTokenizer(strings.NewReader(line))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// attrValue returns the value of the first name="..." attribute on line.
func attrValue(line, name string) string {
	_, rest, ok := strings.Cut(line, name+`="`)
	if !ok {
		return ""
	}
	val, _, _ := strings.Cut(rest, `"`)
	return val
}

func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func keepDecimal(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
}

// parseQuantity reads the digits of text as an integer, 0 when there are none.
func parseQuantity(text string) (int, bool) {
	n, err := strconv.Atoi(keepDigits(text))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parsePrice reads the digits and dots of text as a decimal, 0 when malformed.
func parsePrice(text string) (float64, bool) {
	f, err := strconv.ParseFloat(keepDecimal(text), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
