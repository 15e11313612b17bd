package crawler

import "strings"

// RowFilter decides whether the listing row anchored at line at of page
// is a real item row.
type RowFilter interface {
	Accept(page Page, at int) bool
}

// IdentityFilter accepts rows that carry Marker on the anchor line or on
// one of the Span lines after it. Promotional rows have no item identity
// and are skipped.
type IdentityFilter struct {
	Marker string
	Span   int
}

func (f IdentityFilter) Accept(page Page, at int) bool {
	for k := at; k <= at+f.Span; k++ {
		if strings.Contains(page.At(k), f.Marker) {
			return true
		}
	}
	return false
}

// AlwaysFilter accepts every anchored row.
type AlwaysFilter struct{}

func (AlwaysFilter) Accept(Page, int) bool {
	return true
}
