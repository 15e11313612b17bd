package engine

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"market-crawler/pkg/models"
)

// WriterSink prints items as an aligned table instead of storing them.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Save(_ context.Context, items models.ItemSet) error {
	tw := tabwriter.NewWriter(s.W, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGAME\tQUANTITY\tPRICE\tURL")
	for _, name := range items.Names() {
		it := items[name]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n", it.Name, it.Game, it.Quantity, it.Price, it.URL)
	}
	return tw.Flush()
}
