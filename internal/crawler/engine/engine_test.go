package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-crawler/pkg/models"
)

type stubProcessor struct {
	items models.ItemSet
	err   error
	pages int
}

func (p *stubProcessor) Process(_ context.Context, pages int) (models.ItemSet, error) {
	p.pages = pages
	return p.items, p.err
}

type recordingSink struct {
	saved []models.ItemSet
	err   error
}

func (s *recordingSink) Save(_ context.Context, items models.ItemSet) error {
	s.saved = append(s.saved, items)
	return s.err
}

var quiet = log.New(io.Discard)

func testItems() models.ItemSet {
	items := models.NewItemSet()
	items.Put(models.Item{Name: "Key", Game: models.GameOf("Team Fortress 2"), Quantity: 5, Price: 2.5, URL: "https://market/listings/440/Key"})
	items.Put(models.Item{Name: "Case", Quantity: 1, Price: 0.1})
	return items
}

func TestEngine_Run(t *testing.T) {
	proc := &stubProcessor{items: testItems()}
	sink := &recordingSink{}

	items, err := NewEngine(Config{Pages: 3}, proc, sink, quiet).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, proc.pages)
	require.Len(t, sink.saved, 1)
	assert.Equal(t, items, sink.saved[0])
}

func TestEngine_Run_noItemsSkipsSink(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewEngine(Config{Pages: 1}, &stubProcessor{items: models.NewItemSet()}, sink, quiet).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sink.saved)
}

func TestEngine_Run_errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewEngine(Config{Pages: 0}, &stubProcessor{}, &recordingSink{}, quiet).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoPages)

	_, err = NewEngine(Config{Pages: 1}, &stubProcessor{err: boom}, &recordingSink{}, quiet).Run(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = NewEngine(Config{Pages: 1}, &stubProcessor{items: testItems()}, &recordingSink{err: boom}, quiet).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWriterSink_Save(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterSink{W: &buf}.Save(context.Background(), testItems()))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Steam event")
	assert.Contains(t, out, "Team Fortress 2")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Case")), bytes.Index(buf.Bytes(), []byte("Key")))
}
