package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-crawler/pkg/models"
)

func TestTreeExtractor_matchesMarkupExtraction(t *testing.T) {
	batch := NewBatch(fixturePage(keyRow, promoRow), fixturePage(caseRow))

	want, err := newTestMarkupExtractor(testPrefix).Extract(batch, models.SizeSmall)
	require.NoError(t, err)
	require.NoError(t, NewCategoryAttributor().Attribute(batch, want))

	got, err := NewTreeExtractor(testPrefix, quietLogger).Extract(batch, models.SizeSmall)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTreeExtractor_survivesReflowedMarkup(t *testing.T) {
	// Whole row on one line: every offset-based field would be lost.
	flat := Page{strings.Join(keyRow.lines(0), "")}

	items, err := NewTreeExtractor(testPrefix, quietLogger).Extract(NewBatch(flat), models.SizeBig)
	require.NoError(t, err)

	it, ok := items["Mann Co. Supply Crate Key"]
	require.True(t, ok)
	assert.Equal(t, 1234, it.Quantity)
	assert.Equal(t, 2.50, it.Price)
	assert.Equal(t, "Team Fortress 2", it.Game.String())
	assert.True(t, strings.HasSuffix(it.Img, "256fx256f"))
}

func TestTreeExtractor_missingGameIsUnmatched(t *testing.T) {
	row := caseRow
	row.game = ""

	items, err := NewTreeExtractor(testPrefix, quietLogger).Extract(NewBatch(fixturePage(row)), models.SizeSmall)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGame, items["Chroma 2 Case"].Game.String())
}
