package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

func toyRows() []models.ProductRow {
	return []models.ProductRow{
		{Category: "Toys", Region: "阿联酋", Rank: 1, SalesCount: 100, ReviewCount: 10},
		{Category: "Toys", Region: "阿联酋", Rank: 2, SalesCount: 50, ReviewCount: 5},
		{Category: "Toys", Region: "沙特", Rank: 1, SalesCount: 999, ReviewCount: 99},
	}
}

func TestAggregateRegionScenario(t *testing.T) {
	uae := models.FilterByRegion(toyRows(), "阿联酋")
	summaries := Aggregate(uae)

	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "Toys", s.Category)
	assert.Equal(t, 2, s.ProductCount)
	assert.Equal(t, 150, s.TotalSales)
	assert.Equal(t, 15, s.TotalReviews)
	assert.Equal(t, 150, s.Top10Sales)
}

func TestAggregateTop10Window(t *testing.T) {
	rows := make([]models.ProductRow, 0, 15)
	total := 0
	for i := 0; i < 15; i++ {
		sales := (i + 1) * 10 // 10..150
		total += sales
		rows = append(rows, models.ProductRow{Category: "Electronics", SalesCount: sales})
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 1)
	s := summaries[0]

	// Ten largest are 60..150.
	wantTop10 := 0
	for v := 60; v <= 150; v += 10 {
		wantTop10 += v
	}
	assert.Equal(t, total, s.TotalSales)
	assert.Equal(t, wantTop10, s.Top10Sales)
	assert.LessOrEqual(t, s.Top10Sales, s.TotalSales)
}

func TestAggregateTop10EqualsTotalForSmallCategories(t *testing.T) {
	summaries := Aggregate(toyRows())
	for _, s := range summaries {
		if s.ProductCount <= 10 {
			assert.Equal(t, s.TotalSales, s.Top10Sales, s.Category)
		}
	}
}

func TestAggregateCountsPartitionRows(t *testing.T) {
	rows := []models.ProductRow{
		{Category: "Toys", SalesCount: 1},
		{Category: "Beauty", SalesCount: 2},
		{Category: "Toys", SalesCount: 3},
		{Category: "Grocery"},
	}
	summaries := Aggregate(rows)

	counted := 0
	for _, s := range summaries {
		require.GreaterOrEqual(t, s.ProductCount, 1)
		counted += s.ProductCount
	}
	assert.Equal(t, len(rows), counted)
}

func TestAggregateZeroMetricsStillSummarized(t *testing.T) {
	summaries := Aggregate([]models.ProductRow{{Category: "Grocery"}})
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ProductCount)
	assert.Equal(t, 0, summaries[0].TotalSales)
	assert.Equal(t, 0, summaries[0].Top10Sales)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregateDeterministic(t *testing.T) {
	rows := toyRows()
	first := Aggregate(rows)
	second := Aggregate(rows)
	assert.Equal(t, first, second)
}

func TestAggregateCategoryOrderIsFirstAppearance(t *testing.T) {
	rows := []models.ProductRow{
		{Category: "Beauty"},
		{Category: "Toys"},
		{Category: "Beauty"},
		{Category: "Grocery"},
	}
	summaries := Aggregate(rows)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Beauty", summaries[0].Category)
	assert.Equal(t, "Toys", summaries[1].Category)
	assert.Equal(t, "Grocery", summaries[2].Category)
}
