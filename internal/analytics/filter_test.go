package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

func summaryFixture() []models.CategorySummary {
	return []models.CategorySummary{
		{Category: "Toys", ProductCount: 12, TotalSales: 900, TotalReviews: 40},
		{Category: "Beauty", ProductCount: 5, TotalSales: 1500, TotalReviews: 300},
		{Category: "Grocery", ProductCount: 30, TotalSales: 200, TotalReviews: 700},
		{Category: "Electronics", ProductCount: 8, TotalSales: 1500, TotalReviews: 120},
	}
}

func TestFilterAndSortInclusivePredicate(t *testing.T) {
	// Thresholds equal to a summary's own values must keep it.
	out := FilterAndSort(summaryFixture(), models.CategoryFilter{
		MinProductCount: 12,
		MinTotalSales:   900,
		Sort:            models.SortByTotalSales,
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Toys", out[0].Category)
}

func TestFilterAndSortKeepsOnlyQualifying(t *testing.T) {
	filter := models.CategoryFilter{MinProductCount: 6, MinTotalSales: 300, Sort: models.SortByTotalSales}
	out := FilterAndSort(summaryFixture(), filter)

	require.Len(t, out, 2)
	for _, s := range out {
		assert.GreaterOrEqual(t, s.ProductCount, filter.MinProductCount)
		assert.GreaterOrEqual(t, s.TotalSales, filter.MinTotalSales)
	}
}

func TestFilterAndSortBySalesIsMonotonic(t *testing.T) {
	out := FilterAndSort(summaryFixture(), models.CategoryFilter{Sort: models.SortByTotalSales})
	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].TotalSales, out[i].TotalSales)
	}
}

func TestFilterAndSortByReviewsIsMonotonic(t *testing.T) {
	out := FilterAndSort(summaryFixture(), models.CategoryFilter{Sort: models.SortByTotalReviews})
	require.Len(t, out, 4)
	assert.Equal(t, "Grocery", out[0].Category)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].TotalReviews, out[i].TotalReviews)
	}
}

func TestFilterAndSortTiesAreStable(t *testing.T) {
	// Beauty and Electronics tie on sales; Beauty precedes in input.
	out := FilterAndSort(summaryFixture(), models.CategoryFilter{Sort: models.SortByTotalSales})
	require.Len(t, out, 4)
	assert.Equal(t, "Beauty", out[0].Category)
	assert.Equal(t, "Electronics", out[1].Category)
}

func TestBoundsComputedOverUnthresholdedSummaries(t *testing.T) {
	b := Bounds(summaryFixture())
	assert.Equal(t, 30, b.MaxProductCount)
	assert.Equal(t, 1500, b.MaxTotalSales)
}

func TestBoundsEmpty(t *testing.T) {
	b := Bounds(nil)
	assert.Equal(t, 0, b.MaxProductCount)
	assert.Equal(t, 0, b.MaxTotalSales)
}
