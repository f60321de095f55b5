package analytics

import (
	"sort"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

// FilterAndSort returns the summaries satisfying both inclusive thresholds,
// ordered descending by the chosen metric. Equal-metric categories keep
// their relative input order.
func FilterAndSort(summaries []models.CategorySummary, filter models.CategoryFilter) []models.CategorySummary {
	qualifying := make([]models.CategorySummary, 0, len(summaries))
	for _, s := range summaries {
		if s.ProductCount >= filter.MinProductCount && s.TotalSales >= filter.MinTotalSales {
			qualifying = append(qualifying, s)
		}
	}

	metric := func(s models.CategorySummary) int { return s.TotalSales }
	if filter.Sort == models.SortByTotalReviews {
		metric = func(s models.CategorySummary) int { return s.TotalReviews }
	}
	sort.SliceStable(qualifying, func(i, j int) bool {
		return metric(qualifying[i]) > metric(qualifying[j])
	})
	return qualifying
}

// Bounds computes the filter slider bounds over the unthresholded summaries
// of the selected region. Bounds never shrink as the user filters.
func Bounds(summaries []models.CategorySummary) models.FilterBounds {
	var b models.FilterBounds
	for _, s := range summaries {
		if s.ProductCount > b.MaxProductCount {
			b.MaxProductCount = s.ProductCount
		}
		if s.TotalSales > b.MaxTotalSales {
			b.MaxTotalSales = s.TotalSales
		}
	}
	return b
}
