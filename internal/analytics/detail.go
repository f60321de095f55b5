package analytics

import (
	"sort"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

// Detail returns the rows of one category ordered ascending by rank. Rows
// sharing a rank keep their relative input order.
func Detail(rows []models.ProductRow, category string) []models.ProductRow {
	subset := make([]models.ProductRow, 0)
	for _, row := range rows {
		if row.Category == category {
			subset = append(subset, row)
		}
	}
	sort.SliceStable(subset, func(i, j int) bool { return subset[i].Rank < subset[j].Rank })
	return subset
}

// MaxSales returns the largest sales count across the given rows, used as
// the denominator for heat normalization.
func MaxSales(rows []models.ProductRow) int {
	max := 0
	for _, row := range rows {
		if row.SalesCount > max {
			max = row.SalesCount
		}
	}
	return max
}

// Heat normalizes a sales count against the region-wide maximum into the
// 0..1 range. A zero maximum yields 0, never a division fault.
func Heat(sales, maxSales int) float64 {
	if maxSales <= 0 {
		return 0
	}
	heat := float64(sales) / float64(maxSales)
	if heat > 1 {
		heat = 1
	}
	return heat
}
