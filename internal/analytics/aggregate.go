// Package analytics implements the category aggregation pipeline behind the
// bestsellers dashboard: per-category summaries, threshold filtering with
// metric ordering, and per-category product detail selection. Every function
// is a pure computation over in-memory rows; all of them are deterministic
// for a fixed input order.
package analytics

import (
	"sort"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

const topSellerWindow = 10

// Aggregate computes exactly one CategorySummary per distinct category in
// the given (already region-filtered) rows. Summaries appear in first-
// appearance order of their category, so repeated invocations over the same
// rows produce identical output.
//
// Top10Sales sums the sales counts of the ten highest-selling rows of the
// category; ties are broken stably by input row order. Categories smaller
// than ten contribute all their rows, so Top10Sales == TotalSales there.
func Aggregate(rows []models.ProductRow) []models.CategorySummary {
	order := make([]string, 0)
	sales := make(map[string][]int)
	summaries := make(map[string]*models.CategorySummary)

	for _, row := range rows {
		s, ok := summaries[row.Category]
		if !ok {
			s = &models.CategorySummary{Category: row.Category}
			summaries[row.Category] = s
			order = append(order, row.Category)
		}
		s.ProductCount++
		s.TotalSales += row.SalesCount
		s.TotalReviews += row.ReviewCount
		sales[row.Category] = append(sales[row.Category], row.SalesCount)
	}

	out := make([]models.CategorySummary, 0, len(order))
	for _, category := range order {
		s := summaries[category]
		s.Top10Sales = topNSum(sales[category], topSellerWindow)
		out = append(out, *s)
	}
	return out
}

// topNSum sums the n largest values. The stable sort keeps equal values in
// input order, which fixes the tie-break deterministically.
func topNSum(values []int, n int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	return sum
}
