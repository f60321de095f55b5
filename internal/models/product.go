package models

// ProductRow is one bestseller listing after schema normalization.
// All numeric fields are non-negative once a row has been loaded.
type ProductRow struct {
	Category    string  `json:"category"`
	Region      string  `json:"region"`
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	ProductURL  string  `json:"product_url"`
	ImageURL    string  `json:"image_url"`
	SalesText   string  `json:"sales_description"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	SalesCount  int     `json:"sales_count"`
}

// CategorySummary holds the aggregated metrics for one category within the
// currently selected region.
type CategorySummary struct {
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
	TotalSales   int    `json:"total_sales"`
	TotalReviews int    `json:"total_reviews"`
	Top10Sales   int    `json:"top10_sales"`
}

// SortMode selects the ordering applied to qualifying categories.
type SortMode string

const (
	SortByTotalSales   SortMode = "total_sales"
	SortByTotalReviews SortMode = "total_reviews"
)

// ParseSortMode maps a query-string value to a SortMode, defaulting to
// sales ordering for anything unrecognized.
func ParseSortMode(s string) SortMode {
	if SortMode(s) == SortByTotalReviews {
		return SortByTotalReviews
	}
	return SortByTotalSales
}

// CategoryFilter holds the user-supplied thresholds applied to aggregated
// category summaries. Both thresholds are inclusive.
type CategoryFilter struct {
	MinProductCount int      `json:"min_product_count"`
	MinTotalSales   int      `json:"min_total_sales"`
	Sort            SortMode `json:"sort"`
}

// FilterBounds are the slider bounds offered to the user. They are computed
// over the region-filtered, unthresholded summaries and do not shrink as
// the user filters.
type FilterBounds struct {
	MaxProductCount int `json:"max_product_count"`
	MaxTotalSales   int `json:"max_total_sales"`
}
