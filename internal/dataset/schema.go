package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Source column headers as exported by the upstream scraping tool. The
// export is Chinese-labelled; the loader maps them onto ProductRow fields.
const (
	ColRegion     = "国家"
	ColRank       = "排名"
	ColName       = "产品名"
	ColProductURL = "商品链接"
	ColImageURL   = "原图链接"
	ColSalesText  = "销量描述"
	ColPrice      = "价格"
	ColRating     = "评分"
	ColReviews    = "评论数"
	ColSales      = "销量数字"
)

// CategoryColumnAliases is the ordered preference list of headers accepted
// as the category column. Earlier entries win. Extending this list is a
// data change, not a code change.
var CategoryColumnAliases = []string{"类目", "所属类目"}

// SchemaError reports a required column missing from the source export.
// It is fatal: nothing downstream can run without the category dimension.
type SchemaError struct {
	Column     string
	Candidates []string
}

func (e *SchemaError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("dataset schema: required column %q missing (accepted headers: %s)",
			e.Column, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("dataset schema: required column %q missing", e.Column)
}

// resolveCategoryColumn picks the first alias present in the header list.
func resolveCategoryColumn(columns []string) (string, error) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, alias := range CategoryColumnAliases {
		if present[alias] {
			return alias, nil
		}
	}
	return "", &SchemaError{Column: "category", Candidates: CategoryColumnAliases}
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// CoerceFloat parses possibly comma-formatted numeric text. Malformed text
// never propagates: it coerces to 0, as do negative values (loaded rows are
// non-negative by contract).
func CoerceFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// CoerceInt parses integer-valued text with the same coercion rules as
// CoerceFloat. Fractional text truncates toward zero.
func CoerceInt(s string) int {
	return int(CoerceFloat(s))
}
