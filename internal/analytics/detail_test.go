package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

func TestDetailOrdersByRankAscending(t *testing.T) {
	rows := []models.ProductRow{
		{Category: "Toys", Rank: 2, Name: "Puzzle"},
		{Category: "Beauty", Rank: 1, Name: "Serum"},
		{Category: "Toys", Rank: 1, Name: "Blocks"},
	}

	detail := Detail(rows, "Toys")
	require.Len(t, detail, 2)
	assert.Equal(t, "Blocks", detail[0].Name)
	assert.Equal(t, "Puzzle", detail[1].Name)
}

func TestDetailRankTiesKeepInputOrder(t *testing.T) {
	rows := []models.ProductRow{
		{Category: "Toys", Rank: 1, Name: "First"},
		{Category: "Toys", Rank: 1, Name: "Second"},
	}
	detail := Detail(rows, "Toys")
	require.Len(t, detail, 2)
	assert.Equal(t, "First", detail[0].Name)
	assert.Equal(t, "Second", detail[1].Name)
}

func TestDetailUnknownCategory(t *testing.T) {
	assert.Empty(t, Detail([]models.ProductRow{{Category: "Toys"}}, "Beauty"))
}

func TestHeat(t *testing.T) {
	assert.Equal(t, 0.5, Heat(50, 100))
	assert.Equal(t, 1.0, Heat(100, 100))
	assert.Equal(t, 1.0, Heat(120, 100), "heat caps at 1")
	assert.Equal(t, 0.0, Heat(0, 100))
}

func TestHeatZeroMaxIsZeroNotFault(t *testing.T) {
	assert.Equal(t, 0.0, Heat(50, 0))
	assert.Equal(t, 0.0, Heat(0, 0))
}

func TestMaxSales(t *testing.T) {
	rows := []models.ProductRow{{SalesCount: 3}, {SalesCount: 9}, {SalesCount: 1}}
	assert.Equal(t, 9, MaxSales(rows))
	assert.Equal(t, 0, MaxSales(nil))
}
