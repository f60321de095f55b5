package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRegionsOffersOnlyPresent(t *testing.T) {
	rows := []ProductRow{
		{Region: "沙特"},
		{Region: "沙特"},
	}

	offered := AvailableRegions(rows)
	require.Len(t, offered, 1)
	assert.Equal(t, "KSA", offered[0].Label)
	assert.True(t, offered[0].Default, "first offered choice is default when UAE is absent")
}

func TestAvailableRegionsPrefersUAEDefault(t *testing.T) {
	rows := []ProductRow{
		{Region: "沙特"},
		{Region: "阿联酋"},
	}

	offered := AvailableRegions(rows)
	require.Len(t, offered, 2)
	for _, rc := range offered {
		assert.Equal(t, rc.Label == "UAE", rc.Default)
	}
}

func TestAvailableRegionsEmpty(t *testing.T) {
	assert.Empty(t, AvailableRegions(nil))
}

func TestFilterByRegion(t *testing.T) {
	rows := []ProductRow{
		{Name: "a", Region: "阿联酋"},
		{Name: "b", Region: "沙特"},
		{Name: "c", Region: "阿联酋"},
	}

	uae := FilterByRegion(rows, "阿联酋")
	require.Len(t, uae, 2)
	assert.Equal(t, "a", uae[0].Name)
	assert.Equal(t, "c", uae[1].Name)
}

func TestRegionByLabel(t *testing.T) {
	rc, ok := RegionByLabel("KSA")
	require.True(t, ok)
	assert.Equal(t, "沙特", rc.Value)
	assert.Equal(t, "SAR", rc.Currency)

	_, ok = RegionByLabel("EGY")
	assert.False(t, ok)
}
