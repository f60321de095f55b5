package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/dataset"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "noon.xlsx")
	dbPath := filepath.Join(dir, "noon_data.db")

	writeWorkbook(t, xlsxPath, [][]interface{}{
		{"类目", "国家", "排名", "产品名", "销量数字"},
		{"Toys", "阿联酋", 1, "Blocks", "3,500"},
		{"Toys", "沙特", 1, "Kite", "999"},
	})

	db, err := store.Open(dbPath, zap.NewNop())
	require.NoError(t, err)
	repo := store.NewListingRepository(db)

	converter := NewConverter(repo, zap.NewNop())
	result, err := converter.Convert(context.Background(), xlsxPath, dbPath)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, "Sheet1", result.SheetName)
	assert.Contains(t, result.Columns, "类目")
	assert.Positive(t, result.SourceBytes)
	assert.Positive(t, result.OutputBytes)

	// The stored cells must round-trip untouched through the loader.
	raw, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.ImportID, raw.ImportID)
	require.Len(t, raw.Records, 2)
	assert.Equal(t, "3,500", raw.Records[0]["销量数字"], "conversion must not transform values")

	rows, dropped, err := dataset.BuildRows(raw)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rows, 2)
	assert.Equal(t, 3500, rows[0].SalesCount)
}

func TestConvertShortRowsPadEmptyCells(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "noon.xlsx")
	dbPath := filepath.Join(dir, "noon_data.db")

	writeWorkbook(t, xlsxPath, [][]interface{}{
		{"类目", "国家", "销量数字"},
		{"Toys"}, // trailing cells missing from the export
	})

	db, err := store.Open(dbPath, zap.NewNop())
	require.NoError(t, err)
	repo := store.NewListingRepository(db)

	_, err = NewConverter(repo, zap.NewNop()).Convert(context.Background(), xlsxPath, dbPath)
	require.NoError(t, err)

	raw, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, raw.Records, 1)
	assert.Equal(t, "", raw.Records[0]["国家"])
	assert.Equal(t, "", raw.Records[0]["销量数字"])
}

func TestConvertReplacesPreviousImport(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "noon.xlsx")
	dbPath := filepath.Join(dir, "noon_data.db")

	writeWorkbook(t, xlsxPath, [][]interface{}{
		{"类目"},
		{"Toys"},
		{"Beauty"},
	})

	db, err := store.Open(dbPath, zap.NewNop())
	require.NoError(t, err)
	repo := store.NewListingRepository(db)
	converter := NewConverter(repo, zap.NewNop())

	first, err := converter.Convert(context.Background(), xlsxPath, dbPath)
	require.NoError(t, err)
	second, err := converter.Convert(context.Background(), xlsxPath, dbPath)
	require.NoError(t, err)
	assert.NotEqual(t, first.ImportID, second.ImportID)

	// Only the latest import survives pruning.
	raw, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ImportID, raw.ImportID)
	assert.Len(t, raw.Records, 2)
}

func TestConvertMissingSource(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "noon_data.db"), zap.NewNop())
	require.NoError(t, err)

	_, err = NewConverter(store.NewListingRepository(db), zap.NewNop()).
		Convert(context.Background(), "does-not-exist.xlsx", "out.db")
	assert.Error(t, err)
}
