package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/souk-intel/service-bestsellers/internal/models"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

var ErrEmptySheet = errors.New("source sheet has no header row")

// Converter turns a spreadsheet export into dataset store records. It is a
// pure format change: cell text is stored exactly as exported, and all
// parsing stays in the loader.
type Converter struct {
	repo   *store.ListingRepository
	logger *zap.Logger
}

// Result reports one completed conversion
type Result struct {
	ImportID    uuid.UUID `json:"import_id"`
	SheetName   string    `json:"sheet_name"`
	Columns     []string  `json:"columns"`
	RowCount    int       `json:"row_count"`
	SourceBytes int64     `json:"source_bytes"`
	OutputBytes int64     `json:"output_bytes"`
}

// ShrinkRatio is the relative size reduction of output vs source, 0 when
// the source size is unknown.
func (r *Result) ShrinkRatio() float64 {
	if r.SourceBytes <= 0 {
		return 0
	}
	return 1 - float64(r.OutputBytes)/float64(r.SourceBytes)
}

// NewConverter creates a new Converter
func NewConverter(repo *store.ListingRepository, logger *zap.Logger) *Converter {
	return &Converter{repo: repo, logger: logger}
}

// Convert reads the first sheet of the workbook at sourceFile and writes
// its rows into the dataset store, then prunes older imports. outputFile is
// only consulted for the size report.
func (c *Converter) Convert(ctx context.Context, sourceFile, outputFile string) (*Result, error) {
	f, err := excelize.OpenFile(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open source workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	sheetRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(sheetRows) == 0 {
		return nil, ErrEmptySheet
	}

	headers := sheetRows[0]
	columnsJSON, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode header row: %w", err)
	}

	rows := make([]models.ListingRow, 0, len(sheetRows)-1)
	for i, sheetRow := range sheetRows[1:] {
		cells := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(sheetRow) {
				cells[header] = sheetRow[j]
			} else {
				cells[header] = ""
			}
		}

		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
		rows = append(rows, models.ListingRow{
			RowNo: i + 1,
			Cells: datatypes.JSON(cellsJSON),
		})
	}

	imp := &models.ListingImport{
		SourceFile: sourceFile,
		SheetName:  sheet,
		Columns:    datatypes.JSON(columnsJSON),
		RowCount:   len(rows),
	}
	if err := c.repo.CreateImport(ctx, imp, rows); err != nil {
		return nil, err
	}
	if err := c.repo.PruneOlderImports(ctx, imp.ID); err != nil {
		c.logger.Warn("Failed to prune older imports", zap.Error(err))
	}

	result := &Result{
		ImportID:    imp.ID,
		SheetName:   sheet,
		Columns:     headers,
		RowCount:    len(rows),
		SourceBytes: fileSize(sourceFile),
		OutputBytes: fileSize(outputFile),
	}

	c.logger.Info("Conversion complete",
		zap.String("import_id", imp.ID.String()),
		zap.String("sheet", sheet),
		zap.Int("rows", result.RowCount),
		zap.Int64("source_bytes", result.SourceBytes),
		zap.Int64("output_bytes", result.OutputBytes),
	)
	return result, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
