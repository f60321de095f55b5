package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souk-intel/service-bestsellers/internal/dataset"
	"github.com/souk-intel/service-bestsellers/internal/models"
)

// ErrNoImport is returned when the dataset store holds no completed import.
var ErrNoImport = errors.New("no dataset import found")

const insertBatchSize = 500

// ListingRepository persists raw spreadsheet rows and their import records
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// CreateImport stores an import record and all of its rows in one
// transaction. Cells are stored untouched; the loader owns all parsing.
func (r *ListingRepository) CreateImport(ctx context.Context, imp *models.ListingImport, rows []models.ListingRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(imp).Error; err != nil {
			return fmt.Errorf("failed to create import record: %w", err)
		}

		for i := range rows {
			rows[i].ImportID = imp.ID
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert listing rows: %w", err)
			}
		}
		return nil
	})
}

// LatestImport returns the most recent import record
func (r *ListingRepository) LatestImport(ctx context.Context) (*models.ListingImport, error) {
	var imp models.ListingImport
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&imp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest import: %w", err)
	}
	return &imp, nil
}

// RowsForImport returns the raw cell maps of an import in source row order
func (r *ListingRepository) RowsForImport(ctx context.Context, importID uuid.UUID) ([]map[string]string, error) {
	var rows []models.ListingRow
	err := r.db.WithContext(ctx).
		Where("import_id = ?", importID).
		Order("row_no ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query listing rows: %w", err)
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		cells := make(map[string]string)
		if err := json.Unmarshal(row.Cells, &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", row.RowNo, err)
		}
		records = append(records, cells)
	}
	return records, nil
}

// ColumnsForImport decodes the header list preserved at import time
func (r *ListingRepository) ColumnsForImport(imp *models.ListingImport) ([]string, error) {
	var columns []string
	if err := json.Unmarshal(imp.Columns, &columns); err != nil {
		return nil, fmt.Errorf("failed to decode import columns: %w", err)
	}
	return columns, nil
}

// Fetch assembles the latest import into a raw dataset for the loader. It
// implements dataset.Source.
func (r *ListingRepository) Fetch(ctx context.Context) (*dataset.RawDataset, error) {
	imp, err := r.LatestImport(ctx)
	if err != nil {
		return nil, err
	}

	columns, err := r.ColumnsForImport(imp)
	if err != nil {
		return nil, err
	}

	records, err := r.RowsForImport(ctx, imp.ID)
	if err != nil {
		return nil, err
	}

	return &dataset.RawDataset{
		ImportID:   imp.ID,
		SourceFile: imp.SourceFile,
		ImportedAt: imp.CreatedAt,
		Columns:    columns,
		Records:    records,
	}, nil
}

// PruneOlderImports deletes every import except the given one, along with
// its rows. Called after a successful conversion to keep the file small.
func (r *ListingRepository) PruneOlderImports(ctx context.Context, keep uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("import_id <> ?", keep).Delete(&models.ListingRow{}).Error; err != nil {
			return fmt.Errorf("failed to prune listing rows: %w", err)
		}
		if err := tx.Where("id <> ?", keep).Delete(&models.ListingImport{}).Error; err != nil {
			return fmt.Errorf("failed to prune imports: %w", err)
		}
		return nil
	})
}
