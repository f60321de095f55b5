package dataset

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

// RawDataset is one imported spreadsheet as stored by the conversion
// utility: the preserved header list plus untouched cell maps in row order.
type RawDataset struct {
	ImportID   uuid.UUID
	SourceFile string
	ImportedAt time.Time
	Columns    []string
	Records    []map[string]string
}

// Source supplies the latest raw dataset from persistent storage.
type Source interface {
	Fetch(ctx context.Context) (*RawDataset, error)
}

// Snapshot is the normalized, immutable row set served to the pipeline.
type Snapshot struct {
	Version    string
	SourceFile string
	ImportedAt time.Time
	Rows       []models.ProductRow
}

// Loader owns the process-wide dataset snapshot. The snapshot is populated
// lazily on first use and is read-only afterwards; Reload is the single
// writer and replaces it atomically.
type Loader struct {
	source Source
	logger *zap.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewLoader creates a Loader over the given source
func NewLoader(source Source, logger *zap.Logger) *Loader {
	return &Loader{source: source, logger: logger}
}

// Snapshot returns the loaded dataset, loading it on first call. Repeated
// calls return the same in-memory snapshot without touching storage.
func (l *Loader) Snapshot(ctx context.Context) (*Snapshot, error) {
	l.mu.RLock()
	snap := l.snap
	l.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return l.Reload(ctx)
}

// Reload fetches and normalizes the latest import, replacing the held
// snapshot. Concurrent readers keep seeing the previous snapshot until the
// swap completes.
func (l *Loader) Reload(ctx context.Context) (*Snapshot, error) {
	raw, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	rows, dropped, err := BuildRows(raw)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		l.logger.Warn("Dropped uncategorized rows", zap.Int("dropped", dropped))
	}

	snap := &Snapshot{
		Version:    raw.ImportID.String(),
		SourceFile: raw.SourceFile,
		ImportedAt: raw.ImportedAt,
		Rows:       rows,
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.logger.Info("Dataset snapshot loaded",
		zap.String("version", snap.Version),
		zap.Int("rows", len(snap.Rows)),
		zap.String("source_file", snap.SourceFile),
	)
	return snap, nil
}

// BuildRows normalizes raw cell maps into ProductRows: category alias
// resolution, region defaulting, and numeric coercion. Rows with an empty
// category cell are dropped and counted; every surviving numeric field is
// non-negative.
func BuildRows(raw *RawDataset) ([]models.ProductRow, int, error) {
	categoryCol, err := resolveCategoryColumn(raw.Columns)
	if err != nil {
		return nil, 0, err
	}
	hasRegion := hasColumn(raw.Columns, ColRegion)

	rows := make([]models.ProductRow, 0, len(raw.Records))
	dropped := 0
	for _, cells := range raw.Records {
		category := strings.TrimSpace(cells[categoryCol])
		if category == "" {
			dropped++
			continue
		}

		region := models.DefaultRegionValue
		if hasRegion {
			if r := strings.TrimSpace(cells[ColRegion]); r != "" {
				region = r
			}
		}

		rows = append(rows, models.ProductRow{
			Category:    category,
			Region:      region,
			Rank:        CoerceInt(cells[ColRank]),
			Name:        strings.TrimSpace(cells[ColName]),
			ProductURL:  strings.TrimSpace(cells[ColProductURL]),
			ImageURL:    strings.TrimSpace(cells[ColImageURL]),
			SalesText:   strings.TrimSpace(cells[ColSalesText]),
			Price:       CoerceFloat(cells[ColPrice]),
			Rating:      CoerceFloat(cells[ColRating]),
			ReviewCount: CoerceInt(cells[ColReviews]),
			SalesCount:  CoerceInt(cells[ColSales]),
		})
	}

	return rows, dropped, nil
}
