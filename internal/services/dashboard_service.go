package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/analytics"
	"github.com/souk-intel/service-bestsellers/internal/dataset"
	"github.com/souk-intel/service-bestsellers/internal/events"
	"github.com/souk-intel/service-bestsellers/internal/models"
)

var ErrUnknownRegion = errors.New("unknown region")

// DashboardService answers the dashboard queries: region choices, the
// filtered category board, and per-category product listings. All queries
// run synchronously over the loader's in-memory snapshot.
type DashboardService struct {
	loader *dataset.Loader
	cache  *SummaryCacheService
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(loader *dataset.Loader, cache *SummaryCacheService, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		loader: loader,
		cache:  cache,
		logger: logger,
	}
}

// CategoryQuery selects a region and the thresholds applied to its
// aggregated categories.
type CategoryQuery struct {
	RegionLabel string
	Filter      models.CategoryFilter
}

// BoardTotals are the headline metrics over the qualifying categories.
type BoardTotals struct {
	CategoryCount int `json:"category_count"`
	ProductCount  int `json:"product_count"`
	TotalSales    int `json:"total_sales"`
	TotalReviews  int `json:"total_reviews"`
}

// CategoryBoard is the category matrix served to the dashboard.
type CategoryBoard struct {
	Region     models.RegionChoice      `json:"region"`
	Bounds     models.FilterBounds      `json:"bounds"`
	Totals     BoardTotals              `json:"totals"`
	Categories []models.CategorySummary `json:"categories"`
}

// ProductQuery selects one category's product listing.
type ProductQuery struct {
	RegionLabel string
	Category    string
	Filter      models.CategoryFilter
	Session     *models.Session
}

// ProductView is one detail row with its presentation extras.
type ProductView struct {
	models.ProductRow
	Heat            float64 `json:"heat"`
	DisplayImageURL string  `json:"display_image_url"`
}

// ProductListing is the detail block for the resolved category.
type ProductListing struct {
	Region   models.RegionChoice `json:"region"`
	Category string              `json:"category"`
	FellBack bool                `json:"fell_back"`
	Empty    bool                `json:"empty"`
	Products []ProductView       `json:"products"`
}

// Regions returns the region choices present in the loaded data
func (s *DashboardService) Regions(ctx context.Context) ([]models.RegionChoice, error) {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return models.AvailableRegions(snap.Rows), nil
}

// CategoryBoard aggregates, filters, and orders the categories of the
// selected region.
func (s *DashboardService) CategoryBoard(ctx context.Context, q CategoryQuery) (*CategoryBoard, error) {
	snap, region, regionRows, err := s.regionRows(ctx, q.RegionLabel)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summaries(ctx, snap, region, regionRows)
	if err != nil {
		return nil, err
	}

	bounds := analytics.Bounds(summaries)
	qualifying := analytics.FilterAndSort(summaries, q.Filter)

	totals := BoardTotals{CategoryCount: len(qualifying)}
	for _, c := range qualifying {
		totals.ProductCount += c.ProductCount
		totals.TotalSales += c.TotalSales
		totals.TotalReviews += c.TotalReviews
	}

	return &CategoryBoard{
		Region:     region,
		Bounds:     bounds,
		Totals:     totals,
		Categories: qualifying,
	}, nil
}

// Products returns the detail listing for the requested category. A
// requested category that no longer qualifies falls back to the first
// qualifying one; an empty qualifying set yields an explicit empty state.
func (s *DashboardService) Products(ctx context.Context, q ProductQuery) (*ProductListing, error) {
	snap, region, regionRows, err := s.regionRows(ctx, q.RegionLabel)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summaries(ctx, snap, region, regionRows)
	if err != nil {
		return nil, err
	}
	qualifying := analytics.FilterAndSort(summaries, q.Filter)

	category, fellBack := resolveCategory(q.Category, qualifying)
	if category == "" {
		return &ProductListing{Region: region, Empty: true, Products: []ProductView{}}, nil
	}

	detail := analytics.Detail(regionRows, category)
	maxSales := analytics.MaxSales(regionRows)

	var refreshID int64
	if q.Session != nil {
		refreshID = q.Session.RefreshToken
	}

	products := make([]ProductView, 0, len(detail))
	for _, row := range detail {
		products = append(products, ProductView{
			ProductRow:      row,
			Heat:            analytics.Heat(row.SalesCount, maxSales),
			DisplayImageURL: refreshImageURL(row.ImageURL, refreshID),
		})
	}

	return &ProductListing{
		Region:   region,
		Category: category,
		FellBack: fellBack,
		Products: products,
	}, nil
}

// DatasetStatus reports the currently served snapshot
func (s *DashboardService) DatasetStatus(ctx context.Context) (*dataset.Snapshot, error) {
	return s.loader.Snapshot(ctx)
}

// Reload replaces the dataset snapshot and drops every cached summary
func (s *DashboardService) Reload(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.loader.Reload(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate summary cache after reload", zap.Error(err))
	}
	return snap, nil
}

// HandleDatasetImported reloads the snapshot when the conversion utility
// announces a new import. It implements events.EventHandler.
func (s *DashboardService) HandleDatasetImported(event *events.DatasetImportedEvent) error {
	snap, err := s.Reload(context.Background())
	if err != nil {
		return err
	}
	s.logger.Info("Snapshot refreshed from import event",
		zap.String("version", snap.Version),
		zap.Int("rows", len(snap.Rows)),
	)
	return nil
}

// regionRows resolves the region label and filters the snapshot to it. An
// empty label resolves to the default offered choice; a label outside the
// fixed table is rejected. A valid region with no rows is served as-is.
func (s *DashboardService) regionRows(ctx context.Context, label string) (*dataset.Snapshot, models.RegionChoice, []models.ProductRow, error) {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, models.RegionChoice{}, nil, err
	}

	var region models.RegionChoice
	if label == "" {
		offered := models.AvailableRegions(snap.Rows)
		for _, rc := range offered {
			if rc.Default {
				region = rc
				break
			}
		}
		if region.Label == "" {
			// No data at all; serve the table default over zero rows.
			region, _ = models.RegionByLabel(models.DefaultRegionLabel)
		}
	} else {
		rc, ok := models.RegionByLabel(label)
		if !ok {
			return nil, models.RegionChoice{}, nil, fmt.Errorf("%w: %q", ErrUnknownRegion, label)
		}
		region = rc
	}

	return snap, region, models.FilterByRegion(snap.Rows, region.Value), nil
}

// summaries serves the aggregation for one region, cache-first
func (s *DashboardService) summaries(ctx context.Context, snap *dataset.Snapshot, region models.RegionChoice, regionRows []models.ProductRow) ([]models.CategorySummary, error) {
	if cached, _ := s.cache.Get(ctx, snap.Version, region.Value); cached != nil {
		return cached, nil
	}

	summaries := analytics.Aggregate(regionRows)
	if err := s.cache.Set(ctx, snap.Version, region.Value, summaries); err != nil {
		s.logger.Debug("summary cache set failed", zap.Error(err))
	}
	return summaries, nil
}

// resolveCategory applies the fallback rule for the detail view
func resolveCategory(requested string, qualifying []models.CategorySummary) (string, bool) {
	for _, c := range qualifying {
		if c.Category == requested {
			return requested, false
		}
	}
	if len(qualifying) > 0 {
		return qualifying[0].Category, requested != ""
	}
	return "", false
}

// refreshImageURL appends the session refresh token so browsers refetch
// images after a new selection. Non-HTTP values pass through untouched.
func refreshImageURL(raw string, refreshID int64) string {
	if !strings.HasPrefix(raw, "http") {
		return raw
	}
	separator := "?"
	if strings.Contains(raw, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%sv=%d", raw, separator, refreshID)
}
