package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListingImport records one conversion run of a source spreadsheet into the
// dataset store. Columns preserves the sheet's header row in source order.
type ListingImport struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SourceFile string         `gorm:"not null" json:"source_file"`
	SheetName  string         `gorm:"not null" json:"sheet_name"`
	Columns    datatypes.JSON `gorm:"not null" json:"columns"`
	RowCount   int            `gorm:"not null" json:"row_count"`
	CreatedAt  time.Time      `json:"created_at"`
}

// BeforeCreate generates the import ID
func (i *ListingImport) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ListingRow is one raw spreadsheet row, stored exactly as exported. Cells
// maps source column header to the cell text; no values are transformed at
// import time.
type ListingRow struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ImportID uuid.UUID      `gorm:"type:uuid;index;not null" json:"import_id"`
	RowNo    int            `gorm:"not null" json:"row_no"`
	Cells    datatypes.JSON `gorm:"not null" json:"cells"`
}

// DatasetStatus summarizes the currently served dataset for the admin API.
type DatasetStatus struct {
	ImportID   uuid.UUID `json:"import_id"`
	SourceFile string    `json:"source_file"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}
