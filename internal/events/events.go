package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects
const (
	SubjectDatasetImported = "dataset.imported"
	SubjectDatasetReloaded = "dataset.reloaded"
)

// DatasetImportedEvent is published by the conversion utility after a
// spreadsheet has been written into the dataset store.
type DatasetImportedEvent struct {
	ImportID   uuid.UUID `json:"import_id"`
	SourceFile string    `json:"source_file"`
	RowCount   int       `json:"row_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// DatasetReloadedEvent is published by the server after it has swapped in a
// new snapshot.
type DatasetReloadedEvent struct {
	Version   string    `json:"version"`
	RowCount  int       `json:"row_count"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes dataset lifecycle events to NATS
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher creates a new NATS publisher
func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishDatasetImported announces a completed import. Failures are logged
// and swallowed; eventing is best effort.
func (p *Publisher) PublishDatasetImported(event *DatasetImportedEvent) {
	p.publish(SubjectDatasetImported, event)
}

// PublishDatasetReloaded announces a snapshot swap
func (p *Publisher) PublishDatasetReloaded(event *DatasetReloadedEvent) {
	p.publish(SubjectDatasetReloaded, event)
}

func (p *Publisher) publish(subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Failed to marshal event", zap.Error(err), zap.String("subject", subject))
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Warn("Failed to publish event", zap.Error(err), zap.String("subject", subject))
		return
	}
	p.logger.Debug("Published event", zap.String("subject", subject))
}
