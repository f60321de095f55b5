package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subscriber handles NATS event subscriptions
type Subscriber struct {
	nc      *nats.Conn
	logger  *zap.Logger
	handler EventHandler
	subs    []*nats.Subscription
}

// EventHandler defines the interface for handling dataset events
type EventHandler interface {
	HandleDatasetImported(event *DatasetImportedEvent) error
}

// NewSubscriber creates a new NATS subscriber
func NewSubscriber(nc *nats.Conn, handler EventHandler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:      nc,
		logger:  logger,
		handler: handler,
		subs:    make([]*nats.Subscription, 0),
	}
}

// Start subscribes to all relevant events
func (s *Subscriber) Start() error {
	sub, err := s.nc.Subscribe(SubjectDatasetImported, s.handleDatasetImported)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	s.logger.Info("Subscribed to event", zap.String("subject", SubjectDatasetImported))
	return nil
}

// Stop unsubscribes from all events
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = s.subs[:0]
}

func (s *Subscriber) handleDatasetImported(msg *nats.Msg) {
	var event DatasetImportedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal dataset imported event", zap.Error(err))
		return
	}

	s.logger.Info("Dataset imported event received",
		zap.String("import_id", event.ImportID.String()),
		zap.Int("row_count", event.RowCount),
	)

	if err := s.handler.HandleDatasetImported(&event); err != nil {
		s.logger.Error("Failed to handle dataset imported event", zap.Error(err))
	}
}
