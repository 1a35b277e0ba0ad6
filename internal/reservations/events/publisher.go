// Package events publishes reservation lifecycle events to Kafka so
// downstream consumers (notifications, reporting) can react without
// polling the database. Publishing is best effort and never fails a
// guest-facing request.
package events

import (
	"context"

	"refugio/pkg/kafka"
	"refugio/pkg/logger"
	"refugio/pkg/model"
)

const (
	TopicReservationCreated       = "reservation.created"
	TopicReservationStatusChanged = "reservation.status_changed"

	EventTypeCreated       = "reservation.created"
	EventTypeStatusChanged = "reservation.status_changed"

	schemaVersion = "1"
	source        = "refugio"
)

type Publisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
	ReservationStatusChanged(ctx context.Context, reservation *model.Reservation, previous model.Status)
	Close() error
}

// StatusChangedPayload is the wire body of a status change event.
type StatusChangedPayload struct {
	Reservation    *model.Reservation `json:"reservation"`
	PreviousStatus model.Status       `json:"previous_status"`
}

type kafkaPublisher struct {
	created       *kafka.Producer
	statusChanged *kafka.Producer
	log           *logger.Logger
}

func NewKafkaPublisher(created, statusChanged *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		created:       created,
		statusChanged: statusChanged,
		log:           log,
	}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	msg := kafka.NewMessage().
		WithKey(reservation.CabinID).
		WithValue(reservation).
		WithEventType(EventTypeCreated).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		Build()

	if err := p.created.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation created event",
			"reservation_id", reservation.ID,
			"cabin_id", reservation.CabinID,
			"error", err,
		)
		return
	}

	p.log.Debug("Published reservation created event",
		"reservation_id", reservation.ID,
		"event_id", msg.GetEventID(),
	)
}

func (p *kafkaPublisher) ReservationStatusChanged(ctx context.Context, reservation *model.Reservation, previous model.Status) {
	msg := kafka.NewMessage().
		WithKey(reservation.CabinID).
		WithValue(StatusChangedPayload{
			Reservation:    reservation,
			PreviousStatus: previous,
		}).
		WithEventType(EventTypeStatusChanged).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		Build()

	if err := p.statusChanged.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation status changed event",
			"reservation_id", reservation.ID,
			"from", previous,
			"to", reservation.Status,
			"error", err,
		)
		return
	}

	p.log.Debug("Published reservation status changed event",
		"reservation_id", reservation.ID,
		"event_id", msg.GetEventID(),
	)
}

func (p *kafkaPublisher) Close() error {
	if err := p.created.Close(); err != nil {
		return err
	}
	return p.statusChanged.Close()
}

// NoopPublisher is used when events are disabled by configuration.
type NoopPublisher struct{}

func (NoopPublisher) ReservationCreated(context.Context, *model.Reservation) {}

func (NoopPublisher) ReservationStatusChanged(context.Context, *model.Reservation, model.Status) {}

func (NoopPublisher) Close() error { return nil }
