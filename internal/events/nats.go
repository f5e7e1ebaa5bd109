// Package events publishes trip lifecycle events to NATS for downstream
// consumers (passenger information, reporting). The publisher is optional:
// when no NATS URL is configured the server simply runs without one.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// PublisherMetrics counts publish outcomes and tracks connection state.
// Implemented by the prometheus collector; nil disables counting.
type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// NATSPublisher emits JSON events on trip lifecycle subjects.
type NATSPublisher struct {
	nc      *nats.Conn
	log     *slog.Logger
	metrics PublisherMetrics
}

// NewNATSPublisher connects to the NATS server at url. Reconnects are
// handled by the client library; the handlers keep the connected gauge and
// the log in sync.
func NewNATSPublisher(url string, log *slog.Logger, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("tce-serv"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Info("nats connection closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, log: log, metrics: m}, nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

// TripCreatedEvent is the payload published when a new trip is persisted.
type TripCreatedEvent struct {
	TripID      string    `json:"tripId"`
	DirectionID string    `json:"directionId"`
	LineID      string    `json:"lineId,omitempty"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublishTripCreated implements service.TripPublisher. Publishing is best
// effort: a failure is logged and counted, never surfaced to the request.
func (p *NATSPublisher) PublishTripCreated(ctx context.Context, trip domain.Trip) {
	evt := TripCreatedEvent{
		TripID:      trip.ID.String(),
		DirectionID: trip.DirectionID.String(),
		Date:        trip.ServiceDate.String(),
		StartTime:   trip.StartTime.String(),
		EndTime:     trip.EndTime.String(),
		Status:      string(trip.Status),
		CreatedAt:   trip.CreatedAt,
	}
	if trip.LineID != nil {
		evt.LineID = trip.LineID.String()
	}

	subject := "trips.created." + subjectToken(trip.DirectionID.String())
	b, err := json.Marshal(evt)
	if err != nil {
		p.log.ErrorContext(ctx, "marshal trip event", "error", err)
		return
	}

	if err := p.nc.Publish(subject, b); err != nil {
		if p.metrics != nil {
			p.metrics.NATSPublishErrInc()
		}
		p.log.WarnContext(ctx, "nats publish failed", "subject", subject, "error", err)
		return
	}
	if p.metrics != nil {
		p.metrics.NATSPublishedInc()
	}
}

// subjectToken sanitizes a value for use as a NATS subject token.
// Tokens cannot contain spaces, '>', '*', '/', or '.'.
func subjectToken(s string) string {
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(strings.TrimSpace(s))
	if s == "" {
		return "_"
	}
	return s
}
