package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Topic all reservation events are published to.
const Topic = "reservation.events"

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

type event struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Source string          `json:"source"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

type reservationPayload struct {
	ReservationID  string `json:"reservationId"`
	SpaceID        string `json:"spaceId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus,omitempty"`
}

// KafkaNotifier publishes reservation events to Kafka. Publish failures
// are logged and swallowed so the originating request still succeeds.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaNotifier(brokers []string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

func (n *KafkaNotifier) ReservationCreated(ctx context.Context, rsv *reservation.Reservation) {
	n.publish(ctx, EventReservationCreated, rsv, "")
}

func (n *KafkaNotifier) ReservationStatusChanged(ctx context.Context, rsv *reservation.Reservation, previous reservation.Status) {
	n.publish(ctx, EventReservationStatusChanged, rsv, previous.String())
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType string, rsv *reservation.Reservation, previous string) {
	payload, err := json.Marshal(reservationPayload{
		ReservationID:  rsv.ID().String(),
		SpaceID:        rsv.SpaceID().String(),
		Name:           rsv.Name(),
		Email:          rsv.Email(),
		Date:           rsv.Date().Format("2006-01-02"),
		Status:         rsv.Status().String(),
		PreviousStatus: previous,
	})
	if err != nil {
		n.log.Error("failed to encode event payload", zap.Error(err))
		return
	}

	value, err := json.Marshal(event{
		ID:     uuid.NewString(),
		Type:   eventType,
		Source: "cmcespace-api",
		Time:   time.Now().UTC(),
		Data:   payload,
	})
	if err != nil {
		n.log.Error("failed to encode event", zap.Error(err))
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rsv.SpaceID().String()),
		Value: value,
	})
	if err != nil {
		n.log.Error("failed to publish event",
			zap.String("type", eventType),
			zap.String("reservation_id", rsv.ID().String()),
			zap.Error(err),
		)
	}
}
