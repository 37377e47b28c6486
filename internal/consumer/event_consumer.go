package consumer

import (
	"encoding/json"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Dispatcher receives decoded reservation events.
type Dispatcher interface {
	Dispatch(evt dto.ReservationEvent) error
}

// ReservationEventConsumer forwards broker deliveries to the realtime hub.
type ReservationEventConsumer struct {
	dispatcher Dispatcher
}

func NewReservationEventConsumer(dispatcher Dispatcher) *ReservationEventConsumer {
	return &ReservationEventConsumer{dispatcher: dispatcher}
}

// Start handles msgs in a goroutine until the channel closes. done is closed
// when it stops.
func (rc *ReservationEventConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			rc.handleMessage(msg)
		}
		logger.Get().Info("reservation event channel closed, stopping consumer")
	}()
	return done
}

func (rc *ReservationEventConsumer) handleMessage(msg amqp.Delivery) {
	log := logger.Get().With(zap.String("routing_key", msg.RoutingKey))

	var evt dto.ReservationEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		log.Warn("failed to decode reservation event", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	// Delivery to websockets is best-effort; a full queue is not worth a requeue.
	if err := rc.dispatcher.Dispatch(evt); err != nil {
		log.Warn("failed to dispatch reservation event", zap.String("event_id", evt.EventID), zap.Error(err))
	}
	_ = msg.Ack(false)
}
