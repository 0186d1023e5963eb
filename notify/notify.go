package notify

import (
	"context"
	"encoding/json"
	"log"

	"solstice/rdx"
)

// Template kinds understood by the delivery worker. The core treats
// notifications as fire-and-forget: a failed publish is logged and the
// triggering request still succeeds.
const (
	KindPaymentUnderReview = "payment-under-review"
	KindPaymentVerified    = "payment-verified"
	KindPassesIssued       = "passes-issued"
	KindPaymentRejected    = "payment-rejected"
)

const channel = "notification-events"

// Event is the structured payload handed to the delivery collaborator.
type Event struct {
	Recipient     string         `json:"recipient"`
	Kind          string         `json:"kind"`
	ReservationID string         `json:"reservationId,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
}

// Emit publishes a notification event. Never returns an error to the
// caller; delivery failures must not roll back committed work.
func Emit(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notify: failed to marshal %s event: %v", ev.Kind, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("notify: failed to publish %s for %s: %v", ev.Kind, ev.Recipient, err)
	}
}

// StartWorker consumes notification events and hands them to delivery.
// Delivery here is a log line; the real mailer subscribes to the same
// channel out of process.
func StartWorker(ctx context.Context) {
	sub := rdx.Conn.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("notify: listening for notification events")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("notify: failed to parse event: %v", err)
				continue
			}
			log.Printf("notify: %s -> %s (reservation %s)", ev.Kind, ev.Recipient, ev.ReservationID)
		}
	}
}
