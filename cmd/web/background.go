package main

import (
	"context"
	"time"

	"alhyra_organics/internal/notify"

	"go.uber.org/zap"
)

const (
	notifyQueueSize = 100
	publishTimeout  = 10 * time.Second
)

// enqueue hands m to the notification worker without blocking the request.
// When the queue is full the message is dropped; the caller still has it.
func (app *application) enqueue(m notify.Message) {
	select {
	case app.notifyQueue <- m:
	default:
		app.logger.Warn("notification queue full, dropping message",
			zap.String("kind", string(m.Kind)),
			zap.String("order_id", m.OrderID),
		)
	}
}

// notificationWorker publishes queued messages until the queue is closed.
func (app *application) notificationWorker(done chan<- struct{}) {
	defer close(done)
	for m := range app.notifyQueue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := app.publisher.Publish(ctx, m); err != nil {
			app.logger.Error("failed to publish notification",
				zap.String("kind", string(m.Kind)),
				zap.String("order_id", m.OrderID),
				zap.Error(err),
			)
		}
		cancel()
	}
}
