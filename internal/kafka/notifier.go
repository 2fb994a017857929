package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"checkout-service/internal/checkout"
)

// Notifier adapts the producer to the engine's publisher contract.
type Notifier struct {
	Producer *Producer
	Service  string
}

func (n *Notifier) PublishOrderPlaced(ctx context.Context, note checkout.Notification) error {
	n.Producer.Publish(
		checkout.PartitionKey(note.OrderID),
		MustMarshal(note),
		kafkago.Header{Key: "x-event-type", Value: []byte(checkout.EventOrderPlaced)},
		kafkago.Header{Key: "x-producer", Value: []byte(n.Service)},
	)
	return nil
}
