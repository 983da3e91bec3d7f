package mq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExportQueue is the topic that playlist-export requests are published on.
const ExportQueue = "export:playlist"

// ExportRequest is the message body for a playlist-export job.
type ExportRequest struct {
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

// Publisher owns a channel on a publishing connection. amqp091-go channels
// serialize their frame writes, so one Publisher may be shared across
// request handlers.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := declareQueue(ch, ExportQueue); err != nil {
		ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) PublishExport(ctx context.Context, playlistID, targetEmail string) error {
	body, err := json.Marshal(ExportRequest{
		PlaylistID:  playlistID,
		TargetEmail: targetEmail,
	})
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, "", ExportQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Consume declares the export queue and returns its delivery stream.
// Deliveries are not auto-acked; the consumer acks after handling.
func Consume(conn *amqp.Connection, consumerTag string) (<-chan amqp.Delivery, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := declareQueue(ch, ExportQueue); err != nil {
		ch.Close()
		return nil, err
	}
	return ch.Consume(ExportQueue, consumerTag, false, false, false, false, nil)
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(name, true, false, false, false, nil)
}
