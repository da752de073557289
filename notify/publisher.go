// Package notify publishes report lifecycle events to a message
// queue. Publishing is strictly best-effort: a failure is logged and
// never fails the request that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"cityreport-be/models"
)

const publishTimeout = 5 * time.Second

// Event is the wire shape pushed onto the queue.
type Event struct {
	Kind      string              `json:"kind"`
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Type      models.ReportType   `json:"type"`
	Status    models.ReportStatus `json:"status"`
	Timestamp int64               `json:"timestamp"`
}

// Publisher wraps an AMQP channel and a durable queue. A nil
// *Publisher is valid and publishes nothing, so callers never need to
// branch on whether eventing is configured.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func Connect(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.ch.Close()
	p.conn.Close()
}

func (p *Publisher) publish(event Event) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("notify: failed to encode event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Printf("notify: failed to publish %s event for report %s: %v", event.Kind, event.ID, err)
	}
}

func (p *Publisher) ReportCreated(rep *models.Report) {
	p.publish(Event{
		Kind:      "report.created",
		ID:        rep.ID,
		Title:     rep.Title,
		Type:      rep.Type,
		Status:    rep.Status,
		Timestamp: rep.Timestamp,
	})
}

func (p *Publisher) StatusChanged(rep *models.Report) {
	p.publish(Event{
		Kind:      "report.status_changed",
		ID:        rep.ID,
		Title:     rep.Title,
		Type:      rep.Type,
		Status:    rep.Status,
		Timestamp: rep.Timestamp,
	})
}
