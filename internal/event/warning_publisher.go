package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"protection-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CriticalWarningQueue receives critical warning events for the external
// notification layer.
const CriticalWarningQueue = "critical_warning_events"

// WarningEvent is the queue payload for one critical warning.
type WarningEvent struct {
	WarningID   string                 `json:"warning_id"`
	Category    models.WarningCategory `json:"category"`
	Severity    models.WarningSeverity `json:"severity"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	FieldID     *int64                 `json:"field_id,omitempty"`
	ProductID   *int64                 `json:"product_id,omitempty"`
	TreatmentID *int64                 `json:"treatment_id,omitempty"`
	OccurredAt  int64                  `json:"occurred_at"`
}

// WarningPublisher publishes critical warnings to RabbitMQ.
type WarningPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
}

func NewWarningPublisher(conn *RabbitMQConnection) *WarningPublisher {
	return &WarningPublisher{conn: conn}
}

// PublishWarning declares the queue and pushes one warning event.
func (p *WarningPublisher) PublishWarning(ctx context.Context, item models.WarningItem) error {
	_, err := p.conn.Channel.QueueDeclare(
		CriticalWarningQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	event := WarningEvent{
		WarningID:   item.ID,
		Category:    item.Category,
		Severity:    item.Severity,
		Title:       item.Title,
		Message:     item.Message,
		FieldID:     item.RelatedFieldID,
		ProductID:   item.RelatedProductID,
		TreatmentID: item.RelatedTreatmentID,
		OccurredAt:  time.Now().Unix(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal warning event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(ctx,
		"",                   // default exchange
		CriticalWarningQueue, // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish warning event: %w", err)
	}

	p.messagesPublished++
	slog.Info("Published critical warning", "warning_id", item.ID, "category", item.Category)
	return nil
}
