package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Publisher публикует события сервиса в обменник уведомлений.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishInvite отправляет событие о выпущенном коде приглашения.
func (p *Publisher) PublishInvite(event models.InviteEvent) error {
	return PublishMessage(p.ch, Exchange, InviteRoutingKey, event)
}
