package mq_client

import (
	"github.com/streadway/amqp"
)

// EventsExchange carries every member-facing event; routing key is
// kind.member_code.event (e.g. private.COOP-000042.liquidation).
const EventsExchange = "coopex.events.member"

var AMQPChannel *amqp.Channel
var Connection *amqp.Connection

func Connect() error {
	cn, err := CreateAMQP()
	if err != nil {
		return err
	}

	Connection = cn

	return nil
}

func GetChannel() *amqp.Channel {
	if AMQPChannel != nil {
		return AMQPChannel
	}

	channel, _ := Connection.Channel()
	AMQPChannel = channel

	return AMQPChannel
}

// EnqueueEvent publishes a member event. A nil connection is not an error so
// the models stay usable when no broker is configured.
func EnqueueEvent(kind string, id string, event string, payload []byte) error {
	if Connection == nil {
		return nil
	}

	routing_key := kind + "." + id + "." + event

	GetChannel().ExchangeDeclare(EventsExchange, "topic", false, false, false, false, nil)

	return GetChannel().Publish(
		EventsExchange,
		routing_key,
		false,
		false,
		amqp.Publishing{
			Headers:      amqp.Table{},
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			Priority:     0,
		},
	)
}
