package daemons

import (
	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/workers"
)

// EventListener binds the eligibility queue to the member events exchange and
// feeds every liquidation event to the LiquidationEventsWorker. Messages are
// acked only after the worker processed them.
type EventListener struct {
	Running bool
	Worker  *workers.LiquidationEventsWorker
}

func NewEventListener() *EventListener {
	return &EventListener{
		Running: true,
		Worker:  workers.NewLiquidationEventsWorker(),
	}
}

func (l *EventListener) Stop() {
	l.Running = false
}

func (l *EventListener) Start() {
	channel := mq_client.GetChannel()

	binding_queue := mq_client.GetBindingQueue("eligibility")
	binding_exchange_id := mq_client.GetBindingExchangeId("eligibility")
	exchange_name, exchange_kind := mq_client.GetExchange(binding_exchange_id)
	routing_key := mq_client.GetRoutingKey("eligibility")

	if err := channel.ExchangeDeclare(exchange_name, exchange_kind, binding_queue.Durable, false, false, false, nil); err != nil {
		config.Logger.Errorf("Exchange Declare: %v", err)
		return
	}
	if _, err := channel.QueueDeclare(binding_queue.Name, binding_queue.Durable, false, false, false, nil); err != nil {
		config.Logger.Errorf("Queue Declare: %v", err)
		return
	}
	if err := channel.QueueBind(binding_queue.Name, routing_key, exchange_name, false, nil); err != nil {
		config.Logger.Errorf("Queue Bind: %v", err)
		return
	}

	deliveries, err := channel.Consume(binding_queue.Name, "", false, false, false, false, nil)
	if err != nil {
		config.Logger.Errorf("Queue Consume: %v", err)
		return
	}

	for delivery := range deliveries {
		if !l.Running {
			delivery.Nack(false, true)
			return
		}

		if err := l.Worker.Process(delivery.Body); err == nil {
			delivery.Ack(false)
		} else {
			config.Logger.Errorf("Worker error: %v", err.Error())
			delivery.Nack(false, false)
		}
	}
}
