package mq_client

import (
	"io/ioutil"
	"os"

	"github.com/streadway/amqp"
	"gopkg.in/yaml.v2"
)

var AMQPCfg *MQClientConfig

func CreateAMQP() (*amqp.Connection, error) {
	if err := LoadConfig(); err != nil {
		return nil, err
	}

	rabbitmq_username := os.Getenv("RABBITMQ_USERNAME")
	rabbitmq_password := os.Getenv("RABBITMQ_PASSWORD")
	rabbitmq_host := os.Getenv("RABBITMQ_HOST")
	rabbitmq_port := os.Getenv("RABBITMQ_PORT")

	connection, err := amqp.Dial("amqp://" + rabbitmq_username + ":" + rabbitmq_password + "@" + rabbitmq_host + ":" + rabbitmq_port)
	if err != nil {
		return nil, err
	}

	return connection, nil
}

func LoadConfig() error {
	path := os.Getenv("COOP_AMQP_CONFIG")
	if len(path) == 0 {
		path = "config/amqp.yml"
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	c := &MQClientConfig{}

	if err = yaml.Unmarshal(buf, c); err != nil {
		return err
	}

	AMQPCfg = c

	return nil
}

func GetExchange(id string) (string, string) {
	exchange, found := AMQPCfg.Exchanges[id]
	if !found {
		return "", ""
	}

	return exchange.Name, exchange.Kind
}

func GetBindingQueue(id string) Queue {
	binding, found := AMQPCfg.Bindings[id]
	if !found {
		return Queue{}
	}

	return AMQPCfg.Queues[binding.Queue]
}

func GetBindingExchangeId(id string) string {
	binding, found := AMQPCfg.Bindings[id]
	if !found {
		return ""
	}

	return binding.Exchange
}

func GetRoutingKey(id string) string {
	binding, found := AMQPCfg.Bindings[id]
	if !found {
		return ""
	}

	return binding.RoutingKey
}
