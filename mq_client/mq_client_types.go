package mq_client

type MQClientConfig struct {
	Exchanges map[string]Exchange `yaml:"exchanges"`
	Queues    map[string]Queue    `yaml:"queues"`
	Bindings  map[string]Binding  `yaml:"bindings"`
}

type Exchange struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type Queue struct {
	Name    string `yaml:"name"`
	Durable bool   `yaml:"durable"`
}

type Binding struct {
	Queue      string `yaml:"queue"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
}
