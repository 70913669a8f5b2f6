package main

import (
	"fmt"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	// The API stays up without a broker; events are simply not published.
	if err := mq_client.Connect(); err != nil {
		config.Logger.Warnf("AMQP unavailable, events disabled: %v", err.Error())
	}

	r := routes.SetupRouter()
	// running
	r.Listen(":3000")
}
