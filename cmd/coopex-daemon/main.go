package main

import (
	"fmt"
	"os"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/workers/daemons"
)

func CreateWorker(id string) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob()
	case "liquidation_events":
		return daemons.NewEventListener()
	default:
		return nil
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	if err := mq_client.Connect(); err != nil {
		fmt.Println(err.Error())
		return
	}

	ARVG := os.Args[1:]

	for _, id := range ARVG {
		fmt.Println("Start coopex-daemon: " + id)
		worker := CreateWorker(id)

		if worker == nil {
			fmt.Println("Unknown worker: " + id)
			continue
		}

		worker.Start()
	}
}
