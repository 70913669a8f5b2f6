package daemons

import (
	"time"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/jobs"
	"github.com/coopetico/coopex/jobs/cron"
)

type CronJob struct {
	Running bool
	Jobs    []jobs.Job
}

func NewCronJob() *CronJob {
	jobs := []jobs.Job{cron.NewLiquidationEligibilityJob()}

	return &CronJob{Running: true, Jobs: jobs}
}

func (c *CronJob) Stop() {
	c.Running = false

	for _, job := range c.Jobs {
		job.Stop()
	}
}

func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		config.Logger.Infof("cron job started: %T", job)

		go c.Process(job)
	}

	for c.Running {
		time.Sleep(1 * time.Second)
	}
}

func (c *CronJob) Process(job jobs.Job) {
	for c.Running {
		job.Process()
	}
}
