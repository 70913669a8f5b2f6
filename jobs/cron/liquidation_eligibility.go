package cron

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jasonlvhit/gocron"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/models"
)

type LiquidationEligibilityJob struct {
	quit chan bool
}

func NewLiquidationEligibilityJob() *LiquidationEligibilityJob {
	return &LiquidationEligibilityJob{quit: make(chan bool)}
}

// Process runs the scheduler until Stop is called.
func (j *LiquidationEligibilityJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:00:00").Do(refreshEligibility)

	stopped := s.Start()
	<-j.quit
	stopped <- true
}

func (j *LiquidationEligibilityJob) Stop() {
	close(j.quit)
}

// refreshEligibility rebuilds the pending-liquidations cache. The anniversary
// check depends on the calendar date, so the rows are recomputed once per day
// and whenever an execute invalidates them.
func refreshEligibility() {
	now := time.Now()

	rows := models.PendingMemberRows(now)

	if err := config.Redis.SetKey(models.PendingCacheKey, rows, redis.KeepTTL); err != nil {
		config.Logger.Errorf("Failed to cache pending liquidations %v", err.Error())
		return
	}
	config.Redis.DeleteKey(models.StatsCacheKey)

	if config.InfluxDB != nil {
		config.InfluxDB.NewPoint(
			"pending_liquidations",
			map[string]string{},
			map[string]interface{}{
				"count": len(rows),
			},
		)
	}

	config.Logger.Infof("Refreshed pending liquidations: %d member(s) due", len(rows))
}
