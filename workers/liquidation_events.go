package workers

import (
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/models"
)

// LiquidationEventsWorker consumes the liquidation events published after an
// execute and rebuilds the pending-liquidations cache, so the report catches
// up without waiting for the nightly refresh.
type LiquidationEventsWorker struct {
}

func NewLiquidationEventsWorker() *LiquidationEventsWorker {
	return &LiquidationEventsWorker{}
}

func (w *LiquidationEventsWorker) Process(payload []byte) error {
	var liquidation entities.LiquidationEntity

	if err := json.Unmarshal(payload, &liquidation); err != nil {
		return err
	}

	rows := models.PendingMemberRows(time.Now())

	if err := config.Redis.SetKey(models.PendingCacheKey, rows, redis.KeepTTL); err != nil {
		return err
	}
	config.Redis.DeleteKey(models.StatsCacheKey)

	config.Logger.Infof("Processed liquidation %d for member %d, %d member(s) still due", liquidation.ID, liquidation.MemberID, len(rows))

	return nil
}
