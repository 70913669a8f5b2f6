package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/types"
)

const (
	StatsCacheKey   = "coopex:liquidations:stats"
	PendingCacheKey = "coopex:liquidations:pending"
)

type liquidationAggregate struct {
	Type   types.LiquidationType
	Count  int64
	Amount decimal.Decimal
}

func LiquidationStats(now time.Time) *entities.LiquidationStats {
	stats := &entities.LiquidationStats{
		TotalAmount: decimal.Zero,
	}

	var aggregates []*liquidationAggregate

	config.DataBase.
		Model(&Liquidation{}).
		Select("type, COUNT(*) as count, COALESCE(SUM(total), 0) as amount").
		Group("type").
		Find(&aggregates)

	for _, aggregate := range aggregates {
		stats.TotalCount += aggregate.Count
		stats.TotalAmount = stats.TotalAmount.Add(aggregate.Amount)

		switch aggregate.Type {
		case types.LiquidationPeriodic:
			stats.PeriodicCount = aggregate.Count
		case types.LiquidationExit:
			stats.ExitCount = aggregate.Count
		}
	}

	stats.PendingMembers = int64(len(PendingMembers(now)))

	return stats
}

// PendingMembers are the active members due for a periodic liquidation.
func PendingMembers(now time.Time) []*Member {
	var members []*Member

	config.DataBase.Where("active = ?", true).Order("id asc").Find(&members)

	pending := make([]*Member, 0)
	for _, member := range members {
		if member.LiquidationPending(now, config.Coop.Liquidation.PeriodYears) {
			pending = append(pending, member)
		}
	}

	return pending
}

// PendingMemberRows are the report rows behind the pending-liquidations
// endpoint and the nightly eligibility cache.
func PendingMemberRows(now time.Time) []entities.PendingMemberEntity {
	rows := make([]entities.PendingMemberEntity, 0)

	for _, member := range PendingMembers(now) {
		rows = append(rows, entities.PendingMemberEntity{
			MemberID:   member.ID,
			Code:       member.Code,
			FullName:   member.FullName,
			YearsSince: member.YearsSinceLastLiquidation(now),
			Total:      member.AccountsTotal(),
		})
	}

	return rows
}
