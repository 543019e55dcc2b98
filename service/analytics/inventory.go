/*
 * @module service/analytics/inventory
 * @description 库存周转视图：日均销量、年化周转、可售天数与补货评分
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 销售/库存双源聚合 -> 周转与补货评分 -> 写回缓存
 * @rules days_active至少为1；无日均销量时days_of_stock取哨兵值999；reorder_score三段累加封顶100
 * @dependencies insight-service/service/models
 * @refs service/insights/guidance.go
 */

package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/models"
)

// 可售天数哨兵值，表示按当前销速永远卖不完（无销量）
const daysOfStockSentinel = 999

// ComputeInventoryVelocity 计算库存周转
func (s *Service) ComputeInventoryVelocity(ctx context.Context, datasetID string) ([]models.InventoryVelocityRow, error) {
	defer observeCompute("inventory_velocity", time.Now())

	key := cache.BuildKey("inventory_velocity")
	var cached []models.InventoryVelocityRow
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.InventoryVelocityRow{}, nil
	}

	inventory, err := s.store.QueryInventory(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	stockByProduct := make(map[string]float64, len(inventory))
	for _, inv := range inventory {
		stockByProduct[inv.ProductID] = inv.CurrentStock
	}

	type agg struct {
		name      string
		quantity  float64
		firstSale time.Time
		lastSale  time.Time
	}
	byProduct := make(map[string]*agg)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &agg{name: r.ProductName, firstSale: r.Date, lastSale: r.Date}
			byProduct[r.ProductID] = a
		}
		a.quantity += r.Quantity
		if r.Date.Before(a.firstSale) {
			a.firstSale = r.Date
		}
		if r.Date.After(a.lastSale) {
			a.lastSale = r.Date
		}
	}

	now := s.now()
	rows := make([]models.InventoryVelocityRow, 0, len(byProduct))
	for id, a := range byProduct {
		daysActive := daysBetween(a.firstSale, now)
		if daysActive < 1 {
			daysActive = 1
		}
		avgDaily := a.quantity / float64(daysActive)
		turnover := avgDaily * 365

		stock := stockByProduct[id]
		daysOfStock := float64(daysOfStockSentinel)
		if avgDaily > 0 {
			daysOfStock = stock / avgDaily
		}

		daysSinceSale := daysBetween(a.lastSale, now)
		if daysSinceSale < 0 {
			daysSinceSale = 0
		}

		rows = append(rows, models.InventoryVelocityRow{
			ProductName:   a.name,
			ProductID:     id,
			VelocityScore: velocityBucket(turnover, avgDaily),
			TurnoverRate:  turnover,
			AvgDailySales: avgDaily,
			DaysActive:    daysActive,
			DaysOfStock:   daysOfStock,
			ReorderScore:  reorderScore(avgDaily, daysOfStock, daysSinceSale),
			CurrentStock:  stock,
			DaysSinceSale: daysSinceSale,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TurnoverRate != rows[j].TurnoverRate {
			return rows[i].TurnoverRate > rows[j].TurnoverRate
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	s.writeCache(ctx, datasetID, key, rows)
	slog.Info("库存周转计算完成", "dataset_id", datasetID, "products", len(rows))
	return rows, nil
}

// velocityBucket 周转速度分档
func velocityBucket(turnover, avgDaily float64) string {
	switch {
	case turnover >= 12 || avgDaily > 10:
		return "high"
	case turnover >= 6 || avgDaily > 3:
		return "medium"
	default:
		return "low"
	}
}

// reorderScore 补货评分，三段累加后封顶100
// 各段权重为经验值：销速段最高40分，库存紧迫段最高40分，近售段最高20分
func reorderScore(avgDaily, daysOfStock float64, daysSinceSale int) float64 {
	var score float64

	// 销速段
	switch {
	case avgDaily > 10:
		score += 40
	case avgDaily > 3:
		score += 25
	case avgDaily > 1:
		score += 15
	case avgDaily > 0:
		score += 5
	}

	// 库存紧迫段
	switch {
	case daysOfStock < 7:
		score += 40
	case daysOfStock < 14:
		score += 30
	case daysOfStock < 30:
		score += 20
	case daysOfStock < 60:
		score += 10
	}

	// 近售段
	switch {
	case daysSinceSale <= 7:
		score += 20
	case daysSinceSale <= 14:
		score += 12
	case daysSinceSale <= 30:
		score += 6
	}

	if score > 100 {
		score = 100
	}
	return score
}
