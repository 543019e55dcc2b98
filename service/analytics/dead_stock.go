/*
 * @module service/analytics/dead_stock
 * @description 滞销库存视图：超过阈值天数无销售的商品及其积压价值
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 按商品求最后售出日 -> 阈值过滤 -> 关联库存估值 -> 写回缓存
 * @rules 库存未知时仍然上报，估值按0处理；按无销售天数降序
 * @dependencies insight-service/service/models
 * @refs service/insights/risk_rules.go
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

// ComputeDeadStock 计算滞销库存
func (s *Service) ComputeDeadStock(ctx context.Context, datasetID string, daysThreshold int) ([]models.DeadStockRow, error) {
	defer observeCompute("dead_stock", time.Now())

	if daysThreshold <= 0 {
		daysThreshold = 90
	}

	key := cache.BuildKey("dead_stock", daysThreshold)
	var cached []models.DeadStockRow
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.DeadStockRow{}, nil
	}

	inventory, err := s.store.QueryInventory(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	invByProduct := make(map[string]models.InventoryRecord, len(inventory))
	for _, inv := range inventory {
		invByProduct[inv.ProductID] = inv
	}

	type agg struct {
		name     string
		category string
		lastSale time.Time
	}
	byProduct := make(map[string]*agg)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &agg{name: r.ProductName, category: r.Category, lastSale: r.Date}
			byProduct[r.ProductID] = a
		}
		if r.Date.After(a.lastSale) {
			a.lastSale = r.Date
		}
	}

	now := s.now()
	rows := make([]models.DeadStockRow, 0)
	for id, a := range byProduct {
		days := daysBetween(a.lastSale, now)
		if days <= daysThreshold {
			continue
		}

		row := models.DeadStockRow{
			ProductName:   a.name,
			ProductID:     id,
			Category:      a.category,
			DaysSinceSale: days,
		}
		// 库存未知时照常上报，估值为0
		if inv, ok := invByProduct[id]; ok {
			row.CurrentStock = inv.CurrentStock
			row.UnitCost = inv.UnitCost
			row.EstimatedValue = inv.CurrentStock * inv.UnitCost
			if inv.Category != "" {
				row.Category = inv.Category
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DaysSinceSale != rows[j].DaysSinceSale {
			return rows[i].DaysSinceSale > rows[j].DaysSinceSale
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	s.writeCache(ctx, datasetID, key, rows)
	slog.Info("滞销库存计算完成", "dataset_id", datasetID, "items", len(rows))
	return rows, nil
}
