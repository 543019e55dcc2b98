/*
 * @module service/analytics/profitability
 * @description 盈利能力视图：商品毛利与毛利率排名
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 销售聚合关联库存成本 -> 毛利率计算 -> 排名 -> 写回缓存
 * @rules 成本缺失按0填充；收入为0时毛利率取0；按毛利率降序排名
 * @dependencies insight-service/service/models
 * @refs service/insights/efficiency_rules.go, service/insights/profitability_rules.go
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
	"insight-service/service/utils"
)

// ComputeProfitability 计算盈利能力排名
func (s *Service) ComputeProfitability(ctx context.Context, datasetID string) ([]models.ProfitabilityRow, error) {
	defer observeCompute("profitability", time.Now())

	key := cache.BuildKey("profitability")
	var cached []models.ProfitabilityRow
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.ProfitabilityRow{}, nil
	}

	inventory, err := s.store.QueryInventory(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	costByProduct := make(map[string]float64, len(inventory))
	categoryByProduct := make(map[string]string, len(inventory))
	for _, inv := range inventory {
		costByProduct[inv.ProductID] = inv.UnitCost
		categoryByProduct[inv.ProductID] = inv.Category
	}

	type agg struct {
		name     string
		category string
		revenue  float64
		quantity float64
	}
	byProduct := make(map[string]*agg)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &agg{name: r.ProductName, category: r.Category}
			byProduct[r.ProductID] = a
		}
		a.revenue += r.TotalAmount
		a.quantity += r.Quantity
	}

	rows := make([]models.ProfitabilityRow, 0, len(byProduct))
	for id, a := range byProduct {
		cost := a.quantity * costByProduct[id]
		profit := a.revenue - cost

		// 防护除零：收入为0时毛利率取0
		margin := 0.0
		if a.revenue > 0 {
			margin = profit / a.revenue * 100
		}

		category := a.category
		if c, ok := categoryByProduct[id]; ok && c != "" {
			category = c
		}

		rows = append(rows, models.ProfitabilityRow{
			ProductName:  a.name,
			ProductID:    id,
			Category:     category,
			Revenue:      a.revenue,
			Cost:         cost,
			Profit:       profit,
			ProfitMargin: utils.Finite(margin),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProfitMargin != rows[j].ProfitMargin {
			return rows[i].ProfitMargin > rows[j].ProfitMargin
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	s.writeCache(ctx, datasetID, key, rows)
	slog.Info("盈利能力计算完成", "dataset_id", datasetID, "products", len(rows))
	return rows, nil
}
