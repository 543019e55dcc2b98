/*
 * @module service/analytics/revenue
 * @description 收入贡献视图：各商品收入占总收入的百分比
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 加载销售记录 -> 聚合求占比 -> 排序截断 -> 写回缓存
 * @rules 百分比基于未截断的全量商品集计算，保留2位小数；总收入为0时返回空结果
 * @dependencies insight-service/service/models
 * @refs api/controllers/analytics_controller.go
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

// ComputeRevenueContribution 计算收入贡献
func (s *Service) ComputeRevenueContribution(ctx context.Context, datasetID string, limit int) (*models.RevenueContribution, error) {
	defer observeCompute("revenue_contribution", time.Now())

	if limit <= 0 {
		limit = 20
	}

	key := cache.BuildKey("revenue_contribution", limit)
	var cached models.RevenueContribution
	if s.readCache(ctx, datasetID, key, &cached) {
		return &cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &models.RevenueContribution{TotalRevenue: 0, Results: []models.RevenueContributionRow{}}, nil
	}

	var totalRevenue float64
	type agg struct {
		name     string
		category string
		revenue  float64
	}
	byProduct := make(map[string]*agg)
	for _, r := range records {
		totalRevenue += r.TotalAmount
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &agg{name: r.ProductName, category: r.Category}
			byProduct[r.ProductID] = a
		}
		a.revenue += r.TotalAmount
	}

	// 防护除零：总收入为0时返回空结果
	if totalRevenue == 0 {
		return &models.RevenueContribution{TotalRevenue: 0, Results: []models.RevenueContributionRow{}}, nil
	}

	rows := make([]models.RevenueContributionRow, 0, len(byProduct))
	for id, a := range byProduct {
		rows = append(rows, models.RevenueContributionRow{
			ProductName: a.name,
			ProductID:   id,
			Category:    a.category,
			Revenue:     a.revenue,
			Percentage:  utils.Round2(a.revenue / totalRevenue * 100),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	result := &models.RevenueContribution{
		TotalRevenue: totalRevenue,
		Results:      rows,
	}
	s.writeCache(ctx, datasetID, key, result)
	slog.Info("收入贡献计算完成", "dataset_id", datasetID, "products", len(rows))
	return result, nil
}
