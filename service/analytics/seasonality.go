/*
 * @module service/analytics/seasonality
 * @description 季节性视图：用变异系数检测跨年按月聚合的销量波动
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 按商品按月聚合 -> 变异系数归一化评分 -> 阈值过滤 -> 写回缓存
 * @rules 至少6个不同月份才参与评分；score = min(CV/0.5, 1.0)；峰谷月各取3个按月份升序
 * @dependencies insight-service/service/models
 * @refs service/insights/growth_rules.go
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

// ComputeSeasonality 计算季节性商品
func (s *Service) ComputeSeasonality(ctx context.Context, datasetID string, minScore float64) ([]models.SeasonalityRow, error) {
	defer observeCompute("seasonality", time.Now())

	key := cache.BuildKey("seasonality", minScore)
	var cached []models.SeasonalityRow
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.SeasonalityRow{}, nil
	}

	// 按商品、按日历月（跨年）聚合销量
	type productAgg struct {
		name     string
		category string
		byMonth  map[int]float64
	}
	byProduct := make(map[string]*productAgg)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &productAgg{name: r.ProductName, category: r.Category, byMonth: make(map[int]float64)}
			byProduct[r.ProductID] = a
		}
		a.byMonth[int(r.Date.Month())] += r.Quantity
	}

	rows := make([]models.SeasonalityRow, 0)
	for id, a := range byProduct {
		// 至少需要6个不同月份的数据
		if len(a.byMonth) < 6 {
			continue
		}

		values := make([]float64, 0, len(a.byMonth))
		for _, v := range a.byMonth {
			values = append(values, v)
		}
		mean := meanOf(values)
		if mean == 0 {
			continue
		}

		// 变异系数作为季节性指标，CV > 0.5 视为强季节性
		cv := sampleStdDev(values) / mean
		score := cv / 0.5
		if score > 1.0 {
			score = 1.0
		}
		if score < minScore {
			continue
		}

		rows = append(rows, models.SeasonalityRow{
			ProductName:      a.name,
			ProductID:        id,
			Category:         a.category,
			SeasonalityScore: utils.Round3(score),
			PeakMonths:       topMonths(a.byMonth, 3, true),
			LowMonths:        topMonths(a.byMonth, 3, false),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SeasonalityScore != rows[j].SeasonalityScore {
			return rows[i].SeasonalityScore > rows[j].SeasonalityScore
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	s.writeCache(ctx, datasetID, key, rows)
	slog.Info("季节性计算完成", "dataset_id", datasetID, "products", len(rows))
	return rows, nil
}
