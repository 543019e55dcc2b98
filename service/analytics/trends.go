/*
 * @module service/analytics/trends
 * @description 月度趋势视图：收入/销量/毛利的环比变化
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 限行加载销售记录 -> 按日历月聚合 -> 环比标注 -> 写回缓存
 * @rules 扫描行数上限10000防止内存失控；前月值>0才计算环比；±5%为up/down分界；按时间升序返回
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
	"insight-service/service/utils"
)

// 趋势度量
const (
	TrendMetricRevenue  = "revenue"
	TrendMetricQuantity = "quantity"
	TrendMetricProfit   = "profit"
)

// 趋势查询扫描行数上限
const trendsRowCap = 10000

// ComputeTrends 计算月度趋势
func (s *Service) ComputeTrends(ctx context.Context, datasetID, metric string, months int) ([]models.TrendPoint, error) {
	defer observeCompute("trends", time.Now())

	if metric != TrendMetricQuantity && metric != TrendMetricProfit {
		metric = TrendMetricRevenue
	}
	if months <= 0 {
		months = 6
	}

	key := cache.BuildKey("trends", metric, months)
	var cached []models.TrendPoint
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{
		OrderDesc: true,
		Limit:     trendsRowCap,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.TrendPoint{}, nil
	}

	// 毛利度量需要库存成本
	costByProduct := map[string]float64{}
	if metric == TrendMetricProfit {
		inventory, err := s.store.QueryInventory(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		for _, inv := range inventory {
			costByProduct[inv.ProductID] = inv.UnitCost
		}
	}

	// 按日历月(YYYY-MM)聚合
	byMonth := make(map[string]float64)
	for _, r := range records {
		month := r.Date.Format("2006-01")
		switch metric {
		case TrendMetricQuantity:
			byMonth[month] += r.Quantity
		case TrendMetricProfit:
			byMonth[month] += r.TotalAmount - r.Quantity*costByProduct[r.ProductID]
		default:
			byMonth[month] += r.TotalAmount
		}
	}

	monthKeys := make([]string, 0, len(byMonth))
	for m := range byMonth {
		monthKeys = append(monthKeys, m)
	}
	sort.Strings(monthKeys)

	// 取最近N个月
	if len(monthKeys) > months {
		monthKeys = monthKeys[len(monthKeys)-months:]
	}

	points := make([]models.TrendPoint, 0, len(monthKeys))
	for i, m := range monthKeys {
		value := utils.Finite(byMonth[m])
		point := models.TrendPoint{
			Month: m,
			Value: value,
			Trend: "stable",
		}

		if i > 0 {
			prevMonth := monthKeys[i-1]
			prevValue := utils.Finite(byMonth[prevMonth])
			point.PreviousMonth = &prevMonth
			if prevValue > 0 {
				point.ChangePercent = utils.Round2((value - prevValue) / prevValue * 100)
				point.PreviousValue = &prevValue
			}
		}

		if point.ChangePercent > 5 {
			point.Trend = "up"
		} else if point.ChangePercent < -5 {
			point.Trend = "down"
		}
		points = append(points, point)
	}

	s.writeCache(ctx, datasetID, key, points)
	slog.Info("月度趋势计算完成", "dataset_id", datasetID, "metric", metric, "months", len(points))
	return points, nil
}
