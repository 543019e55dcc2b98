/*
 * @module service/analytics/daily_sales
 * @description 日销售视图：目标月份的逐日稠密序列，无交易日零值填充
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 按月区间加载 -> 按日聚合 -> 零值填充补齐 -> 写回缓存
 * @rules 整月无交易时返回空切片；有交易时序列覆盖整月每一天
 * @dependencies insight-service/service/models
 * @refs api/controllers/analytics_controller.go
 */

package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/models"
)

// ComputeDailySales 计算指定月份的日销售序列
func (s *Service) ComputeDailySales(ctx context.Context, datasetID string, year, month int) ([]models.DailySalesPoint, error) {
	defer observeCompute("daily_sales", time.Now())

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("无效的月份: %d", month)
	}

	key := cache.BuildKey("daily_sales", year, fmt.Sprintf("%02d", month))
	var cached []models.DailySalesPoint
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.DailySalesPoint{}, nil
	}

	type dayAgg struct {
		revenue  float64
		quantity float64
	}
	byDay := make(map[int]*dayAgg)
	for _, r := range records {
		day := r.Date.Day()
		a, ok := byDay[day]
		if !ok {
			a = &dayAgg{}
			byDay[day] = a
		}
		a.revenue += r.TotalAmount
		a.quantity += r.Quantity
	}

	// 补齐整月的稠密序列
	daysInMonth := int(end.Sub(start).Hours() / 24)
	points := make([]models.DailySalesPoint, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		point := models.DailySalesPoint{
			Day:  day,
			Date: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}
		if a, ok := byDay[day]; ok {
			point.Value = a.revenue
			point.Quantity = a.quantity
		}
		points = append(points, point)
	}

	s.writeCache(ctx, datasetID, key, points)
	slog.Info("日销售计算完成", "dataset_id", datasetID, "year", year, "month", month, "days", len(points))
	return points, nil
}
