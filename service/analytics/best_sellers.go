/*
 * @module service/analytics/best_sellers
 * @description 畅销商品视图：按商品聚合销量与收入，排序后取前N名
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 加载销售记录 -> 按商品聚合 -> 排序排名截断 -> 写回缓存
 * @rules period按日历月(YYYY-MM)过滤；排名从1起连续；无数据返回空切片
 * @dependencies insight-service/service/models
 * @refs api/controllers/analytics_controller.go
 */

package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/models"
)

// SortByQuantity / SortByRevenue 畅销榜排序依据
const (
	SortByQuantity = "quantity"
	SortByRevenue  = "revenue"
)

// ComputeBestSellers 计算畅销商品榜
func (s *Service) ComputeBestSellers(ctx context.Context, datasetID string, limit int, period, sortBy string) ([]models.BestSellerRow, error) {
	defer observeCompute("best_sellers", time.Now())

	if sortBy != SortByRevenue {
		sortBy = SortByQuantity
	}
	if limit <= 0 {
		limit = 10
	}

	key := cache.BuildKey("best_sellers", sortBy, limit)
	if period != "" {
		key = fmt.Sprintf("%s_%s", key, period)
	}

	var cached []models.BestSellerRow
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{Period: period})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []models.BestSellerRow{}, nil
	}

	// 按商品聚合
	type agg struct {
		name     string
		category string
		quantity float64
		revenue  float64
	}
	byProduct := make(map[string]*agg)
	for _, r := range records {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &agg{name: r.ProductName, category: r.Category}
			byProduct[r.ProductID] = a
		}
		a.quantity += r.Quantity
		a.revenue += r.TotalAmount
	}

	rows := make([]models.BestSellerRow, 0, len(byProduct))
	for id, a := range byProduct {
		rows = append(rows, models.BestSellerRow{
			ProductName:   a.name,
			ProductID:     id,
			Category:      a.category,
			TotalQuantity: a.quantity,
			TotalRevenue:  a.revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if sortBy == SortByRevenue {
			if rows[i].TotalRevenue != rows[j].TotalRevenue {
				return rows[i].TotalRevenue > rows[j].TotalRevenue
			}
		} else {
			if rows[i].TotalQuantity != rows[j].TotalQuantity {
				return rows[i].TotalQuantity > rows[j].TotalQuantity
			}
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	s.writeCache(ctx, datasetID, key, rows)
	slog.Info("畅销商品计算完成", "dataset_id", datasetID, "products", len(rows))
	return rows, nil
}
