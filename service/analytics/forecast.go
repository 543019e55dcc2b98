/*
 * @module service/analytics/forecast
 * @description 销量预测视图：移动平均叠加衰减趋势的时间序列外推
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 按商品构建日序列 -> 7/14日移动平均 -> 趋势斜率 -> 逐日外推 -> 变异系数定置信度
 * @rules 总数据点不足7个返回method=insufficient_data的空结果；趋势影响按每日10%衰减；预测值非负
 * @dependencies insight-service/service/models
 * @refs service/analytics/demand.go
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

// 预测方法标识
const (
	ForecastMethodMovingAverage    = "moving_average_with_trend"
	ForecastMethodInsufficientData = "insufficient_data"
)

// 趋势影响的每日衰减系数，经验值
const forecastTrendDecay = 0.1

// ComputeSalesForecast 计算未来N天的销量预测，productID为空时预测全部商品
func (s *Service) ComputeSalesForecast(ctx context.Context, datasetID string, daysAhead int, productID string) (*models.ForecastResult, error) {
	defer observeCompute("sales_forecast", time.Now())

	if daysAhead <= 0 {
		daysAhead = 7
	}

	key := cache.BuildKey("sales_forecast", daysAhead, productID)
	var cached models.ForecastResult
	if s.readCache(ctx, datasetID, key, &cached) {
		return &cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}

	// 按(商品, 日期)聚合日销量与日收入
	type dayPoint struct {
		date     time.Time
		quantity float64
		revenue  float64
	}
	type productSeries struct {
		name   string
		byDate map[string]*dayPoint
	}
	byProduct := make(map[string]*productSeries)
	totalPoints := 0
	for _, r := range records {
		ps, ok := byProduct[r.ProductID]
		if !ok {
			ps = &productSeries{name: r.ProductName, byDate: make(map[string]*dayPoint)}
			byProduct[r.ProductID] = ps
		}
		dateKey := r.Date.Format("2006-01-02")
		dp, ok := ps.byDate[dateKey]
		if !ok {
			day, _ := time.Parse("2006-01-02", dateKey)
			dp = &dayPoint{date: day}
			ps.byDate[dateKey] = dp
			totalPoints++
		}
		dp.quantity += r.Quantity
		dp.revenue += r.TotalAmount
	}

	if totalPoints < 7 {
		result := &models.ForecastResult{
			Predictions: []models.ForecastPoint{},
			Products:    []models.ForecastProductSummary{},
			Method:      ForecastMethodInsufficientData,
			Confidence:  models.ConfidenceLow,
			DaysAhead:   daysAhead,
		}
		return result, nil
	}

	productIDs := make([]string, 0, len(byProduct))
	for id := range byProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	result := &models.ForecastResult{
		Predictions: []models.ForecastPoint{},
		Products:    []models.ForecastProductSummary{},
		Method:      ForecastMethodMovingAverage,
		Confidence:  models.ConfidenceMedium,
		DaysAhead:   daysAhead,
	}

	for _, id := range productIDs {
		ps := byProduct[id]
		series := make([]dayPoint, 0, len(ps.byDate))
		for _, dp := range ps.byDate {
			series = append(series, *dp)
		}
		sort.Slice(series, func(i, j int) bool { return series[i].date.Before(series[j].date) })

		// 取最近30个数据点
		if len(series) > 30 {
			series = series[len(series)-30:]
		}
		if len(series) < 3 {
			continue
		}

		quantities := make([]float64, len(series))
		var totalQty, totalRevenue float64
		for i, dp := range series {
			quantities[i] = dp.quantity
			totalQty += dp.quantity
			totalRevenue += dp.revenue
		}

		tail7 := quantities
		if len(tail7) > 7 {
			tail7 = tail7[len(tail7)-7:]
		}
		ma7 := meanOf(tail7)
		ma14 := ma7
		if len(quantities) >= 14 {
			ma14 = meanOf(quantities[len(quantities)-14:])
		}
		trendSlope := linearSlope(tail7)

		// 变异系数决定置信度
		confidence := models.ConfidenceMedium
		cv := 1.0
		if mean := meanOf(tail7); mean > 0 {
			cv = sampleStdDev(tail7) / mean
		}
		if cv < 0.3 {
			confidence = models.ConfidenceHigh
		} else if cv > 0.7 {
			confidence = models.ConfidenceLow
		}

		avgPrice := utils.SafeDiv(totalRevenue, totalQty)
		lastDate := series[len(series)-1].date

		for i := 1; i <= daysAhead; i++ {
			// 趋势影响逐日衰减
			trendAdjustment := trendSlope * (1 - forecastTrendDecay*float64(i))
			predicted := ma7 + trendAdjustment
			if predicted < 0 {
				predicted = 0
			}

			result.Predictions = append(result.Predictions, models.ForecastPoint{
				Date:              lastDate.AddDate(0, 0, i).Format("2006-01-02"),
				ProductID:         id,
				ProductName:       ps.name,
				PredictedQuantity: utils.Round2(predicted),
				PredictedRevenue:  utils.Round2(predicted * avgPrice),
				Confidence:        confidence,
				Method:            ForecastMethodMovingAverage,
			})
		}

		result.Products = append(result.Products, models.ForecastProductSummary{
			ProductID:   id,
			ProductName: ps.name,
			MA7:         utils.Round2(ma7),
			MA14:        utils.Round2(ma14),
			TrendSlope:  utils.Round2(trendSlope),
			Confidence:  confidence,
		})
	}

	s.writeCache(ctx, datasetID, key, result)
	slog.Info("销量预测计算完成",
		"dataset_id", datasetID,
		"days_ahead", daysAhead,
		"predictions", len(result.Predictions))
	return result, nil
}
