/*
 * @module service/analytics/demand
 * @description 需求预测视图：基于销量预测累加需求量并给出含安全缓冲的建议备货量
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 调用销量预测 -> 累加预测需求 -> 1.5倍安全缓冲 -> 建议备货量
 * @rules 预测数据不足时返回零值结果并附提示信息；建议备货量四舍五入为整数
 * @dependencies insight-service/service/models
 * @refs service/analytics/forecast.go
 */

package analytics

import (
	"context"
	"math"

	"insight-service/service/models"
	"insight-service/service/utils"
)

// 安全库存缓冲系数，为预测需求保留50%余量，经验值
const safetyStockMultiplier = 1.5

// ComputeDemandPrediction 预测单商品未来需求并给出建议备货量
func (s *Service) ComputeDemandPrediction(ctx context.Context, datasetID, productID string, daysAhead int) (*models.DemandPrediction, error) {
	if daysAhead <= 0 {
		daysAhead = 30
	}

	forecast, err := s.ComputeSalesForecast(ctx, datasetID, daysAhead, productID)
	if err != nil {
		return nil, err
	}

	if len(forecast.Predictions) == 0 {
		return &models.DemandPrediction{
			ProductID:  productID,
			Confidence: models.ConfidenceLow,
			Method:     ForecastMethodInsufficientData,
			DaysAhead:  daysAhead,
			Message:    "数据不足，无法预测需求",
		}, nil
	}

	var totalDemand float64
	for _, p := range forecast.Predictions {
		totalDemand += p.PredictedQuantity
	}
	avgDaily := totalDemand / float64(daysAhead)

	return &models.DemandPrediction{
		ProductID:        productID,
		PredictedDemand:  utils.Round2(totalDemand),
		AvgDailyDemand:   utils.Round2(avgDaily),
		RecommendedStock: int(math.Round(avgDaily * float64(daysAhead) * safetyStockMultiplier)),
		Confidence:       forecast.Confidence,
		Method:           "time_series_forecast",
		DaysAhead:        daysAhead,
	}, nil
}
