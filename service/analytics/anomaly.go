/*
 * @module service/analytics/anomaly
 * @description 销量异常检测视图：基于z分数识别日销量尖峰与骤降
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 按日聚合全量历史 -> 均值/标准差 -> z分数阈值过滤 -> 严重度分档
 * @rules 历史不足7天返回空结果；|z|>3为high否则medium；标准差为0时不产生异常
 * @dependencies insight-service/service/models
 * @refs api/controllers/analytics_controller.go
 */

package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/models"
	"insight-service/service/utils"
)

// ComputeAnomalies 检测日销量异常
func (s *Service) ComputeAnomalies(ctx context.Context, datasetID string, threshold float64) ([]models.AnomalyPoint, error) {
	defer observeCompute("anomaly_detection", time.Now())

	if threshold <= 0 {
		threshold = 2.0
	}

	key := cache.BuildKey("anomalies", threshold)
	var cached []models.AnomalyPoint
	if s.readCache(ctx, datasetID, key, &cached) {
		return cached, nil
	}

	records, err := s.store.QuerySales(ctx, datasetID, database.SalesFilter{})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64)
	for _, r := range records {
		byDate[r.Date.Format("2006-01-02")] += r.Quantity
	}
	if len(byDate) < 7 {
		return []models.AnomalyPoint{}, nil
	}

	dates := make([]string, 0, len(byDate))
	values := make([]float64, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		values = append(values, byDate[d])
	}

	mean := meanOf(values)
	std := sampleStdDev(values)
	if std == 0 {
		return []models.AnomalyPoint{}, nil
	}

	anomalies := make([]models.AnomalyPoint, 0)
	for i, d := range dates {
		z := (values[i] - mean) / std
		if math.Abs(z) <= threshold {
			continue
		}

		anomalyType := "spike"
		if z < 0 {
			anomalyType = "drop"
		}
		severity := "medium"
		if math.Abs(z) > 3 {
			severity = "high"
		}

		anomalies = append(anomalies, models.AnomalyPoint{
			Date:             d,
			Type:             anomalyType,
			ObservedQuantity: values[i],
			ExpectedQuantity: utils.Round2(mean),
			DeviationPercent: utils.Round2(utils.SafeDiv(values[i]-mean, mean) * 100),
			ZScore:           utils.Round2(z),
			Severity:         severity,
		})
	}

	s.writeCache(ctx, datasetID, key, anomalies)
	slog.Info("异常检测完成", "dataset_id", datasetID, "anomalies", len(anomalies))
	return anomalies, nil
}
