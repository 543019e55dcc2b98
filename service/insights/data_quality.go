/*
 * @module service/insights/data_quality
 * @description 数据质量计算器：完整性/有效性/新鲜度三维度信号，仅供置信度评分消费
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 聚合空值统计 -> 完整性比例 -> 多样性分段加分 -> 组合总分
 * @rules 统计失败时返回保守默认值{0.5, 0.5, 1.0}而非报错；新鲜度暂取固定1.0
 * @dependencies insight-service/service/database
 * @refs service/insights/scorer.go
 */

package insights

import (
	"context"
	"log/slog"

	"insight-service/service/database"
	"insight-service/service/models"
	"insight-service/service/utils"
)

// QualityCalculator 数据质量计算器
type QualityCalculator struct {
	store database.RecordStore
}

// NewQualityCalculator 创建数据质量计算器
func NewQualityCalculator(store database.RecordStore) *QualityCalculator {
	return &QualityCalculator{store: store}
}

// Calculate 计算数据集的质量信号
func (c *QualityCalculator) Calculate(ctx context.Context, datasetID string) models.DataQuality {
	stats, err := c.store.QualityStats(ctx, datasetID)
	if err != nil {
		// 统计失败时取保守默认值，避免一次查询失败拖垮整个生成遍历
		slog.Warn("数据质量统计失败，使用保守默认值", "dataset_id", datasetID, "error", err)
		return models.DataQuality{Completeness: 0.5, Validity: 0.5, Recency: 1.0, Overall: 0.6}
	}

	if stats.TotalRows == 0 {
		return models.DataQuality{}
	}

	// 完整性：关键字段(商品名/金额/数量)的非空比例
	totalFields := float64(stats.TotalRows * 3)
	missingFields := float64(stats.NullNames + stats.NullAmounts + stats.NullQuantities)
	completeness := utils.Clamp01(1.0 - missingFields/totalFields)

	// 有效性：商品与日期多样性分段加分
	validity := 0.0
	if stats.UniqueProducts > 0 {
		validity += 0.4
	}
	if stats.UniqueDates > 1 {
		validity += 0.4
	}
	if stats.TotalRows >= 10 {
		validity += 0.2
	}
	validity = utils.Clamp01(validity)

	// 新鲜度：暂取固定值，后续可按记录日期范围计算
	recency := 1.0

	return models.DataQuality{
		Completeness:   utils.Round2(completeness),
		Validity:       utils.Round2(validity),
		Recency:        recency,
		Overall:        utils.Round2(completeness*0.5 + validity*0.3 + recency*0.2),
		TotalRows:      stats.TotalRows,
		UniqueProducts: stats.UniqueProducts,
		UniqueDates:    stats.UniqueDates,
	}
}
