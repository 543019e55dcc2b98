/*
 * @module service/insights/risk_rules
 * @description 风险类启发式规则：识别滞销库存并给出折价/下架建议
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 滞销分析行 -> 阈值过滤 -> 候选洞察（含匹配强度/显著性）
 * @rules insight_id 对同一商品稳定；库存为0的商品不产生滞销洞察
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"fmt"
	"math"

	"insight-service/service/models"
)

// EvaluateDeadStockRule 评估滞销库存风险
func EvaluateDeadStockRule(deadStock []models.DeadStockRow, th Thresholds) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0)

	for _, item := range deadStock {
		if item.DaysSinceSale <= th.DeadStockDays || item.CurrentStock <= 0 {
			continue
		}

		significance := 0.0
		if item.EstimatedValue > 0 {
			significance = math.Min(item.EstimatedValue/10000, 1.0)
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID: fmt.Sprintf("dead_stock_%s", item.ProductID),
			Title:     fmt.Sprintf("Dead Stock: %s", item.ProductName),
			Category:  models.InsightCategoryRisk,
			SupportingMetrics: models.JSONB{
				"days_since_sale": item.DaysSinceSale,
				"current_stock":   item.CurrentStock,
				"estimated_value": item.EstimatedValue,
			},
			RecommendedAction: fmt.Sprintf(
				"Consider discounting or discontinuing %s. Stock value: ₹%.2f",
				item.ProductName, item.EstimatedValue),
			MatchStrength: math.Min(float64(item.DaysSinceSale)/float64(th.DeadStockCriticalDays), 1.0),
			Significance:  significance,
		})
	}

	return candidates
}
