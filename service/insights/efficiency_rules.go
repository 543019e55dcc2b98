/*
 * @module service/insights/efficiency_rules
 * @description 效率类启发式规则：识别高收入低毛利商品的定价问题
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 盈利能力分析行 -> 阈值过滤 -> 候选洞察
 * @rules 仅对收入超过下限的商品告警，避免长尾噪声
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"fmt"
	"math"

	"insight-service/service/models"
)

// EvaluateLowMarginRule 评估低毛利高收入商品
func EvaluateLowMarginRule(profitability []models.ProfitabilityRow, th Thresholds) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0)

	for _, item := range profitability {
		if item.ProfitMargin >= th.LowMarginPercent || item.Revenue <= th.LowMarginMinRevenue {
			continue
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID: fmt.Sprintf("low_margin_%s", item.ProductID),
			Title:     fmt.Sprintf("Low Margin Product: %s", item.ProductName),
			Category:  models.InsightCategoryEfficiency,
			SupportingMetrics: models.JSONB{
				"profit_margin": item.ProfitMargin,
				"revenue":       item.Revenue,
				"profit":        item.Profit,
			},
			RecommendedAction: fmt.Sprintf(
				"Review pricing strategy for %s. Current margin: %.1f%%",
				item.ProductName, item.ProfitMargin),
			MatchStrength: 0.7,
			Significance:  math.Min(item.Revenue/50000, 1.0),
		})
	}

	return candidates
}
