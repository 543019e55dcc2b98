/*
 * @module service/insights/profitability_rules
 * @description 盈利类启发式规则：高毛利推广机会与利润集中度风险
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 盈利/畅销分析行 -> 交叉比对 -> 候选洞察
 * @rules 集中度规则整份数据集至多产生一条洞察，insight_id 固定
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"fmt"
	"math"

	"insight-service/service/models"
)

// EvaluateHighProfitOpportunity 评估未进畅销榜的高毛利商品推广机会
func EvaluateHighProfitOpportunity(profitability []models.ProfitabilityRow, bestSellers []models.BestSellerRow, th Thresholds) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0)

	topIDs := make(map[string]bool, th.TopSellerCount)
	limit := th.TopSellerCount
	if limit > len(bestSellers) {
		limit = len(bestSellers)
	}
	for _, p := range bestSellers[:limit] {
		topIDs[p.ProductID] = true
	}

	for _, item := range profitability {
		if item.ProfitMargin <= th.HighMarginPercent || item.Revenue <= th.HighMarginMinRevenue || topIDs[item.ProductID] {
			continue
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID: fmt.Sprintf("high_profit_opportunity_%s", item.ProductID),
			Title:     fmt.Sprintf("Promote High-Margin Product: %s", item.ProductName),
			Category:  models.InsightCategoryGrowth,
			SupportingMetrics: models.JSONB{
				"profit_margin": item.ProfitMargin,
				"revenue":       item.Revenue,
				"profit":        item.Profit,
			},
			RecommendedAction: fmt.Sprintf(
				"%s has %.1f%% profit margin but isn't in top sellers. "+
					"Consider promoting it more to increase overall profitability.",
				item.ProductName, item.ProfitMargin),
			MatchStrength: math.Min(item.ProfitMargin/50, 1.0),
			Significance:  math.Min(item.Revenue/30000, 1.0),
		})
	}

	return candidates
}

// EvaluateProfitConcentration 评估畅销榜是否过度依赖低毛利商品
func EvaluateProfitConcentration(bestSellers []models.BestSellerRow, profitability []models.ProfitabilityRow, th Thresholds) []models.InsightCandidate {
	profitLookup := make(map[string]models.ProfitabilityRow, len(profitability))
	for _, item := range profitability {
		profitLookup[item.ProductID] = item
	}

	var topRevenue, totalProfit float64
	lowMarginCount := 0

	limit := th.ConcentrationTopCount
	if limit > len(bestSellers) {
		limit = len(bestSellers)
	}
	for _, product := range bestSellers[:limit] {
		topRevenue += product.TotalRevenue

		p, ok := profitLookup[product.ProductID]
		if !ok {
			continue
		}
		profit := p.Profit
		if profit == 0 {
			profit = product.TotalRevenue * p.ProfitMargin / 100
		}
		totalProfit += profit

		if p.ProfitMargin < th.LowMarginPercent {
			lowMarginCount++
		}
	}

	if lowMarginCount < th.ConcentrationMinLowMargin || topRevenue <= th.ConcentrationMinRevenue {
		return []models.InsightCandidate{}
	}

	avgMargin := 0.0
	if topRevenue > 0 {
		avgMargin = totalProfit / topRevenue * 100
	}

	return []models.InsightCandidate{{
		InsightID: "profit_concentration_risk",
		Title:     "Diversify Product Mix",
		Category:  models.InsightCategoryEfficiency,
		SupportingMetrics: models.JSONB{
			"low_margin_top_sellers": lowMarginCount,
			"top_5_revenue":          topRevenue,
			"average_margin":         avgMargin,
		},
		RecommendedAction: fmt.Sprintf(
			"Your top 5 products generate ₹%.0f but %d have margins below 10%%. "+
				"Average margin: %.1f%%. Consider focusing on higher-margin products to improve profitability.",
			topRevenue, lowMarginCount, avgMargin),
		MatchStrength: math.Min(float64(lowMarginCount)/float64(th.ConcentrationTopCount), 1.0),
		Significance:  math.Min(topRevenue/100000, 1.0),
	}}
}
