/*
 * @module service/insights/growth_rules
 * @description 增长类启发式规则：旺季临近与畅销低库存补货机会
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 季节性/畅销/库存分析行 -> 阈值过滤 -> 候选洞察
 * @rules 旺季窗口不跨年回绕；补货规则只考察畅销榜前N名
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"fmt"
	"math"
	"time"

	"insight-service/service/models"
)

// EvaluateSeasonalPeakRule 评估旺季临近机会
// now 由调用方注入以便测试固定时间
func EvaluateSeasonalPeakRule(seasonal []models.SeasonalityRow, th Thresholds, now time.Time) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0)
	currentMonth := int(now.Month())

	for _, item := range seasonal {
		// 找当前月之后最近的旺季月，不跨年回绕
		monthsUntilPeak := -1
		for _, peak := range item.PeakMonths {
			if peak >= currentMonth {
				monthsUntilPeak = peak - currentMonth
				break
			}
		}
		if monthsUntilPeak < 0 || monthsUntilPeak > th.SeasonalPeakWindowMonths {
			continue
		}

		significance := 0.6
		if monthsUntilPeak == 1 {
			significance = 0.8
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID: fmt.Sprintf("seasonal_peak_%s", item.ProductID),
			Title:     fmt.Sprintf("Seasonal Peak Approaching: %s", item.ProductName),
			Category:  models.InsightCategoryGrowth,
			SupportingMetrics: models.JSONB{
				"seasonality_score": item.SeasonalityScore,
				"peak_months":       item.PeakMonths,
				"months_until_peak": monthsUntilPeak,
			},
			RecommendedAction: fmt.Sprintf(
				"Prepare inventory for %s as peak season approaches in %d month(s)",
				item.ProductName, monthsUntilPeak),
			MatchStrength: item.SeasonalityScore,
			Significance:  significance,
		})
	}

	return candidates
}

// EvaluateHighVelocityLowStockRule 评估畅销低库存补货机会
func EvaluateHighVelocityLowStockRule(bestSellers []models.BestSellerRow, inventory []models.InventoryVelocityRow, th Thresholds) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0)

	stockLookup := make(map[string]float64, len(inventory))
	for _, item := range inventory {
		stockLookup[item.ProductID] = item.CurrentStock
	}

	limit := th.TopSellerCount
	if limit > len(bestSellers) {
		limit = len(bestSellers)
	}
	for _, product := range bestSellers[:limit] {
		stock, ok := stockLookup[product.ProductID]
		if !ok {
			continue
		}
		if stock >= product.TotalQuantity*th.LowStockRatio {
			continue
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID: fmt.Sprintf("restock_opportunity_%s", product.ProductID),
			Title:     fmt.Sprintf("Restock Opportunity: %s", product.ProductName),
			Category:  models.InsightCategoryGrowth,
			SupportingMetrics: models.JSONB{
				"current_stock": stock,
				"monthly_sales": product.TotalQuantity,
				"revenue":       product.TotalRevenue,
			},
			RecommendedAction: fmt.Sprintf(
				"Restock %s immediately. Current stock: %.0f, Monthly sales: %.0f",
				product.ProductName, stock, product.TotalQuantity),
			MatchStrength: 0.9,
			Significance:  math.Min(product.TotalQuantity/100, 1.0),
		})
	}

	return candidates
}
