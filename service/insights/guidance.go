/*
 * @module service/insights/guidance
 * @description 经营指导报告合成器：把全部分析视图汇总为一条面向店主的综合洞察
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 各视图分析行 -> 摘要/榜单/行动计划/预测叙述 -> 单条guidance候选
 * @rules 补货清单按紧迫度排序取前8；推广按毛利×收入取前5；清仓按积压价值取前5；阈值复用Thresholds保证可复现
 * @dependencies insight-service/service/models
 * @refs service/insights/engine.go
 */

package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"insight-service/service/models"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// GuidanceInput 报告合成的全部输入视图
type GuidanceInput struct {
	BestSellers   []models.BestSellerRow
	DeadStock     []models.DeadStockRow
	Profitability []models.ProfitabilityRow
	Inventory     []models.InventoryVelocityRow
	Seasonal      []models.SeasonalityRow
	Trends        []models.TrendPoint
}

// restockItem 补货清单条目
type restockItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Reason   string `json:"reason"`
}

// promoteItem 推广清单条目
type promoteItem struct {
	Item       string `json:"item"`
	Margin     string `json:"margin"`
	Suggestion string `json:"suggestion"`
}

// clearItem 清仓清单条目
type clearItem struct {
	Item       string `json:"item"`
	Days       string `json:"days"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion"`
}

// SynthesizeGuidance 合成综合经营指导洞察
// now 由调用方注入以便测试固定时间
func SynthesizeGuidance(input GuidanceInput, th Thresholds, now time.Time) models.InsightCandidate {
	actionPlan := models.JSONB{
		"buy_now":       buildRestockList(input, th),
		"promote_these": buildPromoteList(input, th),
		"cut_these":     buildClearList(input, th),
		"seasonal_tip":  buildSeasonalTip(input.Seasonal, th, now),
	}

	format := models.JSONB{
		"quick_summary":          buildQuickSummary(input, th),
		"best_sellers_breakdown": buildBestSellersTable(input.BestSellers),
		"action_plan":            actionPlan,
		"forecast":               buildForecastNarrative(input, th, now),
		"next_steps":             "📱 Quick win: Scan your new stock entries today to keep Nafah's advice fresh and accurate!",
	}

	// 报告的匹配强度与显著性取满，置信层级由数据完整性决定
	return models.InsightCandidate{
		InsightID:         "nafah_guidance_main",
		Title:             "Nafah's Guidance",
		Category:          models.InsightCategoryGuidance,
		SupportingMetrics: models.JSONB{"guidance_format": format},
		RecommendedAction: buildQuickSummary(input, th),
		MatchStrength:     1.0,
		Significance:      1.0,
	}
}

// buildQuickSummary 摘要行：前3畅销 + 最多2个待改善商品
func buildQuickSummary(input GuidanceInput, th Thresholds) string {
	if len(input.BestSellers) == 0 {
		return "Upload your sales data to see Nafah's personalized advice for your shop!"
	}

	topN := 3
	if topN > len(input.BestSellers) {
		topN = len(input.BestSellers)
	}
	top := make([]string, 0, topN)
	for _, item := range input.BestSellers[:topN] {
		top = append(top, item.ProductName)
	}

	bottom := make([]string, 0, 2)
	if len(input.DeadStock) > 0 {
		for _, item := range input.DeadStock {
			bottom = append(bottom, item.ProductName)
			if len(bottom) == 2 {
				break
			}
		}
	} else if len(input.Profitability) > 0 {
		// 无滞销时取收入最低的商品
		byRevenue := make([]models.ProfitabilityRow, len(input.Profitability))
		copy(byRevenue, input.Profitability)
		sort.SliceStable(byRevenue, func(i, j int) bool {
			return byRevenue[i].Revenue < byRevenue[j].Revenue
		})
		for _, item := range byRevenue {
			bottom = append(bottom, item.ProductName)
			if len(bottom) == 2 {
				break
			}
		}
	}

	fix := "None - great job!"
	if len(bottom) > 0 {
		fix = strings.Join(bottom, ", ")
	}
	return fmt.Sprintf("Your shop's top performers: %s. Need attention: %s.", strings.Join(top, ", "), fix)
}

// buildBestSellersTable 前5畅销榜单，趋势符号按销量分档
func buildBestSellersTable(bestSellers []models.BestSellerRow) []map[string]string {
	limit := 5
	if limit > len(bestSellers) {
		limit = len(bestSellers)
	}

	table := make([]map[string]string, 0, limit)
	for _, item := range bestSellers[:limit] {
		trend := "✓ Steady"
		if item.TotalQuantity > 100 {
			trend = "🔥 Hot"
		} else if item.TotalQuantity > 50 {
			trend = "📈 Up"
		}

		table = append(table, map[string]string{
			"product": item.ProductName,
			"sold":    fmt.Sprintf("%.0f", item.TotalQuantity),
			"revenue": fmt.Sprintf("₹%.0f", item.TotalRevenue),
			"trend":   trend,
		})
	}
	return table
}

// buildRestockList 补货清单：畅销低库存，按补货分降序/可售天数升序取前N
func buildRestockList(input GuidanceInput, th Thresholds) []restockItem {
	invLookup := make(map[string]models.InventoryVelocityRow, len(input.Inventory))
	for _, item := range input.Inventory {
		invLookup[item.ProductID] = item
	}

	type scored struct {
		entry restockItem
		inv   models.InventoryVelocityRow
	}
	matches := make([]scored, 0)

	limit := th.TopSellerCount
	if limit > len(input.BestSellers) {
		limit = len(input.BestSellers)
	}
	for _, product := range input.BestSellers[:limit] {
		inv, ok := invLookup[product.ProductID]
		if !ok || inv.AvgDailySales <= 0 {
			continue
		}

		lowStock := inv.CurrentStock < product.TotalQuantity*th.GuidanceRestockStockPct
		urgent := inv.DaysOfStock < th.RestockDaysOfStock
		if !lowStock && !urgent {
			continue
		}

		matches = append(matches, scored{
			entry: restockItem{
				Item:     product.ProductName,
				Quantity: fmt.Sprintf("%d units", int(product.TotalQuantity*0.3)),
				Reason: fmt.Sprintf("Flying off shelves! Only %.0f left, sells %.1f units/day",
					inv.CurrentStock, inv.AvgDailySales),
			},
			inv: inv,
		})
	}

	// 紧迫度：补货分降序，可售天数升序兜底
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].inv.ReorderScore != matches[j].inv.ReorderScore {
			return matches[i].inv.ReorderScore > matches[j].inv.ReorderScore
		}
		return matches[i].inv.DaysOfStock < matches[j].inv.DaysOfStock
	})

	if len(matches) > th.GuidanceRestockLimit {
		matches = matches[:th.GuidanceRestockLimit]
	}
	items := make([]restockItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, m.entry)
	}
	return items
}

// buildPromoteList 推广清单：高毛利非畅销商品，按毛利×收入降序取前N
func buildPromoteList(input GuidanceInput, th Thresholds) []promoteItem {
	topIDs := make(map[string]bool, th.TopSellerCount)
	limit := th.TopSellerCount
	if limit > len(input.BestSellers) {
		limit = len(input.BestSellers)
	}
	for _, p := range input.BestSellers[:limit] {
		topIDs[p.ProductID] = true
	}

	type scored struct {
		entry promoteItem
		score float64
	}
	matches := make([]scored, 0)
	for _, item := range input.Profitability {
		if item.ProfitMargin <= th.HighMarginPercent || topIDs[item.ProductID] || item.Revenue <= th.GuidancePromoteRevenue {
			continue
		}

		matches = append(matches, scored{
			entry: promoteItem{
				Item:   item.ProductName,
				Margin: fmt.Sprintf("%.1f%%", item.ProfitMargin),
				Suggestion: fmt.Sprintf(
					"Place at eye-level or create bundle deals - this %.0f%% margin gem needs more visibility!",
					item.ProfitMargin),
			},
			score: item.ProfitMargin * item.Revenue,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > th.GuidancePromoteLimit {
		matches = matches[:th.GuidancePromoteLimit]
	}
	items := make([]promoteItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, m.entry)
	}
	return items
}

// buildClearList 清仓清单：滞销库存按积压价值降序取前N，折扣深度随滞销天数加深
func buildClearList(input GuidanceInput, th Thresholds) []clearItem {
	matches := make([]models.DeadStockRow, 0)
	for _, item := range input.DeadStock {
		if item.DaysSinceSale > th.DeadStockDays && item.CurrentStock > 0 {
			matches = append(matches, item)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EstimatedValue > matches[j].EstimatedValue
	})
	if len(matches) > th.GuidanceClearLimit {
		matches = matches[:th.GuidanceClearLimit]
	}

	items := make([]clearItem, 0, len(matches))
	for _, item := range matches {
		discount := "15-20%"
		if item.DaysSinceSale >= th.DeadStockCriticalDays {
			discount = "25-30%"
		}
		items = append(items, clearItem{
			Item:  item.ProductName,
			Days:  fmt.Sprintf("%d days", item.DaysSinceSale),
			Value: fmt.Sprintf("₹%.0f", item.EstimatedValue),
			Suggestion: fmt.Sprintf(
				"Offer %s discount or bundle with best-sellers. %d days without sale - capital stuck!",
				discount, item.DaysSinceSale),
		})
	}
	return items
}

// buildSeasonalTip 旺季提示：最近的高置信旺季（得分>0.6且2个月内）
func buildSeasonalTip(seasonal []models.SeasonalityRow, th Thresholds, now time.Time) string {
	currentMonth := int(now.Month())

	for _, item := range seasonal {
		if item.SeasonalityScore <= th.SeasonalMinScore || len(item.PeakMonths) == 0 {
			continue
		}

		peaks := make([]int, len(item.PeakMonths))
		copy(peaks, item.PeakMonths)
		sort.Ints(peaks)

		nextPeak := -1
		for _, peak := range peaks {
			if peak >= currentMonth {
				nextPeak = peak
				break
			}
		}
		if nextPeak < 0 {
			continue
		}

		monthsAway := nextPeak - currentMonth
		if monthsAway > th.SeasonalPeakWindowMonths {
			continue
		}

		return fmt.Sprintf(
			"🌦️ Peak season for %s approaching in %d month(s)! Stock up by %s to catch the %.0f%% demand surge.",
			item.ProductName, monthsAway, monthNames[nextPeak-1], item.SeasonalityScore*100)
	}
	return ""
}

// buildForecastNarrative 预测叙述：月度趋势方向 + 季节性加成/日均稳态
func buildForecastNarrative(input GuidanceInput, th Thresholds, now time.Time) string {
	if len(input.BestSellers) == 0 {
		return "Upload data to see sales forecasts!"
	}

	trendPrefix := ""
	if len(input.Trends) > 0 {
		last := input.Trends[len(input.Trends)-1]
		switch last.Trend {
		case "up":
			trendPrefix = fmt.Sprintf("Sales are trending up (%.1f%% vs last month). ", last.ChangePercent)
		case "down":
			trendPrefix = fmt.Sprintf("Sales dipped %.1f%% vs last month. ", math.Abs(last.ChangePercent))
		}
	}

	// 当前月处于某商品旺季时优先给出季节性叙述
	currentMonth := int(now.Month())
	for _, item := range input.Seasonal {
		if item.SeasonalityScore <= th.SeasonalMinScore {
			continue
		}
		for _, peak := range item.PeakMonths {
			if peak == currentMonth {
				return trendPrefix + fmt.Sprintf(
					"Next week: Expect %d%% more sales on %s due to seasonal demand!",
					int(item.SeasonalityScore*50), item.ProductName)
			}
		}
	}

	top := input.BestSellers[0]
	avgDaily := 0.0
	if top.TotalQuantity > 0 {
		avgDaily = top.TotalQuantity / 30
	}
	if avgDaily > 10 {
		return trendPrefix + fmt.Sprintf(
			"Next week: Expect steady sales of %s (~%.0f units/day). Stock levels look good!",
			top.ProductName, avgDaily)
	}
	return trendPrefix + "Next week: Monitor sales patterns - consider promotional activities to boost mid-week sales."
}
