/*
 * @module service/insights/guidance_test
 * @description 经营指导报告测试：摘要、榜单趋势符号、行动计划清单与预测叙述
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 构造分析行 -> 合成报告 -> 结构断言
 * @rules 空数据给引导文案；清单长度受阈值上限约束；折扣深度随滞销天数加深
 * @dependencies testing, testify
 * @refs guidance.go
 */

package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-service/service/models"
)

var guidanceNow = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

// guidanceFormat 从候选里取出报告结构
func guidanceFormat(t *testing.T, c models.InsightCandidate) models.JSONB {
	format, ok := c.SupportingMetrics["guidance_format"].(models.JSONB)
	require.True(t, ok, "guidance_format 缺失")
	return format
}

func TestGuidanceIdentity(t *testing.T) {
	c := SynthesizeGuidance(GuidanceInput{}, DefaultThresholds(), guidanceNow)

	assert.Equal(t, "nafah_guidance_main", c.InsightID)
	assert.Equal(t, "Nafah's Guidance", c.Title)
	assert.Equal(t, models.InsightCategoryGuidance, c.Category)
	// 报告自身不参与匹配度衰减，层级完全由数据质量决定
	assert.Equal(t, 1.0, c.MatchStrength)
	assert.Equal(t, 1.0, c.Significance)
}

func TestGuidanceEmptyInput(t *testing.T) {
	c := SynthesizeGuidance(GuidanceInput{}, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)

	assert.Contains(t, format["quick_summary"], "Upload your sales data")
	assert.Contains(t, format["forecast"], "Upload data")
	assert.Empty(t, format["best_sellers_breakdown"])
}

func TestGuidanceQuickSummary(t *testing.T) {
	input := GuidanceInput{
		BestSellers: []models.BestSellerRow{
			{ProductID: "P001", ProductName: "Tea", TotalQuantity: 100},
			{ProductID: "P002", ProductName: "Sugar", TotalQuantity: 80},
			{ProductID: "P003", ProductName: "Salt", TotalQuantity: 60},
			{ProductID: "P004", ProductName: "Rice", TotalQuantity: 40},
		},
		DeadStock: []models.DeadStockRow{
			{ProductID: "P009", ProductName: "Old Biscuits", DaysSinceSale: 120, CurrentStock: 10},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	summary := c.RecommendedAction

	// 前3畅销 + 滞销商品
	assert.Contains(t, summary, "Tea, Sugar, Salt")
	assert.NotContains(t, summary, "Rice")
	assert.Contains(t, summary, "Old Biscuits")
}

func TestGuidanceBestSellersTrendGlyphs(t *testing.T) {
	input := GuidanceInput{
		BestSellers: []models.BestSellerRow{
			{ProductID: "P001", ProductName: "Hot Item", TotalQuantity: 150, TotalRevenue: 1500},
			{ProductID: "P002", ProductName: "Rising Item", TotalQuantity: 60, TotalRevenue: 600},
			{ProductID: "P003", ProductName: "Steady Item", TotalQuantity: 10, TotalRevenue: 100},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	table, ok := format["best_sellers_breakdown"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, table, 3)

	assert.Equal(t, "🔥 Hot", table[0]["trend"])
	assert.Equal(t, "📈 Up", table[1]["trend"])
	assert.Equal(t, "✓ Steady", table[2]["trend"])
	assert.Equal(t, "₹1500", table[0]["revenue"])
}

func TestGuidanceRestockList(t *testing.T) {
	input := GuidanceInput{
		BestSellers: []models.BestSellerRow{
			{ProductID: "P001", ProductName: "Tea", TotalQuantity: 100},
			{ProductID: "P002", ProductName: "Sugar", TotalQuantity: 100},
		},
		Inventory: []models.InventoryVelocityRow{
			// 低库存：10 < 100*0.2
			{ProductID: "P001", CurrentStock: 10, AvgDailySales: 5, DaysOfStock: 2, ReorderScore: 90},
			// 库存充足且可售天数长
			{ProductID: "P002", CurrentStock: 100, AvgDailySales: 2, DaysOfStock: 50, ReorderScore: 30},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	plan, ok := format["action_plan"].(models.JSONB)
	require.True(t, ok)
	restock, ok := plan["buy_now"].([]restockItem)
	require.True(t, ok)
	require.Len(t, restock, 1)

	assert.Equal(t, "Tea", restock[0].Item)
	// 建议量为近期销量的30%
	assert.Equal(t, "30 units", restock[0].Quantity)
	assert.Contains(t, restock[0].Reason, "Only 10 left")
}

func TestGuidanceClearListDiscountDeepens(t *testing.T) {
	input := GuidanceInput{
		DeadStock: []models.DeadStockRow{
			{ProductID: "P001", ProductName: "Stale", DaysSinceSale: 100, CurrentStock: 5, EstimatedValue: 500},
			{ProductID: "P002", ProductName: "Ancient", DaysSinceSale: 200, CurrentStock: 5, EstimatedValue: 2000},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	plan := format["action_plan"].(models.JSONB)
	cut, ok := plan["cut_these"].([]clearItem)
	require.True(t, ok)
	require.Len(t, cut, 2)

	// 按积压价值降序
	assert.Equal(t, "Ancient", cut[0].Item)
	assert.Contains(t, cut[0].Suggestion, "25-30%")
	assert.Contains(t, cut[1].Suggestion, "15-20%")
}

func TestGuidancePromoteExcludesTopSellers(t *testing.T) {
	input := GuidanceInput{
		BestSellers: []models.BestSellerRow{
			{ProductID: "P001", ProductName: "Tea", TotalQuantity: 100},
		},
		Profitability: []models.ProfitabilityRow{
			{ProductID: "P001", ProductName: "Tea", ProfitMargin: 40, Revenue: 10000},
			{ProductID: "P002", ProductName: "Honey", ProfitMargin: 35, Revenue: 5000},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	plan := format["action_plan"].(models.JSONB)
	promote, ok := plan["promote_these"].([]promoteItem)
	require.True(t, ok)
	require.Len(t, promote, 1)

	assert.Equal(t, "Honey", promote[0].Item)
	assert.Equal(t, "35.0%", promote[0].Margin)
}

func TestGuidanceSeasonalTip(t *testing.T) {
	input := GuidanceInput{
		Seasonal: []models.SeasonalityRow{
			{ProductID: "P001", ProductName: "Umbrella", SeasonalityScore: 0.8, PeakMonths: []int{8}},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	plan := format["action_plan"].(models.JSONB)
	tip, ok := plan["seasonal_tip"].(string)
	require.True(t, ok)

	assert.Contains(t, tip, "Umbrella")
	assert.Contains(t, tip, "Aug")
	assert.Contains(t, tip, "80%")
}

func TestGuidanceForecastUsesTrend(t *testing.T) {
	prev := "2024-05"
	prevValue := 1000.0
	input := GuidanceInput{
		BestSellers: []models.BestSellerRow{
			{ProductID: "P001", ProductName: "Tea", TotalQuantity: 600},
		},
		Trends: []models.TrendPoint{
			{Month: prev, Value: 1000},
			{Month: "2024-06", Value: 1200, ChangePercent: 20, Trend: "up", PreviousMonth: &prev, PreviousValue: &prevValue},
		},
	}

	c := SynthesizeGuidance(input, DefaultThresholds(), guidanceNow)
	format := guidanceFormat(t, c)
	forecast, ok := format["forecast"].(string)
	require.True(t, ok)

	assert.Contains(t, forecast, "trending up")
	assert.Contains(t, forecast, "20.0%")
	// 日均600/30=20件，超过10件给稳态叙述
	assert.Contains(t, forecast, fmt.Sprintf("~%.0f units/day", 20.0))
}

func TestGuidanceRestockLimitEnforced(t *testing.T) {
	th := DefaultThresholds()
	th.TopSellerCount = 20

	input := GuidanceInput{}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("P%03d", i)
		input.BestSellers = append(input.BestSellers, models.BestSellerRow{
			ProductID: id, ProductName: id, TotalQuantity: 100,
		})
		input.Inventory = append(input.Inventory, models.InventoryVelocityRow{
			ProductID: id, CurrentStock: 5, AvgDailySales: 4, DaysOfStock: 1.25, ReorderScore: float64(50 + i),
		})
	}

	c := SynthesizeGuidance(input, th, guidanceNow)
	format := guidanceFormat(t, c)
	plan := format["action_plan"].(models.JSONB)
	restock := plan["buy_now"].([]restockItem)

	assert.Len(t, restock, th.GuidanceRestockLimit)
	// 补货分最高的排最前
	assert.Equal(t, "P011", restock[0].Item)
}
