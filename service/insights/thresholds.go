/*
 * @module service/insights/thresholds
 * @description 启发式规则阈值配置，集中管理全部魔法数字及其默认值
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 默认值构造 -> 注入规则评估器与报告合成器
 * @rules 默认值必须与线上输出保持一致，改动任何阈值都会改变洞察结果
 * @dependencies 无
 * @refs service/insights/engine.go
 */

package insights

// Thresholds 洞察规则阈值集合
// 各默认值为运营沉淀的经验值，无推导依据，调整前需评审
type Thresholds struct {
	// 滞销风险
	DeadStockDays         int // 无销售天数阈值
	DeadStockCriticalDays int // 高置信滞销天数阈值

	// 季节性机会
	SeasonalMinScore         float64 // 季节性得分下限
	SeasonalPeakWindowMonths int     // 旺季临近窗口（月）

	// 畅销低库存
	TopSellerCount int     // 畅销榜范围
	LowStockRatio  float64 // 库存/近期销量比下限

	// 毛利规则
	LowMarginPercent     float64 // 低毛利率阈值（%）
	LowMarginMinRevenue  float64 // 低毛利规则的收入下限
	HighMarginPercent    float64 // 高毛利率阈值（%）
	HighMarginMinRevenue float64 // 高毛利机会的收入下限

	// 利润集中度
	ConcentrationTopCount     int     // 考察的畅销商品数
	ConcentrationMinLowMargin int     // 低毛利商品数下限
	ConcentrationMinRevenue   float64 // 合计收入下限

	// 报告合成
	GuidanceRestockLimit    int     // 补货清单上限
	GuidancePromoteLimit    int     // 推广清单上限
	GuidanceClearLimit      int     // 清仓清单上限
	GuidancePromoteRevenue  float64 // 推广清单的收入下限
	GuidanceRestockStockPct float64 // 库存/销量比的补货触发线
	RestockDaysOfStock      float64 // 可售天数的补货触发线
}

// DefaultThresholds 默认阈值，与历史输出对齐
func DefaultThresholds() Thresholds {
	return Thresholds{
		DeadStockDays:         90,
		DeadStockCriticalDays: 180,

		SeasonalMinScore:         0.6,
		SeasonalPeakWindowMonths: 2,

		TopSellerCount: 10,
		LowStockRatio:  0.1,

		LowMarginPercent:     10,
		LowMarginMinRevenue:  10000,
		HighMarginPercent:    20,
		HighMarginMinRevenue: 5000,

		ConcentrationTopCount:     5,
		ConcentrationMinLowMargin: 3,
		ConcentrationMinRevenue:   50000,

		GuidanceRestockLimit:    8,
		GuidancePromoteLimit:    5,
		GuidanceClearLimit:      5,
		GuidancePromoteRevenue:  3000,
		GuidanceRestockStockPct: 0.2,
		RestockDaysOfStock:      14,
	}
}
