/*
 * @module service/models/analytics
 * @description 分析视图结果行的类型化中间表示，替代松散的字典结构
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 分析计算器产出 -> 缓存序列化 -> 规则评估/报告合成消费
 * @rules 所有数值输出必须为有限值；可空字段显式使用指针而非缺省键
 * @dependencies 无
 * @refs service/analytics, service/insights
 */

package models

// BestSellerRow 畅销商品行
type BestSellerRow struct {
	ProductName   string  `json:"product_name"`
	ProductID     string  `json:"product_id"`
	Category      string  `json:"category"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	Rank          int     `json:"rank"`
}

// RevenueContributionRow 收入贡献行，percentage 为占全量收入的百分比
type RevenueContributionRow struct {
	ProductName string  `json:"product_name"`
	ProductID   string  `json:"product_id"`
	Category    string  `json:"category"`
	Revenue     float64 `json:"revenue"`
	Percentage  float64 `json:"percentage"`
	Rank        int     `json:"rank"`
}

// RevenueContribution 收入贡献结果，total_revenue 基于未截断的全量商品集
type RevenueContribution struct {
	TotalRevenue float64                  `json:"total_revenue"`
	Results      []RevenueContributionRow `json:"results"`
}

// SeasonalityRow 季节性商品行，月份取1-12（跨年聚合）
type SeasonalityRow struct {
	ProductName      string  `json:"product_name"`
	ProductID        string  `json:"product_id"`
	Category         string  `json:"category"`
	SeasonalityScore float64 `json:"seasonality_score"`
	PeakMonths       []int   `json:"peak_months"`
	LowMonths        []int   `json:"low_months"`
}

// InventoryVelocityRow 库存周转行
type InventoryVelocityRow struct {
	ProductName   string  `json:"product_name"`
	ProductID     string  `json:"product_id"`
	VelocityScore string  `json:"velocity_score"` // high/medium/low
	TurnoverRate  float64 `json:"turnover_rate"`  // 年化销量
	AvgDailySales float64 `json:"avg_daily_sales"`
	DaysActive    int     `json:"days_active"`
	DaysOfStock   float64 `json:"days_of_stock"` // 无日均销量时为哨兵值999
	ReorderScore  float64 `json:"reorder_score"` // [0,100]
	CurrentStock  float64 `json:"current_stock"`
	DaysSinceSale int     `json:"days_since_sale"`
}

// DeadStockRow 滞销库存行
type DeadStockRow struct {
	ProductName    string  `json:"product_name"`
	ProductID      string  `json:"product_id"`
	Category       string  `json:"category"`
	DaysSinceSale  int     `json:"days_since_sale"`
	CurrentStock   float64 `json:"current_stock"`
	UnitCost       float64 `json:"unit_cost"`
	EstimatedValue float64 `json:"estimated_value"`
}

// ProfitabilityRow 盈利能力行
type ProfitabilityRow struct {
	ProductName  string  `json:"product_name"`
	ProductID    string  `json:"product_id"`
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"` // 百分比，收入为0时取0
	Rank         int     `json:"rank"`
}

// TrendPoint 月度趋势点，按时间升序返回
type TrendPoint struct {
	Month         string   `json:"month"` // YYYY-MM
	Value         float64  `json:"value"`
	ChangePercent float64  `json:"change_percent"`
	Trend         string   `json:"trend"` // up/down/stable
	PreviousMonth *string  `json:"previous_month"`
	PreviousValue *float64 `json:"previous_value"`
}

// DailySalesPoint 日销售点，无交易日零值填充
type DailySalesPoint struct {
	Day      int     `json:"day"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Value    float64 `json:"value"`
	Quantity float64 `json:"quantity"`
}

// ForecastPoint 单日销量预测点
type ForecastPoint struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	PredictedQuantity float64 `json:"predicted_quantity"`
	PredictedRevenue  float64 `json:"predicted_revenue"`
	Confidence        string  `json:"confidence"` // low/medium/high
	Method            string  `json:"method"`
}

// ForecastProductSummary 单商品预测摘要
type ForecastProductSummary struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	MA7         float64 `json:"ma_7"`
	MA14        float64 `json:"ma_14"`
	TrendSlope  float64 `json:"trend_slope"`
	Confidence  string  `json:"confidence"`
}

// ForecastResult 销量预测结果
type ForecastResult struct {
	Predictions []ForecastPoint          `json:"predictions"`
	Products    []ForecastProductSummary `json:"products"`
	Method      string                   `json:"method"` // moving_average_with_trend/insufficient_data
	Confidence  string                   `json:"confidence"`
	DaysAhead   int                      `json:"days_ahead"`
}

// AnomalyPoint 销量异常点
type AnomalyPoint struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	Type             string  `json:"type"` // spike/drop
	ObservedQuantity float64 `json:"observed_quantity"`
	ExpectedQuantity float64 `json:"expected_quantity"`
	DeviationPercent float64 `json:"deviation_percent"`
	ZScore           float64 `json:"z_score"`
	Severity         string  `json:"severity"` // medium/high
}

// DemandPrediction 单商品需求预测，recommended_stock 含50%安全缓冲
type DemandPrediction struct {
	ProductID        string  `json:"product_id"`
	PredictedDemand  float64 `json:"predicted_demand"`
	AvgDailyDemand   float64 `json:"avg_daily_demand"`
	RecommendedStock int     `json:"recommended_stock"`
	Confidence       string  `json:"confidence"`
	Method           string  `json:"method"`
	DaysAhead        int     `json:"days_ahead"`
	Message          string  `json:"message,omitempty"`
}
