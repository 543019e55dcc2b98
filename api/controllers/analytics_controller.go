/*
 * @module api/controllers/analytics_controller
 * @description 分析视图控制器，暴露11个派生分析视图的查询接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow HTTP请求处理流程：参数解析 -> 分析服务计算 -> 统一响应封装
 * @rules 无数据返回空结果而非错误；非法参数取默认值或返回400
 * @dependencies insight-service/service, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs api/routes.go, service/analytics
 */

package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"insight-service/service"
	"insight-service/service/analytics"
	"insight-service/service/utils"
)

// AnalyticsController 分析视图控制器
type AnalyticsController struct {
	analytics *analytics.Service
}

// NewAnalyticsController 创建分析视图控制器实例
func NewAnalyticsController() *AnalyticsController {
	return &AnalyticsController{
		analytics: service.GlobalAnalyticsService,
	}
}

// analyticsEnvelope 分析视图响应外壳
type analyticsEnvelope struct {
	DatasetID     string      `json:"dataset_id"`
	AnalyticsType string      `json:"analytics_type"`
	Extra         interface{} `json:"extra,omitempty"`
	Results       interface{} `json:"results"`
}

// queryInt 解析整型查询参数，缺失或非法时取默认值
func queryInt(r *http.Request, key string, def int) int {
	return utils.ToIntOr(r.URL.Query().Get(key), def)
}

// queryFloat 解析浮点查询参数，缺失、非法或非有限时取默认值
func queryFloat(r *http.Request, key string, def float64) float64 {
	return utils.ToFloatOr(r.URL.Query().Get(key), def)
}

// GetBestSellers 获取畅销商品排行
// @Summary 畅销商品排行
// @Description 按销量或收入排序的商品排行，支持按日历月过滤
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param limit query int false "返回条数" default(10)
// @Param period query string false "期间过滤(YYYY-MM)"
// @Param sort_by query string false "排序字段: quantity或revenue" default(quantity)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/best-sellers [get]
func (c *AnalyticsController) GetBestSellers(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	limit := queryInt(r, "limit", 10)
	period := r.URL.Query().Get("period")
	sortBy := r.URL.Query().Get("sort_by")
	if sortBy == "" {
		sortBy = analytics.SortByQuantity
	}
	if sortBy != analytics.SortByQuantity && sortBy != analytics.SortByRevenue {
		render.JSON(w, r, BadRequestResponse("无效的排序字段", fmt.Errorf("sort_by必须为quantity或revenue: %s", sortBy)))
		return
	}

	results, err := c.analytics.ComputeBestSellers(r.Context(), datasetID, limit, period, sortBy)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("畅销商品计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "best_sellers",
		Extra:         map[string]interface{}{"period": period, "sort_by": sortBy},
		Results:       results,
	}))
}

// GetRevenueContribution 获取收入贡献分析
// @Summary 收入贡献分析
// @Description 按商品的收入占比排行，占比基于全量商品集计算
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/revenue-contribution [get]
func (c *AnalyticsController) GetRevenueContribution(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	limit := queryInt(r, "limit", 20)

	result, err := c.analytics.ComputeRevenueContribution(r.Context(), datasetID, limit)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("收入贡献计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "revenue_contribution",
		Extra:         map[string]interface{}{"total_revenue": result.TotalRevenue},
		Results:       result.Results,
	}))
}

// GetSeasonality 获取季节性商品分析
// @Summary 季节性商品分析
// @Description 基于变异系数识别季节性商品及其旺季/淡季月份
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param min_seasonality_score query number false "季节性得分下限" default(0.3)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/seasonality [get]
func (c *AnalyticsController) GetSeasonality(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	minScore := queryFloat(r, "min_seasonality_score", 0.3)

	results, err := c.analytics.ComputeSeasonality(r.Context(), datasetID, minScore)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("季节性计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "seasonality",
		Results:       results,
	}))
}

// GetInventoryVelocity 获取库存周转分析
// @Summary 库存周转分析
// @Description 年化周转率、日均销量、可售天数与补货评分
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/inventory-velocity [get]
func (c *AnalyticsController) GetInventoryVelocity(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")

	results, err := c.analytics.ComputeInventoryVelocity(r.Context(), datasetID)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("库存周转计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "inventory_velocity",
		Results:       results,
	}))
}

// GetDeadStock 获取滞销库存分析
// @Summary 滞销库存分析
// @Description 超过阈值天数无销售的库存商品及积压价值
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param days_threshold query int false "无销售天数阈值" default(90)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/dead-stock [get]
func (c *AnalyticsController) GetDeadStock(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	daysThreshold := queryInt(r, "days_threshold", 90)

	results, err := c.analytics.ComputeDeadStock(r.Context(), datasetID, daysThreshold)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("滞销库存计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "dead_stock",
		Extra:         map[string]interface{}{"threshold_days": daysThreshold},
		Results:       results,
	}))
}

// GetProfitability 获取盈利能力排行
// @Summary 盈利能力排行
// @Description 按毛利率降序的商品盈利排行
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/profitability [get]
func (c *AnalyticsController) GetProfitability(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")

	results, err := c.analytics.ComputeProfitability(r.Context(), datasetID)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("盈利能力计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "profitability",
		Results:       results,
	}))
}

// GetTrends 获取月度趋势分析
// @Summary 月度趋势分析
// @Description 收入/销量/利润的月环比趋势
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param metric query string false "指标: revenue/quantity/profit" default(revenue)
// @Param months query int false "回溯月数" default(6)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/trends [get]
func (c *AnalyticsController) GetTrends(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "revenue"
	}
	months := queryInt(r, "months", 6)

	results, err := c.analytics.ComputeTrends(r.Context(), datasetID, metric, months)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("趋势计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "trends",
		Extra:         map[string]interface{}{"metric": metric},
		Results:       results,
	}))
}

// GetDailySales 获取日销售分析
// @Summary 日销售分析
// @Description 指定日历月的逐日销售序列，无交易日零值填充
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param year query int true "年份"
// @Param month query int true "月份(1-12)"
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/daily-sales [get]
func (c *AnalyticsController) GetDailySales(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	year := queryInt(r, "year", 0)
	month := queryInt(r, "month", 0)
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		render.JSON(w, r, BadRequestResponse("无效的年月参数", fmt.Errorf("year=%d, month=%d", year, month)))
		return
	}

	results, err := c.analytics.ComputeDailySales(r.Context(), datasetID, year, month)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("日销售计算失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "daily_sales",
		Extra:         map[string]interface{}{"year": year, "month": month},
		Results:       results,
	}))
}

// GetSalesForecast 获取销量预测
// @Summary 销量预测
// @Description 移动平均+衰减趋势外推的未来销量预测
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param days_ahead query int false "预测天数" default(7)
// @Param product_id query string false "仅预测指定商品"
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/forecast [get]
func (c *AnalyticsController) GetSalesForecast(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	daysAhead := queryInt(r, "days_ahead", 7)
	productID := r.URL.Query().Get("product_id")

	result, err := c.analytics.ComputeSalesForecast(r.Context(), datasetID, daysAhead, productID)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("销量预测失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "sales_forecast",
		Results:       result,
	}))
}

// GetAnomalies 获取销量异常检测
// @Summary 销量异常检测
// @Description 基于z分数识别日销量尖峰与骤降
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param threshold query number false "z分数阈值" default(2.0)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/anomalies [get]
func (c *AnalyticsController) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	threshold := queryFloat(r, "threshold", 2.0)

	results, err := c.analytics.ComputeAnomalies(r.Context(), datasetID, threshold)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("异常检测失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "anomaly_detection",
		Extra:         map[string]interface{}{"threshold": threshold},
		Results:       results,
	}))
}

// GetDemandPrediction 获取单商品需求预测
// @Summary 需求预测
// @Description 预测单商品未来需求并给出含安全缓冲的建议备货量
// @Tags 分析
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param product_id path string true "商品ID"
// @Param days_ahead query int false "预测天数" default(30)
// @Success 200 {object} APIResponse
// @Router /api/v1/analytics/{dataset_id}/demand/{product_id} [get]
func (c *AnalyticsController) GetDemandPrediction(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	productID := chi.URLParam(r, "product_id")
	daysAhead := queryInt(r, "days_ahead", 30)

	result, err := c.analytics.ComputeDemandPrediction(r.Context(), datasetID, productID, daysAhead)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("需求预测失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", analyticsEnvelope{
		DatasetID:     datasetID,
		AnalyticsType: "demand_prediction",
		Results:       result,
	}))
}
