/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"insight-service/api/controllers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 分析视图
	r.Route("/api/v1/analytics", func(r chi.Router) {
		analyticsController := controllers.NewAnalyticsController()
		r.Route("/{dataset_id}", func(r chi.Router) {
			r.Get("/best-sellers", analyticsController.GetBestSellers)
			r.Get("/revenue-contribution", analyticsController.GetRevenueContribution)
			r.Get("/seasonality", analyticsController.GetSeasonality)
			r.Get("/inventory-velocity", analyticsController.GetInventoryVelocity)
			r.Get("/dead-stock", analyticsController.GetDeadStock)
			r.Get("/profitability", analyticsController.GetProfitability)
			r.Get("/trends", analyticsController.GetTrends)
			r.Get("/daily-sales", analyticsController.GetDailySales)
			r.Get("/forecast", analyticsController.GetSalesForecast)
			r.Get("/anomalies", analyticsController.GetAnomalies)
			r.Get("/demand/{product_id}", analyticsController.GetDemandPrediction)
		})
	})

	// 洞察与规则脚本
	r.Route("/api/v1/insights", func(r chi.Router) {
		insightController := controllers.NewInsightController()
		r.Post("/rule-scripts", insightController.SaveRuleScript)
		r.Delete("/rule-scripts/{id}", insightController.DeleteRuleScript)
		r.Get("/{dataset_id}", insightController.ListInsights)
		r.Post("/{dataset_id}/generate", insightController.GenerateInsights)
		r.Get("/{dataset_id}/{insight_id}", insightController.GetInsight)
	})
}
