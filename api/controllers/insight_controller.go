/*
 * @module api/controllers/insight_controller
 * @description 洞察控制器，提供洞察查询、强制生成与自定义规则脚本管理接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow HTTP请求处理流程：参数解析 -> 引擎/存储调用 -> 统一响应封装
 * @rules 洞察列表按置信度高者优先排序；生成接口幂等可重试
 * @dependencies insight-service/service, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs api/routes.go, service/insights/engine.go
 */

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"insight-service/service"
	"insight-service/service/database"
	"insight-service/service/insights"
	"insight-service/service/models"
)

// InsightController 洞察控制器
type InsightController struct {
	engine  *insights.Engine
	store   database.InsightStore
	scripts database.RuleScriptStore
}

// NewInsightController 创建洞察控制器实例
func NewInsightController() *InsightController {
	return &InsightController{
		engine:  service.GlobalInsightEngine,
		store:   service.GlobalInsightStore,
		scripts: service.GlobalRuleScriptStore,
	}
}

// ListInsights 获取数据集的洞察列表
// @Summary 洞察列表
// @Description 查询数据集的活跃洞察，置信度高者优先，同级按生成时间降序
// @Tags 洞察
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param category query string false "类别过滤: risk/growth/efficiency/guidance"
// @Param confidence query string false "置信度过滤: low/medium/high"
// @Param limit query int false "返回条数" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} PaginatedResponse
// @Router /api/v1/insights/{dataset_id} [get]
func (c *InsightController) ListInsights(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	filter := database.InsightFilter{
		Category:   r.URL.Query().Get("category"),
		Confidence: r.URL.Query().Get("confidence"),
		Limit:      queryInt(r, "limit", 50),
		Offset:     queryInt(r, "offset", 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	results, total, err := c.store.ListInsights(r.Context(), datasetID, filter)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询洞察失败", err))
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: 0,
		Msg:    "查询成功",
		Data: map[string]interface{}{
			"dataset_id": datasetID,
			"insights":   results,
		},
		Total: total,
		Page:  filter.Offset/filter.Limit + 1,
		Size:  filter.Limit,
	})
}

// GetInsight 获取单条洞察
// @Summary 洞察详情
// @Description 按稳定标识查询单条洞察
// @Tags 洞察
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Param insight_id path string true "洞察稳定标识"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/insights/{dataset_id}/{insight_id} [get]
func (c *InsightController) GetInsight(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")
	insightID := chi.URLParam(r, "insight_id")

	insight, err := c.store.GetInsight(r.Context(), datasetID, insightID)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询洞察失败", err))
		return
	}
	if insight == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, NotFoundResponse("洞察不存在", fmt.Errorf("insight_id: %s", insightID)))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", insight))
}

// GenerateInsights 强制生成数据集的洞察
// @Summary 生成洞察
// @Description 为数据集执行一次完整的洞察生成遍历，原子替换历史洞察集合
// @Tags 洞察
// @Produce json
// @Param dataset_id path string true "数据集ID"
// @Success 200 {object} APIResponse
// @Router /api/v1/insights/{dataset_id}/generate [post]
func (c *InsightController) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "dataset_id")

	results, err := c.engine.GenerateInsights(r.Context(), datasetID)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("生成洞察失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("生成成功", map[string]interface{}{
		"dataset_id":         datasetID,
		"insights_generated": len(results),
		"insights":           results,
	}))
}

// RuleScriptRequest 规则脚本创建/更新请求
type RuleScriptRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DatasetID *string `json:"dataset_id"`
	Script    string  `json:"script"`
	IsEnabled bool    `json:"is_enabled"`
}

// SaveRuleScript 创建或更新自定义规则脚本
// @Summary 保存规则脚本
// @Description 保存自定义洞察规则脚本，保存前校验脚本语法
// @Tags 洞察
// @Accept json
// @Produce json
// @Param script body RuleScriptRequest true "规则脚本"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/v1/insights/rule-scripts [post]
func (c *InsightController) SaveRuleScript(w http.ResponseWriter, r *http.Request) {
	var req RuleScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求体解析失败", err))
		return
	}
	if req.Name == "" || req.Script == "" {
		render.JSON(w, r, BadRequestResponse("脚本名称和内容不能为空", nil))
		return
	}

	// 入库前校验语法，避免生成遍历时才发现脚本损坏
	if err := c.engine.ValidateScript(req.Script); err != nil {
		render.JSON(w, r, BadRequestResponse("脚本校验失败", err))
		return
	}

	script := &models.InsightRuleScript{
		ID:        req.ID,
		Name:      req.Name,
		DatasetID: req.DatasetID,
		Script:    req.Script,
		IsEnabled: req.IsEnabled,
	}
	if err := c.scripts.SaveScript(r.Context(), script); err != nil {
		render.JSON(w, r, InternalErrorResponse("保存规则脚本失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("保存成功", script))
}

// DeleteRuleScript 删除自定义规则脚本
// @Summary 删除规则脚本
// @Tags 洞察
// @Produce json
// @Param id path string true "脚本ID"
// @Success 200 {object} APIResponse
// @Router /api/v1/insights/rule-scripts/{id} [delete]
func (c *InsightController) DeleteRuleScript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.scripts.DeleteScript(r.Context(), id); err != nil {
		render.JSON(w, r, InternalErrorResponse("删除规则脚本失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("删除成功", nil))
}
