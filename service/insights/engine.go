/*
 * @module service/insights/engine
 * @description 洞察生成引擎：编排分析视图加载、规则评估、置信度评分与原子替换持久化
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 加载分析视图 -> 综合指导置顶 -> 固定规则+脚本规则评估 -> 统一评分 -> 单事务替换写入 -> 事件发布
 * @rules 持久化失败对本次遍历致命但可安全重试；脚本规则失败与事件发布失败只记日志不中断；生成结果不含跨数据集数据
 * @dependencies insight-service/service/analytics, insight-service/service/database, insight-service/service/monitoring
 * @refs api/controllers/insight_controller.go, service/scheduler
 */

package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"insight-service/service/analytics"
	"insight-service/service/database"
	"insight-service/service/models"
	"insight-service/service/monitoring"
)

// EventPublisher 生成完成事件发布接口，nil实现表示不发布
type EventPublisher interface {
	PublishInsightsGenerated(ctx context.Context, datasetID string, count int) error
}

// Engine 洞察生成引擎
type Engine struct {
	analytics  *analytics.Service
	quality    *QualityCalculator
	insights   database.InsightStore
	scripts    database.RuleScriptStore
	executor   *ScriptExecutor
	publisher  EventPublisher
	thresholds Thresholds
	now        func() time.Time
}

// NewEngine 创建洞察生成引擎，publisher 和 scripts 允许为nil
func NewEngine(
	analyticsService *analytics.Service,
	quality *QualityCalculator,
	insightStore database.InsightStore,
	scriptStore database.RuleScriptStore,
	publisher EventPublisher,
) *Engine {
	return &Engine{
		analytics:  analyticsService,
		quality:    quality,
		insights:   insightStore,
		scripts:    scriptStore,
		executor:   NewScriptExecutor(),
		publisher:  publisher,
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
}

// SetNowFunc 注入时间源，供确定性测试使用
func (e *Engine) SetNowFunc(now func() time.Time) {
	e.now = now
}

// SetThresholds 覆盖默认阈值
func (e *Engine) SetThresholds(th Thresholds) {
	e.thresholds = th
}

// GenerateInsights 为数据集生成全部洞察并原子替换历史集合
// 整个遍历幂等：同一快照重复执行产生相同的洞察集合
func (e *Engine) GenerateInsights(ctx context.Context, datasetID string) ([]models.Insight, error) {
	log.Printf("开始生成洞察, dataset_id=%s", datasetID)
	th := e.thresholds
	now := e.now()

	// 加载全部分析视图
	deadStock, err := e.analytics.ComputeDeadStock(ctx, datasetID, th.DeadStockDays)
	if err != nil {
		return nil, e.failPass(fmt.Errorf("加载滞销视图失败: %w", err))
	}
	seasonal, err := e.analytics.ComputeSeasonality(ctx, datasetID, 0.3)
	if err != nil {
		return nil, e.failPass(fmt.Errorf("加载季节性视图失败: %w", err))
	}
	bestSellers, err := e.analytics.ComputeBestSellers(ctx, datasetID, 20, "", analytics.SortByQuantity)
	if err != nil {
		return nil, e.failPass(fmt.Errorf("加载畅销视图失败: %w", err))
	}
	profitability, err := e.analytics.ComputeProfitability(ctx, datasetID)
	if err != nil {
		return nil, e.failPass(fmt.Errorf("加载盈利视图失败: %w", err))
	}
	inventory, err := e.analytics.ComputeInventoryVelocity(ctx, datasetID)
	if err != nil {
		return nil, e.failPass(fmt.Errorf("加载库存周转视图失败: %w", err))
	}

	// 趋势视图仅供报告叙述使用，失败降级为无趋势
	trends, err := e.analytics.ComputeTrends(ctx, datasetID, "revenue", 6)
	if err != nil {
		log.Printf("加载趋势视图失败，报告将不含趋势叙述: %v", err)
		trends = nil
	}

	// 综合指导置顶
	candidates := []models.InsightCandidate{
		SynthesizeGuidance(GuidanceInput{
			BestSellers:   bestSellers,
			DeadStock:     deadStock,
			Profitability: profitability,
			Inventory:     inventory,
			Seasonal:      seasonal,
			Trends:        trends,
		}, th, now),
	}

	// 固定规则评估
	candidates = append(candidates, EvaluateDeadStockRule(deadStock, th)...)
	candidates = append(candidates, EvaluateSeasonalPeakRule(seasonal, th, now)...)
	candidates = append(candidates, EvaluateHighVelocityLowStockRule(bestSellers, inventory, th)...)
	candidates = append(candidates, EvaluateLowMarginRule(profitability, th)...)
	candidates = append(candidates, EvaluateHighProfitOpportunity(profitability, bestSellers, th)...)
	candidates = append(candidates, EvaluateProfitConcentration(bestSellers, profitability, th)...)

	// 自定义脚本规则评估，单脚本失败不中断遍历
	candidates = append(candidates, e.evaluateScriptRules(ctx, datasetID, map[string]interface{}{
		"best_sellers":       bestSellers,
		"dead_stock":         deadStock,
		"profitability":      profitability,
		"inventory_velocity": inventory,
		"seasonality":        seasonal,
		"trends":             trends,
	})...)

	// 统一评分：规则给出的层级会被质量加权分覆盖
	quality := e.quality.Calculate(ctx, datasetID)
	insights := make([]models.Insight, 0, len(candidates))
	for _, c := range candidates {
		insights = append(insights, models.Insight{
			DatasetID:         datasetID,
			InsightID:         c.InsightID,
			Title:             c.Title,
			Category:          c.Category,
			Confidence:        ScoreConfidence(c, quality),
			SupportingMetrics: c.SupportingMetrics,
			RecommendedAction: c.RecommendedAction,
			GeneratedAt:       now,
			IsActive:          true,
		})
	}

	if err := e.insights.ReplaceInsights(ctx, datasetID, insights); err != nil {
		return nil, e.failPass(fmt.Errorf("洞察持久化失败: %w", err))
	}
	monitoring.GenerationPasses.WithLabelValues("success").Inc()

	// 事件发布非致命
	if e.publisher != nil {
		if err := e.publisher.PublishInsightsGenerated(ctx, datasetID, len(insights)); err != nil {
			log.Printf("洞察生成事件发布失败: %v", err)
		}
	}

	log.Printf("洞察生成完成, dataset_id=%s, count=%d", datasetID, len(insights))
	return insights, nil
}

// evaluateScriptRules 加载并执行启用的自定义脚本规则
func (e *Engine) evaluateScriptRules(ctx context.Context, datasetID string, views map[string]interface{}) []models.InsightCandidate {
	if e.scripts == nil {
		return nil
	}

	scripts, err := e.scripts.ListEnabledScripts(ctx, datasetID)
	if err != nil {
		log.Printf("加载规则脚本失败: %v", err)
		return nil
	}
	if len(scripts) == 0 {
		return nil
	}

	rows, err := viewsToRows(views)
	if err != nil {
		log.Printf("分析视图序列化失败: %v", err)
		return nil
	}

	candidates := make([]models.InsightCandidate, 0)
	for _, script := range scripts {
		result, err := e.executor.Execute(script.Script, rows)
		if err != nil {
			log.Printf("规则脚本 %s 执行失败: %v", script.Name, err)
			continue
		}
		candidates = append(candidates, result...)
	}
	return candidates
}

// viewsToRows 把类型化分析行转换为脚本可消费的通用字典行
func viewsToRows(views map[string]interface{}) (map[string][]map[string]interface{}, error) {
	rows := make(map[string][]map[string]interface{}, len(views))
	for name, view := range views {
		if view == nil {
			rows[name] = nil
			continue
		}
		raw, err := json.Marshal(view)
		if err != nil {
			return nil, fmt.Errorf("视图 %s 序列化失败: %w", name, err)
		}
		var converted []map[string]interface{}
		if err := json.Unmarshal(raw, &converted); err != nil {
			return nil, fmt.Errorf("视图 %s 反序列化失败: %w", name, err)
		}
		rows[name] = converted
	}
	return rows, nil
}

// failPass 记录失败遍历打点并透传错误
func (e *Engine) failPass(err error) error {
	monitoring.GenerationPasses.WithLabelValues("failure").Inc()
	return err
}

// ValidateScript 校验自定义规则脚本语法
func (e *Engine) ValidateScript(script string) error {
	return e.executor.Validate(script)
}
