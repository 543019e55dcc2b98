/*
 * @module service/insights/script_rules
 * @description 自定义脚本规则执行器：通过Yaegi解释器运行店主自定义的Go脚本规则，支持缓存和上下文注入
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 脚本哈希查缓存 -> 未命中则编译 -> 注入分析上下文 -> 执行Evaluate -> 映射为候选洞察
 * @rules 脚本必须实现 Evaluate(rows map[string][]map[string]interface{}) []map[string]interface{}；单脚本失败只记日志不中断生成遍历
 * @dependencies github.com/traefik/yaegi, insight-service/service/utils
 * @refs service/insights/engine.go, service/models/records.go
 */

package insights

import (
	"crypto/sha1"
	"fmt"
	"sync"
	"time"

	"insight-service/service/models"
	"insight-service/service/utils"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ScriptExecutor 脚本规则执行器，按脚本内容哈希缓存编译结果
type ScriptExecutor struct {
	mu    sync.RWMutex
	cache map[string]*compiledRule
}

// compiledRule 编译后的脚本规则
type compiledRule struct {
	fn       func(map[string][]map[string]interface{}) []map[string]interface{}
	compiled time.Time
	hash     string
}

// NewScriptExecutor 创建脚本规则执行器
func NewScriptExecutor() *ScriptExecutor {
	return &ScriptExecutor{
		cache: make(map[string]*compiledRule),
	}
}

// Execute 执行脚本规则，rows 为视图名到分析结果行的映射
func (e *ScriptExecutor) Execute(script string, rows map[string][]map[string]interface{}) ([]models.InsightCandidate, error) {
	hash := fmt.Sprintf("%x", sha1.Sum([]byte(script)))

	e.mu.RLock()
	compiled, ok := e.cache[hash]
	e.mu.RUnlock()

	if !ok {
		var err error
		compiled, err = e.compile(script, hash)
		if err != nil {
			return nil, fmt.Errorf("脚本编译失败: %v", err)
		}

		e.mu.Lock()
		e.cache[hash] = compiled
		e.mu.Unlock()
	}

	results := compiled.fn(rows)
	return mapCandidates(results), nil
}

// compile 编译脚本为可执行函数
func (e *ScriptExecutor) compile(script, hash string) (*compiledRule, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("加载标准库失败: %w", err)
	}

	// 包装脚本：要求脚本必须实现一个 Evaluate 函数作为入口
	wrapped := fmt.Sprintf(`
package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// 预引用常用包，脚本未使用时不报未使用导入
var (
	_ = fmt.Sprintf
	_ = math.Abs
	_ = sort.Strings
	_ = strings.Contains
	_ = time.Now
)

%s
`, script)

	if _, err := i.Eval(wrapped); err != nil {
		return nil, fmt.Errorf("脚本编译失败: %w", err)
	}

	v, err := i.Eval("Evaluate")
	if err != nil {
		return nil, fmt.Errorf("脚本缺少 Evaluate 函数: %w", err)
	}

	fn, ok := v.Interface().(func(map[string][]map[string]interface{}) []map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("Evaluate 函数签名必须是 func(map[string][]map[string]interface{}) []map[string]interface{}")
	}

	return &compiledRule{
		fn:       fn,
		compiled: time.Now(),
		hash:     hash,
	}, nil
}

// Validate 验证脚本语法（快速校验，不执行）
func (e *ScriptExecutor) Validate(script string) error {
	_, err := e.compile(script, "")
	return err
}

// ClearCache 清理编译缓存
func (e *ScriptExecutor) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*compiledRule)
}

// CacheStats 获取编译缓存统计
func (e *ScriptExecutor) CacheStats() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return map[string]interface{}{
		"cache_size": len(e.cache),
	}
}

// mapCandidates 把脚本返回的字典映射为候选洞察，缺失字段取零值
func mapCandidates(results []map[string]interface{}) []models.InsightCandidate {
	candidates := make([]models.InsightCandidate, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}

		category := utils.ToString(r["category"])
		switch category {
		case models.InsightCategoryRisk, models.InsightCategoryGrowth,
			models.InsightCategoryEfficiency, models.InsightCategoryGuidance:
		default:
			category = models.InsightCategoryEfficiency
		}

		var metrics models.JSONB
		if m, ok := r["supporting_metrics"].(map[string]interface{}); ok {
			metrics = models.JSONB(m)
		}

		candidates = append(candidates, models.InsightCandidate{
			InsightID:         utils.ToString(r["insight_id"]),
			Title:             utils.ToString(r["title"]),
			Category:          category,
			SupportingMetrics: metrics,
			RecommendedAction: utils.ToString(r["recommended_action"]),
			MatchStrength:     utils.ToFiniteFloat(r["match_strength"]),
			Significance:      utils.ToFiniteFloat(r["significance"]),
		})
	}
	return candidates
}
