/*
 * @module service/database/rule_script_store
 * @description 自定义规则脚本存储，管理店主上传的洞察规则脚本
 * @architecture 数据访问层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 脚本增删改查 -> 生成遍历时加载启用脚本（全局+数据集专属）
 * @rules dataset_id 为空的脚本对所有数据集生效；仅加载 is_enabled 的脚本
 * @dependencies insight-service/service/models, gorm.io/gorm
 * @refs service/insights/engine.go, api/controllers/insight_controller.go
 */

package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"insight-service/service/models"
)

// RuleScriptStore 规则脚本存储接口
type RuleScriptStore interface {
	ListEnabledScripts(ctx context.Context, datasetID string) ([]models.InsightRuleScript, error)
	SaveScript(ctx context.Context, script *models.InsightRuleScript) error
	DeleteScript(ctx context.Context, id string) error
}

// GormRuleScriptStore 基于gorm的规则脚本存储实现
type GormRuleScriptStore struct {
	db *gorm.DB
}

// NewGormRuleScriptStore 创建规则脚本存储实例
func NewGormRuleScriptStore(db *gorm.DB) *GormRuleScriptStore {
	return &GormRuleScriptStore{db: db}
}

// ListEnabledScripts 加载对指定数据集生效的启用脚本（全局脚本+数据集专属脚本）
func (s *GormRuleScriptStore) ListEnabledScripts(ctx context.Context, datasetID string) ([]models.InsightRuleScript, error) {
	var scripts []models.InsightRuleScript
	err := s.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Where("dataset_id IS NULL OR dataset_id = ?", datasetID).
		Order("created_at ASC").
		Find(&scripts).Error
	if err != nil {
		return nil, fmt.Errorf("查询规则脚本失败: %w", err)
	}
	return scripts, nil
}

// SaveScript 创建或更新规则脚本
func (s *GormRuleScriptStore) SaveScript(ctx context.Context, script *models.InsightRuleScript) error {
	if err := s.db.WithContext(ctx).Save(script).Error; err != nil {
		return fmt.Errorf("保存规则脚本失败: %w", err)
	}
	return nil
}

// DeleteScript 删除规则脚本
func (s *GormRuleScriptStore) DeleteScript(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InsightRuleScript{}).Error; err != nil {
		return fmt.Errorf("删除规则脚本失败: %w", err)
	}
	return nil
}
