/*
 * @module service/database/insight_store
 * @description 洞察持久化存储，提供按数据集的原子替换写入与过滤读取
 * @architecture 数据访问层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 生成遍历完成 -> 单事务内删除旧集合并写入新集合 -> 按置信度排序读取
 * @rules 替换写入必须原子：调用方永远不能同时观察到新旧两套洞察；写入失败对该遍历致命但可安全重试
 * @dependencies insight-service/service/models, gorm.io/gorm
 * @refs service/insights/engine.go
 */

package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"insight-service/service/models"
)

// InsightFilter 洞察查询过滤条件
type InsightFilter struct {
	Category   string
	Confidence string
	Limit      int
	Offset     int
}

// InsightStore 洞察持久化接口
type InsightStore interface {
	ReplaceInsights(ctx context.Context, datasetID string, insights []models.Insight) error
	ListInsights(ctx context.Context, datasetID string, filter InsightFilter) ([]models.Insight, int64, error)
	GetInsight(ctx context.Context, datasetID, insightID string) (*models.Insight, error)
}

// GormInsightStore 基于gorm的洞察存储实现
type GormInsightStore struct {
	db *gorm.DB
}

// NewGormInsightStore 创建洞察存储实例
func NewGormInsightStore(db *gorm.DB) *GormInsightStore {
	return &GormInsightStore{db: db}
}

// ReplaceInsights 原子替换数据集的全部洞察
// 删除与写入在同一事务内提交，保证读者不会看到新旧混合的集合
func (s *GormInsightStore) ReplaceInsights(ctx context.Context, datasetID string, insights []models.Insight) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dataset_id = ?", datasetID).Delete(&models.Insight{}).Error; err != nil {
			return fmt.Errorf("删除历史洞察失败: %w", err)
		}
		if len(insights) == 0 {
			return nil
		}
		if err := tx.Create(&insights).Error; err != nil {
			return fmt.Errorf("写入洞察失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("洞察替换事务失败: %w", err)
	}
	return nil
}

// ListInsights 按过滤条件读取洞察，置信度高者优先，同级按生成时间降序
func (s *GormInsightStore) ListInsights(ctx context.Context, datasetID string, filter InsightFilter) ([]models.Insight, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Insight{}).
		Where("dataset_id = ? AND is_active = ?", datasetID, true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Confidence != "" {
		query = query.Where("confidence = ?", filter.Confidence)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计洞察数量失败: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var insights []models.Insight
	err := query.
		Order("CASE confidence WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END").
		Order("generated_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&insights).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询洞察失败: %w", err)
	}
	return insights, total, nil
}

// GetInsight 按稳定标识读取单条洞察
func (s *GormInsightStore) GetInsight(ctx context.Context, datasetID, insightID string) (*models.Insight, error) {
	var insight models.Insight
	err := s.db.WithContext(ctx).
		Where("dataset_id = ? AND insight_id = ? AND is_active = ?", datasetID, insightID, true).
		First(&insight).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询洞察失败: %w", err)
	}
	return &insight, nil
}
