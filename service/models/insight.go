/*
 * @module service/models/insight
 * @description 洞察模型与候选洞察中间表示定义
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 规则评估产生候选 -> 置信度评分 -> 原子替换持久化
 * @rules 一次生成遍历会替换该数据集全部历史洞察；confidence 只能取 low/medium/high
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/insights, service/database/insight_store.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 洞察类别
const (
	InsightCategoryRisk       = "risk"
	InsightCategoryGrowth     = "growth"
	InsightCategoryEfficiency = "efficiency"
	InsightCategoryGuidance   = "guidance"
)

// 置信度层级
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Insight 洞察模型，一条面向店主的可执行建议
type Insight struct {
	ID                string    `gorm:"type:uuid;primary_key" json:"id"`
	DatasetID         string    `gorm:"type:uuid;not null;index" json:"dataset_id"`
	InsightID         string    `gorm:"not null;index" json:"insight_id"` // 规则+实体的稳定标识
	Title             string    `gorm:"not null" json:"title"`
	Category          string    `gorm:"not null" json:"category"`   // risk/growth/efficiency/guidance
	Confidence        string    `gorm:"not null" json:"confidence"` // low/medium/high
	SupportingMetrics JSONB     `gorm:"type:jsonb" json:"supporting_metrics"`
	RecommendedAction string    `gorm:"type:text" json:"recommended_action"`
	GeneratedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"generated_at"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate 创建前钩子
func (i *Insight) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.GeneratedAt.IsZero() {
		i.GeneratedAt = time.Now()
	}
	return nil
}

// InsightCandidate 候选洞察，规则评估器的输出，尚未评分
type InsightCandidate struct {
	InsightID         string  `json:"insight_id"`
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	SupportingMetrics JSONB   `json:"supporting_metrics"`
	RecommendedAction string  `json:"recommended_action"`
	MatchStrength     float64 `json:"match_strength"` // 模式匹配强度 [0,1]
	Significance      float64 `json:"significance"`   // 业务量级 [0,1]
}

// DataQuality 数据质量信号，仅供置信度评分器消费
type DataQuality struct {
	Completeness   float64 `json:"completeness"`
	Validity       float64 `json:"validity"`
	Recency        float64 `json:"recency"`
	Overall        float64 `json:"overall"`
	TotalRows      int64   `json:"total_rows"`
	UniqueProducts int64   `json:"unique_products"`
	UniqueDates    int64   `json:"unique_dates"`
}
