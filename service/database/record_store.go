/*
 * @module service/database/record_store
 * @description 记录存储访问器，提供按数据集的销售/库存记录只读查询
 * @architecture 数据访问层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 分析计算器发起查询 -> 按数据集过滤 -> 返回记录快照
 * @rules 所有查询严格限定在单个dataset_id内，杜绝跨数据集泄漏；大结果集必须设置行数上限
 * @dependencies insight-service/service/models, gorm.io/gorm
 * @refs service/analytics
 */

package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"insight-service/service/models"
)

// SalesFilter 销售记录查询过滤条件
type SalesFilter struct {
	ProductID string     // 等值过滤
	From      *time.Time // 含下界
	To        *time.Time // 不含上界
	Period    string     // 日历月过滤，YYYY-MM
	OrderDesc bool       // 按日期降序
	Limit     int        // 行数上限，0表示不限制
}

// SalesQualityStats 销售记录质量统计
type SalesQualityStats struct {
	TotalRows      int64 `json:"total_rows"`
	UniqueProducts int64 `json:"unique_products"`
	UniqueDates    int64 `json:"unique_dates"`
	NullNames      int64 `json:"null_names"`
	NullAmounts    int64 `json:"null_amounts"`
	NullQuantities int64 `json:"null_quantities"`
}

// RecordStore 记录存储只读访问接口
type RecordStore interface {
	QuerySales(ctx context.Context, datasetID string, filter SalesFilter) ([]models.SalesRecord, error)
	QueryInventory(ctx context.Context, datasetID string) ([]models.InventoryRecord, error)
	QualityStats(ctx context.Context, datasetID string) (*SalesQualityStats, error)
}

// GormRecordStore 基于gorm的记录存储实现
type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore 创建记录存储实例
func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// QuerySales 查询销售记录
func (s *GormRecordStore) QuerySales(ctx context.Context, datasetID string, filter SalesFilter) ([]models.SalesRecord, error) {
	query := s.db.WithContext(ctx).Where("dataset_id = ?", datasetID)

	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}
	if filter.Period != "" {
		// 日历月过滤：解析YYYY-MM为[月初, 下月初)区间
		start, err := time.Parse("2006-01", filter.Period)
		if err != nil {
			return nil, fmt.Errorf("无效的期间格式 %s: %w", filter.Period, err)
		}
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if filter.OrderDesc {
		query = query.Order("date DESC")
	} else {
		query = query.Order("date ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []models.SalesRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询销售记录失败: %w", err)
	}
	return records, nil
}

// QueryInventory 查询库存记录
func (s *GormRecordStore) QueryInventory(ctx context.Context, datasetID string) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	err := s.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询库存记录失败: %w", err)
	}
	return records, nil
}

// QualityStats 聚合销售记录质量统计
func (s *GormRecordStore) QualityStats(ctx context.Context, datasetID string) (*SalesQualityStats, error) {
	var stats SalesQualityStats
	err := s.db.WithContext(ctx).
		Model(&models.SalesRecord{}).
		Select(`COUNT(*) as total_rows,
			COUNT(DISTINCT product_name) as unique_products,
			COUNT(DISTINCT date) as unique_dates,
			SUM(CASE WHEN product_name IS NULL OR product_name = '' THEN 1 ELSE 0 END) as null_names,
			SUM(CASE WHEN total_amount IS NULL OR total_amount = 0 THEN 1 ELSE 0 END) as null_amounts,
			SUM(CASE WHEN quantity IS NULL OR quantity = 0 THEN 1 ELSE 0 END) as null_quantities`).
		Where("dataset_id = ?", datasetID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("聚合质量统计失败: %w", err)
	}
	return &stats, nil
}
