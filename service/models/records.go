/*
 * @module service/models/records
 * @description 原始销售/库存记录与数据集模型定义，数据集是一次上传的记录批次
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 数据集上传 -> 记录入库(不可变) -> 分析计算消费
 * @rules 销售记录入库后不可变；库存记录按(dataset_id, product_id)最新写入生效
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/database/record_store.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dataset 数据集模型，一次上传的销售/库存记录批次
type Dataset struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Status      string    `gorm:"not null;default:'ready'" json:"status"` // ready/processing/deleted
	RowCount    int64     `gorm:"not null;default:0" json:"row_count"`
	AutoRefresh bool      `gorm:"not null;default:false" json:"auto_refresh"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate 创建前钩子
func (d *Dataset) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// SalesRecord 单笔销售记录，入库后不可变
type SalesRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID     string    `gorm:"type:uuid;not null;index" json:"dataset_id"`
	Date          time.Time `gorm:"not null;index" json:"date"`
	ProductID     string    `gorm:"not null;index" json:"product_id"`
	ProductName   string    `gorm:"not null" json:"product_name"`
	Category      string    `json:"category"`
	Quantity      float64   `gorm:"not null;default:0" json:"quantity"`
	UnitPrice     float64   `gorm:"not null;default:0" json:"unit_price"`
	TotalAmount   float64   `gorm:"not null;default:0" json:"total_amount"`
	CustomerID    string    `json:"customer_id"`
	TransactionID string    `json:"transaction_id"`
}

// InventoryRecord 库存记录，每个(dataset_id, product_id)一条逻辑行
type InventoryRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_dataset_product" json:"dataset_id"`
	ProductID    string    `gorm:"not null;uniqueIndex:idx_inventory_dataset_product" json:"product_id"`
	ProductName  string    `gorm:"not null" json:"product_name"`
	Category     string    `json:"category"`
	CurrentStock float64   `gorm:"not null;default:0" json:"current_stock"`
	UnitCost     float64   `gorm:"not null;default:0" json:"unit_cost"`
	LastUpdated  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_updated"`
}

// InsightRuleScript 自定义洞察规则脚本，由yaegi解释执行
// 脚本必须提供 Evaluate(rows map[string][]map[string]interface{}) []map[string]interface{} 入口
type InsightRuleScript struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	DatasetID *string   `gorm:"type:uuid;index" json:"dataset_id"` // 为空表示对所有数据集生效
	Script    string    `gorm:"type:text;not null" json:"script"`
	IsEnabled bool      `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate 创建前钩子
func (s *InsightRuleScript) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
