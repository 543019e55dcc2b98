/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"insight-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Dataset{},
		&models.SalesRecord{},
		&models.InventoryRecord{},
		&models.Insight{},
		&models.InsightRuleScript{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	// 清空所有表的数据
	tables := []string{
		"datasets",
		"sales_records",
		"inventory_records",
		"insights",
		"insight_rule_scripts",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// DatasetOption 数据集选项函数类型
type DatasetOption func(*models.Dataset)

// CreateDataset 创建测试数据集
func (f *TestDataFactory) CreateDataset(opts ...DatasetOption) *models.Dataset {
	dataset := &models.Dataset{
		ID:        uuid.New().String(),
		Name:      "测试数据集",
		Status:    "ready",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(dataset)
	}

	if err := f.DB.Create(dataset).Error; err != nil {
		panic(fmt.Sprintf("failed to create test dataset: %v", err))
	}

	return dataset
}

// SalesRecordOption 销售记录选项函数类型
type SalesRecordOption func(*models.SalesRecord)

// CreateSalesRecord 创建测试销售记录
func (f *TestDataFactory) CreateSalesRecord(datasetID string, opts ...SalesRecordOption) *models.SalesRecord {
	record := &models.SalesRecord{
		DatasetID:   datasetID,
		Date:        time.Now().AddDate(0, 0, -1),
		ProductID:   "P001",
		ProductName: "测试商品",
		Category:    "general",
		Quantity:    1,
		UnitPrice:   10,
		TotalAmount: 10,
	}

	// 应用选项
	for _, opt := range opts {
		opt(record)
	}

	if err := f.DB.Create(record).Error; err != nil {
		panic(fmt.Sprintf("failed to create test sales record: %v", err))
	}

	return record
}

// CreateSale 创建单笔销售记录的便捷工厂
func (f *TestDataFactory) CreateSale(datasetID, productID, productName string, date time.Time, quantity, unitPrice float64) *models.SalesRecord {
	return f.CreateSalesRecord(datasetID, func(r *models.SalesRecord) {
		r.ProductID = productID
		r.ProductName = productName
		r.Date = date
		r.Quantity = quantity
		r.UnitPrice = unitPrice
		r.TotalAmount = quantity * unitPrice
	})
}

// InventoryRecordOption 库存记录选项函数类型
type InventoryRecordOption func(*models.InventoryRecord)

// CreateInventoryRecord 创建测试库存记录
func (f *TestDataFactory) CreateInventoryRecord(datasetID, productID string, opts ...InventoryRecordOption) *models.InventoryRecord {
	record := &models.InventoryRecord{
		DatasetID:    datasetID,
		ProductID:    productID,
		ProductName:  "测试商品",
		Category:     "general",
		CurrentStock: 100,
		UnitCost:     5,
		LastUpdated:  time.Now(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(record)
	}

	if err := f.DB.Create(record).Error; err != nil {
		panic(fmt.Sprintf("failed to create test inventory record: %v", err))
	}

	return record
}

// CreateInsight 创建测试洞察
func (f *TestDataFactory) CreateInsight(datasetID, insightID, category, confidence string) *models.Insight {
	insight := &models.Insight{
		DatasetID:         datasetID,
		InsightID:         insightID,
		Title:             "测试洞察",
		Category:          category,
		Confidence:        confidence,
		SupportingMetrics: models.JSONB{},
		RecommendedAction: "测试建议",
		GeneratedAt:       time.Now(),
		IsActive:          true,
	}

	if err := f.DB.Create(insight).Error; err != nil {
		panic(fmt.Sprintf("failed to create test insight: %v", err))
	}

	return insight
}
