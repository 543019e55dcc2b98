/*
 * @module service/models/test_utils
 * @description 模型测试辅助工具
 * @architecture 测试基础设施 - 专门为模型测试提供工具
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 避免循环导入，专门为模型层测试提供工具
 * @dependencies gorm, sqlite, time
 */

package models

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ModelTestDB 模型测试数据库配置
type ModelTestDB struct {
	DB *gorm.DB
}

// NewModelTestDB 创建模型测试数据库
func NewModelTestDB() *ModelTestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&Dataset{},
		&SalesRecord{},
		&InventoryRecord{},
		&Insight{},
		&InsightRuleScript{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &ModelTestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *ModelTestDB) CleanDB() {
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
func (tdb *ModelTestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}
