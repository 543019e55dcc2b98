/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新数据库表结构
 * @architecture 数据访问层 - 迁移管理
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies insight-service/service/models, gorm.io/gorm
 * @refs service/init.go
 */

package database

import (
	"insight-service/service/models"
	"log"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 原始记录相关表
	err := db.AutoMigrate(
		&models.Dataset{},
		&models.SalesRecord{},
		&models.InventoryRecord{},
	)
	if err != nil {
		return err
	}

	// 洞察相关表
	err = db.AutoMigrate(
		&models.Insight{},
		&models.InsightRuleScript{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}
