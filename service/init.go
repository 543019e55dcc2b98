/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、缓存后端选择、服务装配与后台组件启动
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 应用启动时执行初始化流程：数据库 -> 迁移 -> 缓存 -> 服务装配 -> 调度器/监听器
 * @rules 确保所有依赖服务正常启动后才提供API服务；Redis不可用时降级为内存缓存
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs main.go, api/routes.go
 */

package service

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"insight-service/service/analytics"
	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/event"
	"insight-service/service/insights"
	"insight-service/service/scheduler"
)

var (
	DB                     *gorm.DB
	GlobalCache            cache.Store
	GlobalAnalyticsService *analytics.Service
	GlobalInsightEngine    *insights.Engine
	GlobalInsightStore     database.InsightStore
	GlobalRuleScriptStore  database.RuleScriptStore
	GlobalDatasetListener  *event.DatasetListener
	GlobalScheduler        *scheduler.InsightScheduler
)

func init() {
	initDatabase()
	runMigrations()
	initCache()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库表结构迁移完成")
}

// initCache 初始化缓存后端，Redis不可用时降级为进程内缓存
func initCache() {
	redisStore, err := cache.NewRedisStore()
	if err != nil {
		log.Printf("Redis连接失败，降级为内存缓存: %v", err)
		GlobalCache = cache.NewMemoryStore()
		return
	}
	GlobalCache = redisStore
	log.Println("Redis缓存连接成功")
}

// initServices 初始化服务
func initServices() {
	recordStore := database.NewGormRecordStore(DB)
	GlobalInsightStore = database.NewGormInsightStore(DB)
	GlobalRuleScriptStore = database.NewGormRuleScriptStore(DB)

	GlobalAnalyticsService = analytics.NewService(recordStore, GlobalCache)

	// Kafka发布器允许为nil（未配置时跳过事件发布）
	var publisher insights.EventPublisher
	if kafkaPublisher := event.NewKafkaPublisherFromEnv(); kafkaPublisher != nil {
		publisher = kafkaPublisher
	}

	GlobalInsightEngine = insights.NewEngine(
		GlobalAnalyticsService,
		insights.NewQualityCalculator(recordStore),
		GlobalInsightStore,
		GlobalRuleScriptStore,
		publisher,
	)

	// 数据集变更监听，经分析服务驱动缓存失效
	GlobalDatasetListener = event.NewDatasetListener(GlobalAnalyticsService)
	if err := GlobalDatasetListener.Start(); err != nil {
		log.Printf("数据集变更监听器启动失败: %v", err)
	}

	// 定时刷新auto_refresh数据集的洞察
	GlobalScheduler = scheduler.NewInsightScheduler(DB, GlobalInsightEngine)
	if err := GlobalScheduler.Start(); err != nil {
		log.Printf("洞察定时调度器启动失败: %v", err)
	}

	log.Println("服务初始化完成")
}
