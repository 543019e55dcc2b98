/*
 * @module service/scheduler/insight_scheduler
 * @description 洞察定时调度器，按cron表达式为开启自动刷新的数据集重新生成洞察
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 定时触发 -> 查询auto_refresh数据集 -> 逐个执行生成遍历
 * @rules 单数据集生成失败不影响其余数据集；调度表达式由环境变量覆盖
 * @dependencies github.com/robfig/cron/v3, insight-service/service/insights
 * @refs service/insights/engine.go, main.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"insight-service/service/insights"
	"insight-service/service/models"
)

// 默认每天凌晨3点刷新（秒级cron表达式）
const defaultRefreshSpec = "0 0 3 * * *"

// InsightScheduler 洞察定时调度器
type InsightScheduler struct {
	db     *gorm.DB
	engine *insights.Engine
	cron   *cron.Cron
}

// NewInsightScheduler 创建洞察定时调度器
func NewInsightScheduler(db *gorm.DB, engine *insights.Engine) *InsightScheduler {
	return &InsightScheduler{
		db:     db,
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start 注册刷新任务并启动调度
func (s *InsightScheduler) Start() error {
	spec := os.Getenv("INSIGHT_REFRESH_CRON")
	if spec == "" {
		spec = defaultRefreshSpec
	}

	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return fmt.Errorf("注册洞察刷新任务失败: %w", err)
	}

	s.cron.Start()
	log.Printf("洞察定时调度器已启动, spec=%s", spec)
	return nil
}

// refreshAll 为全部开启自动刷新的数据集重新生成洞察
func (s *InsightScheduler) refreshAll() {
	var datasets []models.Dataset
	err := s.db.
		Where("auto_refresh = ? AND status = ?", true, "ready").
		Find(&datasets).Error
	if err != nil {
		log.Printf("查询自动刷新数据集失败: %v", err)
		return
	}
	if len(datasets) == 0 {
		return
	}

	log.Printf("开始定时刷新 %d 个数据集的洞察", len(datasets))
	for _, dataset := range datasets {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if _, err := s.engine.GenerateInsights(ctx, dataset.ID); err != nil {
			log.Printf("数据集 %s 洞察刷新失败: %v", dataset.ID, err)
		}
		cancel()
	}
}

// Stop 停止调度并等待在途任务结束
func (s *InsightScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("洞察定时调度器已停止")
}
