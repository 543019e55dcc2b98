/*
 * @module service/event/dataset_listener
 * @description 数据集变更监听器，通过PostgreSQL LISTEN/NOTIFY感知记录变化并清除派生缓存
 * @architecture 事件驱动架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 数据库通知 -> 解析数据集ID -> 经分析服务失效该数据集全部缓存条目
 * @rules 通知载荷为数据集ID（或含dataset_id字段的JSON）；监听断开由pq自动重连；缓存清除失败只记日志
 * @dependencies github.com/lib/pq
 * @refs service/analytics/service.go, service/cache
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
)

const datasetChangeChannel = "dataset_changed"

// CacheInvalidator 数据集缓存失效接口，由分析服务实现
type CacheInvalidator interface {
	InvalidateDataset(ctx context.Context, datasetID string) error
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DatasetListener 数据集变更监听器
type DatasetListener struct {
	invalidator CacheInvalidator
	listener    *pq.Listener
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewDatasetListener 创建数据集变更监听器
func NewDatasetListener(invalidator CacheInvalidator) *DatasetListener {
	ctx, cancel := context.WithCancel(context.Background())
	return &DatasetListener{
		invalidator: invalidator,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start 建立监听连接并启动通知处理循环
func (l *DatasetListener) Start() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	l.listener = pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("PostgreSQL监听器事件: %v, 错误: %v", ev, err)
		}
	})

	if err := l.listener.Listen(datasetChangeChannel); err != nil {
		return fmt.Errorf("监听数据集变更通知失败: %w", err)
	}

	go l.run()
	log.Printf("数据集变更监听器已启动, channel=%s", datasetChangeChannel)
	return nil
}

// run 通知处理循环
func (l *DatasetListener) run() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case notification := <-l.listener.Notify:
			if notification == nil {
				// 连接重建后pq发送nil通知
				continue
			}
			l.handleNotification(notification.Extra)
		case <-time.After(90 * time.Second):
			// 长时间无通知时主动探活
			if err := l.listener.Ping(); err != nil {
				log.Printf("监听器探活失败: %v", err)
			}
		}
	}
}

// handleNotification 解析通知载荷并清除对应数据集的缓存
func (l *DatasetListener) handleNotification(payload string) {
	datasetID := payload

	// 载荷可能是裸ID，也可能是含dataset_id字段的JSON
	var parsed struct {
		DatasetID string `json:"dataset_id"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err == nil && parsed.DatasetID != "" {
		datasetID = parsed.DatasetID
	}
	if datasetID == "" {
		log.Printf("数据集变更通知载荷为空，忽略")
		return
	}

	ctx, cancel := context.WithTimeout(l.ctx, 10*time.Second)
	defer cancel()
	if err := l.invalidator.InvalidateDataset(ctx, datasetID); err != nil {
		log.Printf("数据集 %s 缓存清除失败: %v", datasetID, err)
		return
	}
	log.Printf("数据集 %s 缓存已清除", datasetID)
}

// Stop 停止监听
func (l *DatasetListener) Stop() {
	l.cancel()
	if l.listener != nil {
		l.listener.Close()
	}
}
