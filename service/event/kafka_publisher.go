/*
 * @module service/event/kafka_publisher
 * @description Kafka事件发布器，洞察生成完成后向消息总线广播通知
 * @architecture 事件驱动架构 - 适配器模式，封装第三方Kafka客户端
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 生成遍历完成 -> 事件序列化 -> 写入topic
 * @rules KAFKA_BROKERS未配置时发布器为空实现；发布失败由调用方记日志，不影响生成结果
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/insights/engine.go
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// InsightsGeneratedEvent 洞察生成完成事件
type InsightsGeneratedEvent struct {
	DatasetID    string    `json:"dataset_id"`
	InsightCount int       `json:"insight_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// KafkaPublisher Kafka事件发布器
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisherFromEnv 从环境变量创建Kafka发布器
// KAFKA_BROKERS 未配置时返回nil，调用方据此跳过事件发布
func NewKafkaPublisherFromEnv() *KafkaPublisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("KAFKA_BROKERS未配置，洞察事件发布已禁用")
		return nil
	}

	topic := os.Getenv("KAFKA_INSIGHT_TOPIC")
	if topic == "" {
		topic = "insight-events"
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
	}

	log.Printf("Kafka事件发布器已启用, brokers=%s, topic=%s", brokers, topic)
	return &KafkaPublisher{writer: writer}
}

// PublishInsightsGenerated 发布洞察生成完成事件
func (p *KafkaPublisher) PublishInsightsGenerated(ctx context.Context, datasetID string, count int) error {
	payload, err := json.Marshal(InsightsGeneratedEvent{
		DatasetID:    datasetID,
		InsightCount: count,
		GeneratedAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("事件序列化失败: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(datasetID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("事件写入Kafka失败: %w", err)
	}
	return nil
}

// Close 关闭底层writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
