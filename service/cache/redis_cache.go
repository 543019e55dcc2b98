/*
 * @module service/cache/redis_cache
 * @description 基于Redis的分析结果缓存实现，JSON序列化存储
 * @architecture 分层架构 - 缓存层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 连接Redis -> JSON读写 -> SCAN匹配批量失效
 * @rules 无自动过期；并发写同一key为最后写入者胜；读失败不致命
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/cache/cache.go
 */

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"insight-service/service/monitoring"
)

// RedisStore Redis缓存实现
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建Redis缓存，从环境变量读取连接配置
func NewRedisStore() (*RedisStore, error) {
	host := getEnvWithDefault("REDIS_HOST", "localhost")
	port := getEnvWithDefault("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")
	db := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		fmt.Sscanf(dbStr, "%d", &db)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	slog.Info("Redis缓存初始化成功",
		"redis_host", host,
		"redis_port", port)

	return &RedisStore{client: client}, nil
}

// cacheKey 生成Redis键: analytics:{dataset_id}:{metric_key}
func (s *RedisStore) cacheKey(datasetID, key string) string {
	return fmt.Sprintf("analytics:%s:%s", datasetID, key)
}

// Read 读取缓存，未命中返回(false, nil)
func (s *RedisStore) Read(ctx context.Context, datasetID, key string, out interface{}) (bool, error) {
	data, err := s.client.Get(ctx, s.cacheKey(datasetID, key)).Bytes()
	if err == redis.Nil {
		monitoring.CacheOps.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		monitoring.CacheOps.WithLabelValues("error").Inc()
		return false, fmt.Errorf("读取缓存失败: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// 缓存内容损坏，视为未命中由调用方重新计算
		monitoring.CacheOps.WithLabelValues("error").Inc()
		return false, fmt.Errorf("缓存反序列化失败: %w", err)
	}

	monitoring.CacheOps.WithLabelValues("hit").Inc()
	return true, nil
}

// Write 写入缓存，不设置过期时间
func (s *RedisStore) Write(ctx context.Context, datasetID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("缓存序列化失败: %w", err)
	}

	if err := s.client.Set(ctx, s.cacheKey(datasetID, key), data, 0).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存，key为空时SCAN匹配清除该数据集全部条目
func (s *RedisStore) Delete(ctx context.Context, datasetID, key string) error {
	if key != "" {
		if err := s.client.Del(ctx, s.cacheKey(datasetID, key)).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
		return nil
	}

	pattern := fmt.Sprintf("analytics:%s:*", datasetID)
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("批量删除缓存失败: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存键失败: %w", err)
	}
	return nil
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
