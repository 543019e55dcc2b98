/*
 * @module service/cache/memory_cache
 * @description 进程内缓存实现，供测试和无Redis的开发环境使用
 * @architecture 分层架构 - 缓存层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow JSON读写 -> 前缀匹配批量失效
 * @rules 并发读安全；并发写同一key为最后写入者胜
 * @dependencies sync, encoding/json
 * @refs service/cache/cache.go
 */

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore 进程内缓存实现
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore 创建进程内缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (s *MemoryStore) entryKey(datasetID, key string) string {
	return datasetID + ":" + key
}

// Read 读取缓存，未命中返回(false, nil)
func (s *MemoryStore) Read(ctx context.Context, datasetID, key string, out interface{}) (bool, error) {
	s.mu.RLock()
	data, ok := s.entries[s.entryKey(datasetID, key)]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("缓存反序列化失败: %w", err)
	}
	return true, nil
}

// Write 写入缓存
func (s *MemoryStore) Write(ctx context.Context, datasetID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("缓存序列化失败: %w", err)
	}

	s.mu.Lock()
	s.entries[s.entryKey(datasetID, key)] = data
	s.mu.Unlock()
	return nil
}

// Delete 删除缓存，key为空时清除该数据集全部条目
func (s *MemoryStore) Delete(ctx context.Context, datasetID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		delete(s.entries, s.entryKey(datasetID, key))
		return nil
	}

	prefix := datasetID + ":"
	for k := range s.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
	return nil
}
