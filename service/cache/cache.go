/*
 * @module service/cache/cache
 * @description 分析结果缓存层接口定义，按(dataset_id, metric_key)记忆化表格结果
 * @architecture 分层架构 - 缓存层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 计算前读取 -> 未命中时计算 -> 写回缓存 -> 数据集变更时显式失效
 * @rules 缓存命中必须等价于写入时的重新计算；调用方必须把所有影响输出的参数编码进key；无自动过期
 * @dependencies context
 * @refs service/analytics, service/event
 */

package cache

import (
	"context"
	"fmt"
	"strings"
)

// Store 缓存存储接口
// Read 未命中时返回 (false, nil)；读取错误由调用方降级为重新计算
type Store interface {
	Read(ctx context.Context, datasetID, key string, out interface{}) (bool, error)
	Write(ctx context.Context, datasetID, key string, value interface{}) error
	// Delete 删除指定key的缓存；key为空时清除该数据集的全部缓存
	Delete(ctx context.Context, datasetID, key string) error
}

// BuildKey 构造度量缓存key，所有影响输出的参数必须编码进key
func BuildKey(metric string, params ...interface{}) string {
	if len(params) == 0 {
		return metric
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, metric)
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%v", p))
	}
	return strings.Join(parts, "_")
}
