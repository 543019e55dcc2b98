/*
 * @module service/monitoring/metrics
 * @description Prometheus指标定义，覆盖缓存命中率、分析计算耗时与洞察生成
 * @architecture 工具层 - 可观测性
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 指标注册 -> 业务代码打点 -> /metrics暴露
 * @rules 指标在包初始化时注册一次，由promhttp统一暴露
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go, service/cache, service/analytics
 */

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheOps 缓存操作计数，result取hit/miss/error
	CacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_cache_ops_total",
		Help: "分析结果缓存操作计数",
	}, []string{"result"})

	// ComputeDuration 各分析视图计算耗时
	ComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "insight_compute_duration_seconds",
		Help:    "分析视图计算耗时",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	// GenerationPasses 洞察生成遍历计数，status取success/error
	GenerationPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_generation_passes_total",
		Help: "洞察生成遍历计数",
	}, []string{"status"})
)
