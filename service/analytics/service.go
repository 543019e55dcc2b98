/*
 * @module service/analytics/service
 * @description 分析计算服务，聚合11个派生视图计算器并统一缓存与打点
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 缓存读取 -> 未命中时从记录存储加载快照 -> 纯函数计算 -> 写回缓存
 * @rules 无行数据返回空结果而非错误；快照不变时计算幂等；缓存读失败降级为重新计算，写失败记录日志后吞掉
 * @dependencies insight-service/service/database, insight-service/service/cache
 * @refs service/insights/engine.go, api/controllers/analytics_controller.go
 */

package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/monitoring"
)

// Service 分析计算服务
type Service struct {
	store database.RecordStore
	cache cache.Store
	now   func() time.Time
}

// NewService 创建分析计算服务
func NewService(store database.RecordStore, cacheStore cache.Store) *Service {
	return &Service{
		store: store,
		cache: cacheStore,
		now:   time.Now,
	}
}

// SetNowFunc 注入时间源，供确定性测试使用
func (s *Service) SetNowFunc(now func() time.Time) {
	s.now = now
}

// InvalidateDataset 清除数据集的全部缓存条目，数据集变更/删除时调用
func (s *Service) InvalidateDataset(ctx context.Context, datasetID string) error {
	return s.cache.Delete(ctx, datasetID, "")
}

// readCache 读缓存，读失败降级为未命中
func (s *Service) readCache(ctx context.Context, datasetID, key string, out interface{}) bool {
	hit, err := s.cache.Read(ctx, datasetID, key, out)
	if err != nil {
		slog.Warn("缓存读取失败，降级为重新计算",
			"dataset_id", datasetID,
			"key", key,
			"error", err)
		return false
	}
	return hit
}

// writeCache 写缓存，写失败记录日志后吞掉
func (s *Service) writeCache(ctx context.Context, datasetID, key string, value interface{}) {
	if err := s.cache.Write(ctx, datasetID, key, value); err != nil {
		slog.Warn("缓存写入失败",
			"dataset_id", datasetID,
			"key", key,
			"error", err)
	}
}

// observeCompute 记录视图计算耗时
func observeCompute(view string, start time.Time) {
	monitoring.ComputeDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// sampleStdDev 样本标准差（n-1），样本数不足2时返回0
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := meanOf(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// meanOf 算术平均，空切片返回0
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// linearSlope 最小二乘拟合斜率，x取0..n-1，点数不足2时返回0
func linearSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := meanOf(values)
	var num, den float64
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// topMonths 将月份聚合map按给定比较函数排序后取前count个月份，结果按月份升序
func topMonths(byMonth map[int]float64, count int, largest bool) []int {
	type mv struct {
		month int
		value float64
	}
	items := make([]mv, 0, len(byMonth))
	for m, v := range byMonth {
		items = append(items, mv{m, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].value == items[j].value {
			return items[i].month < items[j].month
		}
		if largest {
			return items[i].value > items[j].value
		}
		return items[i].value < items[j].value
	})
	if count > len(items) {
		count = len(items)
	}
	months := make([]int, 0, count)
	for _, it := range items[:count] {
		months = append(months, it.month)
	}
	sort.Ints(months)
	return months
}

// daysBetween 两个时间点之间的整天数（截断）
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
