/*
 * @module service/cache/memory_cache_test
 * @description 进程内缓存测试：命中语义、数据集隔离与前缀失效
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 写入 -> 读取 -> 失效 -> 再读取
 * @rules 未命中返回(false, nil)而非错误；按数据集失效不影响其他数据集
 * @dependencies testing, testify
 * @refs memory_cache.go, cache.go
 */

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMissReturnsFalseNil(t *testing.T) {
	store := NewMemoryStore()

	var out []string
	found, err := store.Read(context.Background(), "ds1", "best_sellers", &out)
	assert.False(t, found)
	assert.NoError(t, err)
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type row struct {
		ProductID string  `json:"product_id"`
		Quantity  float64 `json:"quantity"`
	}
	written := []row{{ProductID: "P001", Quantity: 42}}

	require.NoError(t, store.Write(ctx, "ds1", "best_sellers_10", written))

	var out []row
	found, err := store.Read(ctx, "ds1", "best_sellers_10", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, written, out)
}

func TestMemoryStoreDeleteSingleKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "ds1", "a", 1))
	require.NoError(t, store.Write(ctx, "ds1", "b", 2))

	require.NoError(t, store.Delete(ctx, "ds1", "a"))

	var out int
	found, _ := store.Read(ctx, "ds1", "a", &out)
	assert.False(t, found)
	found, _ = store.Read(ctx, "ds1", "b", &out)
	assert.True(t, found)
}

func TestMemoryStoreDeleteDatasetPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "ds1", "a", 1))
	require.NoError(t, store.Write(ctx, "ds1", "b", 2))
	require.NoError(t, store.Write(ctx, "ds2", "a", 3))

	// key为空清除整个数据集
	require.NoError(t, store.Delete(ctx, "ds1", ""))

	var out int
	found, _ := store.Read(ctx, "ds1", "a", &out)
	assert.False(t, found)
	found, _ = store.Read(ctx, "ds1", "b", &out)
	assert.False(t, found)

	// 其他数据集不受影响
	found, _ = store.Read(ctx, "ds2", "a", &out)
	assert.True(t, found)
	assert.Equal(t, 3, out)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "profitability", BuildKey("profitability"))
	assert.Equal(t, "best_sellers_10_2024-06_quantity", BuildKey("best_sellers", 10, "2024-06", "quantity"))
	assert.Equal(t, "dead_stock_90", BuildKey("dead_stock", 90))
}
