/*
 * @module service/event/dataset_listener_test
 * @description 数据集变更监听器测试：通知载荷解析与缓存失效委托
 * @architecture 测试层 - 事件处理验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 构造通知载荷 -> 处理 -> 断言失效调用
 * @rules 裸ID与JSON载荷均可解析；空载荷忽略；失效失败不中断监听
 * @dependencies testing, testify
 * @refs dataset_listener.go
 */

package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeInvalidator 记录失效调用的测试替身
type fakeInvalidator struct {
	invalidated []string
	err         error
}

func (f *fakeInvalidator) InvalidateDataset(ctx context.Context, datasetID string) error {
	f.invalidated = append(f.invalidated, datasetID)
	return f.err
}

func TestHandleNotificationBareID(t *testing.T) {
	fake := &fakeInvalidator{}
	listener := NewDatasetListener(fake)
	defer listener.Stop()

	listener.handleNotification("ds-001")

	assert.Equal(t, []string{"ds-001"}, fake.invalidated)
}

func TestHandleNotificationJSONPayload(t *testing.T) {
	fake := &fakeInvalidator{}
	listener := NewDatasetListener(fake)
	defer listener.Stop()

	listener.handleNotification(`{"dataset_id": "ds-002", "op": "INSERT"}`)

	assert.Equal(t, []string{"ds-002"}, fake.invalidated)
}

func TestHandleNotificationEmptyPayloadIgnored(t *testing.T) {
	fake := &fakeInvalidator{}
	listener := NewDatasetListener(fake)
	defer listener.Stop()

	listener.handleNotification("")

	// 空载荷不触发失效
	assert.Empty(t, fake.invalidated)
}

func TestHandleNotificationInvalidationErrorSwallowed(t *testing.T) {
	fake := &fakeInvalidator{err: errors.New("cache unavailable")}
	listener := NewDatasetListener(fake)
	defer listener.Stop()

	// 失效失败只记日志，不panic不中断
	assert.NotPanics(t, func() {
		listener.handleNotification("ds-003")
	})
	assert.Equal(t, []string{"ds-003"}, fake.invalidated)
}
