/*
 * @module service/analytics/cache_failure_test
 * @description 缓存故障降级测试：读失败回退重算、写失败吞掉、显式失效后重算
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 注入故障缓存 -> 视图计算 -> 结果断言
 * @rules 缓存读写失败不得影响计算结果的正确性；失效后必须反映最新快照
 * @dependencies testing, testify, insight-service/testutil
 * @refs service.go
 */

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/testutil"
)

// faultyStore 读写均失败的缓存替身
type faultyStore struct {
	reads  int
	writes int
}

func (s *faultyStore) Read(ctx context.Context, datasetID, key string, out interface{}) (bool, error) {
	s.reads++
	return false, errors.New("cache backend unavailable")
}

func (s *faultyStore) Write(ctx context.Context, datasetID, key string, value interface{}) error {
	s.writes++
	return errors.New("cache backend unavailable")
}

func (s *faultyStore) Delete(ctx context.Context, datasetID, key string) error {
	return errors.New("cache backend unavailable")
}

// CacheFailureTestSuite 缓存故障降级测试套件
type CacheFailureTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	now     time.Time
}

// SetupSuite 设置测试套件
func (suite *CacheFailureTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
	suite.now = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
}

// TearDownSuite 清理测试套件
func (suite *CacheFailureTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *CacheFailureTestSuite) SetupTest() {
	suite.testDB.CleanDB()
}

// newService 用指定缓存后端装配分析服务
func (suite *CacheFailureTestSuite) newService(cacheStore cache.Store) *Service {
	svc := NewService(database.NewGormRecordStore(suite.testDB.DB), cacheStore)
	svc.SetNowFunc(func() time.Time { return suite.now })
	return svc
}

func (suite *CacheFailureTestSuite) TestReadAndWriteFailuresFallBackToRecompute() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -10)

	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 100, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "Sugar", date, 50, 20)

	faulty := &faultyStore{}
	svc := suite.newService(faulty)

	// 缓存读写全部失败，计算仍返回正确结果
	rows, err := svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("P001", rows[0].ProductID)
	suite.Equal(float64(100), rows[0].TotalQuantity)

	// 第二次调用同样降级重算，结果一致
	again, err := svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Equal(rows, again)

	// 读写路径确实都被走到且被吞掉
	suite.Equal(2, faulty.reads)
	suite.Equal(2, faulty.writes)
}

func (suite *CacheFailureTestSuite) TestInvalidateDatasetForcesRecompute() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -10)

	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 100, 10)

	svc := suite.newService(cache.NewMemoryStore())

	rows, err := svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(float64(100), rows[0].TotalQuantity)

	// 新销售写入后缓存仍返回旧快照
	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date.AddDate(0, 0, 1), 50, 10)

	stale, err := svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(float64(100), stale[0].TotalQuantity)

	// 显式失效后反映最新快照
	suite.NoError(svc.InvalidateDataset(context.Background(), dataset.ID))

	fresh, err := svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Require().Len(fresh, 1)
	suite.Equal(float64(150), fresh[0].TotalQuantity)
}

func TestCacheFailureTestSuite(t *testing.T) {
	suite.Run(t, new(CacheFailureTestSuite))
}
