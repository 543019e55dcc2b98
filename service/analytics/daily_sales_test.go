/*
 * @module service/analytics/daily_sales_test
 * @description 日销售视图测试：稠密序列、零值填充与空月份行为
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 视图计算 -> 结果断言
 * @rules 有交易的月份覆盖整月每一天；整月无交易返回空切片
 * @dependencies testing, testify, insight-service/testutil
 * @refs daily_sales.go
 */

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/testutil"
)

// DailySalesTestSuite 日销售测试套件
type DailySalesTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	svc     *Service
}

// SetupSuite 设置测试套件
func (suite *DailySalesTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
}

// TearDownSuite 清理测试套件
func (suite *DailySalesTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *DailySalesTestSuite) SetupTest() {
	suite.testDB.CleanDB()
	suite.svc = NewService(database.NewGormRecordStore(suite.testDB.DB), cache.NewMemoryStore())
}

func (suite *DailySalesTestSuite) TestDenseSeriesWithZeroFill() {
	dataset := suite.factory.CreateDataset()

	// 6月只有5号和20号有交易
	suite.factory.CreateSale(dataset.ID, "P001", "Item", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), 3, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "Item2", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), 2, 20)
	suite.factory.CreateSale(dataset.ID, "P001", "Item", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), 1, 10)

	points, err := suite.svc.ComputeDailySales(context.Background(), dataset.ID, 2024, 6)
	suite.NoError(err)
	suite.Len(points, 30)

	// 序列覆盖整月且日期连续
	for i, p := range points {
		suite.Equal(i+1, p.Day)
	}

	// 5号聚合两笔：收入30+40，销量5
	suite.Equal(float64(70), points[4].Value)
	suite.Equal(float64(5), points[4].Quantity)
	suite.Equal("2024-06-05", points[4].Date)

	// 20号一笔
	suite.Equal(float64(10), points[19].Value)

	// 无交易日零值填充
	suite.Equal(float64(0), points[0].Value)
	suite.Equal(float64(0), points[0].Quantity)
}

func (suite *DailySalesTestSuite) TestEmptyMonthReturnsEmpty() {
	dataset := suite.factory.CreateDataset()

	// 数据在7月，查询6月
	suite.factory.CreateSale(dataset.ID, "P001", "Item", time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), 1, 10)

	points, err := suite.svc.ComputeDailySales(context.Background(), dataset.ID, 2024, 6)
	suite.NoError(err)
	suite.Empty(points)
}

func (suite *DailySalesTestSuite) TestInvalidMonthRejected() {
	dataset := suite.factory.CreateDataset()

	_, err := suite.svc.ComputeDailySales(context.Background(), dataset.ID, 2024, 13)
	suite.Error(err)
}

func TestDailySalesTestSuite(t *testing.T) {
	suite.Run(t, new(DailySalesTestSuite))
}
