/*
 * @module service/analytics/best_sellers_test
 * @description 畅销商品视图测试：排名连续性、排序依据、期间过滤与幂等性
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 视图计算 -> 结果断言
 * @rules 排名必须从1起连续；快照不变时重复计算结果逐字节一致
 * @dependencies testing, testify, insight-service/testutil
 * @refs best_sellers.go
 */

package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/testutil"
)

// BestSellersTestSuite 畅销商品测试套件
type BestSellersTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	svc     *Service
	now     time.Time
}

// SetupSuite 设置测试套件
func (suite *BestSellersTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
	suite.now = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
}

// TearDownSuite 清理测试套件
func (suite *BestSellersTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *BestSellersTestSuite) SetupTest() {
	suite.testDB.CleanDB()
	suite.svc = NewService(database.NewGormRecordStore(suite.testDB.DB), cache.NewMemoryStore())
	suite.svc.SetNowFunc(func() time.Time { return suite.now })
}

func (suite *BestSellersTestSuite) TestQuantityRankingWithLimit() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -10)

	// 三个商品销量分别为100/50/10
	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 100, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "Sugar", date, 50, 20)
	suite.factory.CreateSale(dataset.ID, "P003", "Salt", date, 10, 5)

	rows, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 2, "", SortByQuantity)
	suite.NoError(err)
	suite.Len(rows, 2)

	// 排名[1,2]且按销量降序
	suite.Equal(1, rows[0].Rank)
	suite.Equal(2, rows[1].Rank)
	suite.Equal("P001", rows[0].ProductID)
	suite.Equal(float64(100), rows[0].TotalQuantity)
	suite.GreaterOrEqual(rows[0].TotalQuantity, rows[1].TotalQuantity)
}

func (suite *BestSellersTestSuite) TestRanksAreContiguous() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -5)

	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 30, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "Sugar", date, 20, 10)
	suite.factory.CreateSale(dataset.ID, "P003", "Salt", date, 10, 10)

	rows, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.Len(rows, 3)
	for i, row := range rows {
		suite.Equal(i+1, row.Rank)
	}
	// 榜首销量不小于其余任意行
	for _, row := range rows[1:] {
		suite.GreaterOrEqual(rows[0].TotalQuantity, row.TotalQuantity)
	}
}

func (suite *BestSellersTestSuite) TestRevenueSorting() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -5)

	// P002销量低但收入高
	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 100, 1)
	suite.factory.CreateSale(dataset.ID, "P002", "Watch", date, 2, 500)

	rows, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByRevenue)
	suite.NoError(err)
	suite.Len(rows, 2)
	suite.Equal("P002", rows[0].ProductID)
	suite.Equal(float64(1000), rows[0].TotalRevenue)
}

func (suite *BestSellersTestSuite) TestPeriodFilter() {
	dataset := suite.factory.CreateDataset()

	// 6月和7月各一笔，只查6月
	suite.factory.CreateSale(dataset.ID, "P001", "Tea", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 10, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "Sugar", time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), 20, 10)

	rows, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "2024-06", SortByQuantity)
	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal("P001", rows[0].ProductID)
}

func (suite *BestSellersTestSuite) TestIdempotentOnUnchangedSnapshot() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -3)
	suite.factory.CreateSale(dataset.ID, "P001", "Tea", date, 42, 7)

	first, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	second, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	suite.Equal(firstJSON, secondJSON)
}

func (suite *BestSellersTestSuite) TestEmptyDatasetReturnsEmpty() {
	dataset := suite.factory.CreateDataset()

	rows, err := suite.svc.ComputeBestSellers(context.Background(), dataset.ID, 10, "", SortByQuantity)
	suite.NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func TestBestSellersTestSuite(t *testing.T) {
	suite.Run(t, new(BestSellersTestSuite))
}
