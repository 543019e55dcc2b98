/*
 * @module service/analytics/dead_stock_test
 * @description 滞销库存视图测试：阈值过滤、估值计算与库存缺失降级
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 视图计算 -> 结果断言
 * @rules 阈值越大结果集越小；库存未知商品仍上报但估值为0
 * @dependencies testing, testify, insight-service/testutil
 * @refs dead_stock.go
 */

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"insight-service/service/cache"
	"insight-service/service/database"
	"insight-service/service/models"
	"insight-service/testutil"
)

// DeadStockTestSuite 滞销库存测试套件
type DeadStockTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	svc     *Service
	now     time.Time
}

// SetupSuite 设置测试套件
func (suite *DeadStockTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
	suite.now = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
}

// TearDownSuite 清理测试套件
func (suite *DeadStockTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *DeadStockTestSuite) SetupTest() {
	suite.testDB.CleanDB()
	suite.svc = NewService(database.NewGormRecordStore(suite.testDB.DB), cache.NewMemoryStore())
	suite.svc.SetNowFunc(func() time.Time { return suite.now })
}

func (suite *DeadStockTestSuite) TestEstimatedValueFromInventory() {
	dataset := suite.factory.CreateDataset()

	// 最后一次售出在95天前，库存20件单位成本5
	suite.factory.CreateSale(dataset.ID, "P001", "Old Stock", suite.now.AddDate(0, 0, -95), 2, 10)
	suite.factory.CreateInventoryRecord(dataset.ID, "P001", func(r *models.InventoryRecord) {
		r.CurrentStock = 20
		r.UnitCost = 5
	})

	rows, err := suite.svc.ComputeDeadStock(context.Background(), dataset.ID, 90)
	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal("P001", rows[0].ProductID)
	suite.Equal(95, rows[0].DaysSinceSale)
	suite.Equal(float64(20), rows[0].CurrentStock)
	suite.Equal(float64(100), rows[0].EstimatedValue)
}

func (suite *DeadStockTestSuite) TestThresholdMonotonicity() {
	dataset := suite.factory.CreateDataset()

	// 三个商品分别滞销95/50/10天
	suite.factory.CreateSale(dataset.ID, "P001", "A", suite.now.AddDate(0, 0, -95), 1, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "B", suite.now.AddDate(0, 0, -50), 1, 10)
	suite.factory.CreateSale(dataset.ID, "P003", "C", suite.now.AddDate(0, 0, -10), 1, 10)

	loose, err := suite.svc.ComputeDeadStock(context.Background(), dataset.ID, 30)
	suite.NoError(err)
	strict, err := suite.svc.ComputeDeadStock(context.Background(), dataset.ID, 90)
	suite.NoError(err)

	// 阈值越大结果越少，且严格结果是宽松结果的子集
	suite.Len(loose, 2)
	suite.Len(strict, 1)
	suite.Equal("P001", strict[0].ProductID)

	looseIDs := make(map[string]bool)
	for _, row := range loose {
		looseIDs[row.ProductID] = true
	}
	for _, row := range strict {
		suite.True(looseIDs[row.ProductID])
	}
}

func (suite *DeadStockTestSuite) TestUnknownInventoryReportsZeroValue() {
	dataset := suite.factory.CreateDataset()

	// 无库存记录的滞销商品照常上报
	suite.factory.CreateSale(dataset.ID, "P001", "Ghost", suite.now.AddDate(0, 0, -120), 1, 10)

	rows, err := suite.svc.ComputeDeadStock(context.Background(), dataset.ID, 90)
	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal(float64(0), rows[0].CurrentStock)
	suite.Equal(float64(0), rows[0].EstimatedValue)
}

func (suite *DeadStockTestSuite) TestSortedByDaysSinceSaleDesc() {
	dataset := suite.factory.CreateDataset()

	suite.factory.CreateSale(dataset.ID, "P001", "A", suite.now.AddDate(0, 0, -100), 1, 10)
	suite.factory.CreateSale(dataset.ID, "P002", "B", suite.now.AddDate(0, 0, -200), 1, 10)
	suite.factory.CreateSale(dataset.ID, "P003", "C", suite.now.AddDate(0, 0, -150), 1, 10)

	rows, err := suite.svc.ComputeDeadStock(context.Background(), dataset.ID, 90)
	suite.NoError(err)
	suite.Len(rows, 3)
	suite.Equal("P002", rows[0].ProductID)
	suite.Equal("P003", rows[1].ProductID)
	suite.Equal("P001", rows[2].ProductID)
}

func TestDeadStockTestSuite(t *testing.T) {
	suite.Run(t, new(DeadStockTestSuite))
}
