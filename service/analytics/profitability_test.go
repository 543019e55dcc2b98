/*
 * @module service/analytics/profitability_test
 * @description 盈利能力视图测试：毛利计算、成本缺失降级与毛利率排名
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 视图计算 -> 结果断言
 * @rules 成本缺失按0填充；按毛利率降序排名
 * @dependencies testing, testify, insight-service/testutil
 * @refs profitability.go
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

// ProfitabilityTestSuite 盈利能力测试套件
type ProfitabilityTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	svc     *Service
	now     time.Time
}

// SetupSuite 设置测试套件
func (suite *ProfitabilityTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
	suite.now = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
}

// TearDownSuite 清理测试套件
func (suite *ProfitabilityTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *ProfitabilityTestSuite) SetupTest() {
	suite.testDB.CleanDB()
	suite.svc = NewService(database.NewGormRecordStore(suite.testDB.DB), cache.NewMemoryStore())
	suite.svc.SetNowFunc(func() time.Time { return suite.now })
}

func (suite *ProfitabilityTestSuite) TestMarginCalculationAndRanking() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -5)

	// P001: 收入1000成本400，毛利率60%
	suite.factory.CreateSale(dataset.ID, "P001", "High Margin", date, 10, 100)
	suite.factory.CreateInventoryRecord(dataset.ID, "P001", func(r *models.InventoryRecord) {
		r.UnitCost = 40
	})
	// P002: 收入1000成本900，毛利率10%
	suite.factory.CreateSale(dataset.ID, "P002", "Low Margin", date, 10, 100)
	suite.factory.CreateInventoryRecord(dataset.ID, "P002", func(r *models.InventoryRecord) {
		r.UnitCost = 90
	})

	rows, err := suite.svc.ComputeProfitability(context.Background(), dataset.ID)
	suite.NoError(err)
	suite.Len(rows, 2)

	// 按毛利率降序
	suite.Equal("P001", rows[0].ProductID)
	suite.Equal(1, rows[0].Rank)
	suite.InDelta(60.0, rows[0].ProfitMargin, 0.01)
	suite.Equal(float64(600), rows[0].Profit)
	suite.InDelta(10.0, rows[1].ProfitMargin, 0.01)
}

func (suite *ProfitabilityTestSuite) TestMissingCostDefaultsToZero() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -5)

	// 无库存记录，成本按0处理，毛利率100%
	suite.factory.CreateSale(dataset.ID, "P001", "No Cost", date, 5, 20)

	rows, err := suite.svc.ComputeProfitability(context.Background(), dataset.ID)
	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal(float64(0), rows[0].Cost)
	suite.Equal(float64(100), rows[0].Profit)
	suite.InDelta(100.0, rows[0].ProfitMargin, 0.01)
}

func (suite *ProfitabilityTestSuite) TestInventoryCategoryOverridesSales() {
	dataset := suite.factory.CreateDataset()
	date := suite.now.AddDate(0, 0, -5)

	suite.factory.CreateSale(dataset.ID, "P001", "Item", date, 1, 10)
	suite.factory.CreateInventoryRecord(dataset.ID, "P001", func(r *models.InventoryRecord) {
		r.Category = "beverages"
	})

	rows, err := suite.svc.ComputeProfitability(context.Background(), dataset.ID)
	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal("beverages", rows[0].Category)
}

func TestProfitabilityTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitabilityTestSuite))
}
