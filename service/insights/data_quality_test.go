/*
 * @module service/insights/data_quality_test
 * @description 数据质量计算器测试：完整性比例、多样性加分与失败降级
 * @architecture 测试层 - 业务逻辑验证
 * @documentReference ai_docs/insight_engine_req.md
 * @stateFlow 测试数据准备 -> 质量计算 -> 维度断言
 * @rules 统计失败返回保守默认值而非报错；空数据集返回零值
 * @dependencies testing, testify, insight-service/testutil
 * @refs data_quality.go
 */

package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"insight-service/service/database"
	"insight-service/service/models"
	"insight-service/testutil"
)

// DataQualityTestSuite 数据质量测试套件
type DataQualityTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	calc    *QualityCalculator
}

// SetupSuite 设置测试套件
func (suite *DataQualityTestSuite) SetupSuite() {
	suite.testDB = testutil.NewTestDB()
	suite.factory = testutil.NewTestDataFactory(suite.testDB.DB)
	suite.calc = NewQualityCalculator(database.NewGormRecordStore(suite.testDB.DB))
}

// TearDownSuite 清理测试套件
func (suite *DataQualityTestSuite) TearDownSuite() {
	suite.testDB.Close()
}

// SetupTest 设置每个测试
func (suite *DataQualityTestSuite) SetupTest() {
	suite.testDB.CleanDB()
}

func (suite *DataQualityTestSuite) TestCleanDataScoresFull() {
	dataset := suite.factory.CreateDataset()

	// 10行干净数据，多商品多日期
	for i := 0; i < 10; i++ {
		productID := "P001"
		if i%2 == 0 {
			productID = "P002"
		}
		date := time.Date(2024, 6, i+1, 0, 0, 0, 0, time.UTC)
		suite.factory.CreateSale(dataset.ID, productID, "Item "+productID, date, 5, 10)
	}

	quality := suite.calc.Calculate(context.Background(), dataset.ID)

	suite.Equal(1.0, quality.Completeness)
	suite.Equal(1.0, quality.Validity)
	suite.Equal(1.0, quality.Recency)
	suite.Equal(1.0, quality.Overall)
	suite.Equal(int64(10), quality.TotalRows)
}

func (suite *DataQualityTestSuite) TestMissingFieldsLowerCompleteness() {
	dataset := suite.factory.CreateDataset()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.factory.CreateSale(dataset.ID, "P001", "Good", date, 5, 10)
	// 商品名与数量缺失的脏行
	suite.factory.CreateSalesRecord(dataset.ID, func(r *models.SalesRecord) {
		r.ProductName = ""
		r.Quantity = 0
		r.TotalAmount = 0
		r.Date = date.AddDate(0, 0, 1)
	})

	quality := suite.calc.Calculate(context.Background(), dataset.ID)

	// 2行共6个关键字段，3个缺失
	suite.Equal(0.5, quality.Completeness)
	suite.Less(quality.Overall, 1.0)
}

func (suite *DataQualityTestSuite) TestEmptyDatasetReturnsZero() {
	dataset := suite.factory.CreateDataset()

	quality := suite.calc.Calculate(context.Background(), dataset.ID)
	suite.Equal(models.DataQuality{}, quality)
}

func (suite *DataQualityTestSuite) TestStoreFailureFallsBack() {
	calc := NewQualityCalculator(&failingRecordStore{})

	quality := calc.Calculate(context.Background(), "any")

	// 保守默认值
	suite.Equal(0.5, quality.Completeness)
	suite.Equal(0.5, quality.Validity)
	suite.Equal(1.0, quality.Recency)
	suite.Equal(0.6, quality.Overall)
}

// failingRecordStore 总是失败的记录存储桩
type failingRecordStore struct{}

func (f *failingRecordStore) QuerySales(ctx context.Context, datasetID string, filter database.SalesFilter) ([]models.SalesRecord, error) {
	return nil, errors.New("store unavailable")
}

func (f *failingRecordStore) QueryInventory(ctx context.Context, datasetID string) ([]models.InventoryRecord, error) {
	return nil, errors.New("store unavailable")
}

func (f *failingRecordStore) QualityStats(ctx context.Context, datasetID string) (*database.SalesQualityStats, error) {
	return nil, errors.New("store unavailable")
}

func TestDataQualityTestSuite(t *testing.T) {
	suite.Run(t, new(DataQualityTestSuite))
}
