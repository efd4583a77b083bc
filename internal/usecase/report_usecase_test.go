package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"
	"freshmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReportUsecaseForTest(reports *ReportRepoMock, products *ProductRepoMock, inventory *InventoryRepoMock, audit *AuditRepoMock) *usecase.ReportUsecase {
	return usecase.NewReportUsecase(reports, products, inventory, audit)
}

func TestDashboard_AggregatesAll(t *testing.T) {
	reports := new(ReportRepoMock)

	reports.On("CountUsers", mock.Anything).Return(int64(20), nil)
	reports.On("CountProducts", mock.Anything).Return(int64(50), nil)
	reports.On("CountCategories", mock.Anything).Return(int64(6), nil)
	reports.On("CountOrders", mock.Anything).Return(int64(120), nil)
	reports.On("TotalRevenue", mock.Anything).Return(1530.25, nil)
	reports.On("CountOrdersWithStatus", mock.Anything, model.OrderStatusPending).Return(int64(4), nil)
	reports.On("CountActiveProductsBelowStock", mock.Anything, int64(10)).Return(int64(3), nil)
	reports.On("TopSellingProducts", mock.Anything, 5).Return([]repo.ProductSales{
		{ProductID: 1, Name: "Apple", TotalQuantity: 30, TotalSales: 89.7, Category: "Fruits"},
	}, nil)
	reports.On("RecentOrders", mock.Anything, 5).Return([]repo.RecentOrder{}, nil)
	reports.On("SalesByCategory", mock.Anything).Return([]repo.CategorySales{}, nil)

	uc := newReportUsecaseForTest(reports, new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	out, err := uc.Dashboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(20), out.TotalUsers)
	assert.Equal(t, 1530.25, out.TotalRevenue)
	assert.Equal(t, int64(4), out.PendingOrders)
	assert.Equal(t, int64(3), out.LowStockCount)
	assert.Len(t, out.TopSellingProducts, 1)
	reports.AssertExpectations(t)
}

// =====================
// SalesReport バケット化
// =====================

func TestSalesReport_DailyBuckets(t *testing.T) {
	reports := new(ReportRepoMock)

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	reports.On("OrdersBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, TotalAmount: 10.00, CreatedAt: day1},
		{ID: 2, TotalAmount: 5.50, CreatedAt: day1.Add(2 * time.Hour)},
		{ID: 3, TotalAmount: 7.25, CreatedAt: day2},
	}, nil)

	uc := newReportUsecaseForTest(reports, new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	out, err := uc.SalesReport(context.Background(), "daily", &start, &end)

	assert.NoError(t, err)
	assert.Len(t, out.Buckets, 2)
	assert.Equal(t, "2026-08-01", out.Buckets[0].Period)
	assert.Equal(t, int64(2), out.Buckets[0].OrderCount)
	assert.Equal(t, 15.50, out.Buckets[0].TotalSales)
	assert.Equal(t, "2026-08-02", out.Buckets[1].Period)
	assert.Equal(t, 7.25, out.Buckets[1].TotalSales)
	assert.Equal(t, int64(3), out.OrderCount)
	assert.Equal(t, 22.75, out.TotalSales)
}

func TestSalesReport_WeeklyUsesISOWeek(t *testing.T) {
	reports := new(ReportRepoMock)

	//2026-01-01は2026年のISO第1週
	newYear := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	reports.On("OrdersBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, TotalAmount: 30.00, CreatedAt: newYear},
	}, nil)

	uc := newReportUsecaseForTest(reports, new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	out, err := uc.SalesReport(context.Background(), "weekly", &start, &end)

	assert.NoError(t, err)
	assert.Len(t, out.Buckets, 1)
	assert.Equal(t, "2026-W01", out.Buckets[0].Period)
}

func TestSalesReport_MonthlyAndYearlyKeys(t *testing.T) {
	reports := new(ReportRepoMock)

	ts := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	reports.On("OrdersBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{
		{ID: 1, TotalAmount: 12.00, CreatedAt: ts},
	}, nil)

	uc := newReportUsecaseForTest(reports, new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	out, err := uc.SalesReport(context.Background(), "monthly", &start, &end)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03", out.Buckets[0].Period)

	out, err = uc.SalesReport(context.Background(), "yearly", &start, &end)
	assert.NoError(t, err)
	assert.Equal(t, "2026", out.Buckets[0].Period)
}

func TestSalesReport_InvalidPeriod(t *testing.T) {
	uc := newReportUsecaseForTest(new(ReportRepoMock), new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	_, err := uc.SalesReport(context.Background(), "hourly", nil, nil)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid period")
}

func TestSalesReport_StartAfterEnd(t *testing.T) {
	uc := newReportUsecaseForTest(new(ReportRepoMock), new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.SalesReport(context.Background(), "daily", &start, &end)
	assertHTTPError(t, err, http.StatusBadRequest, "start_date must be before end_date")
}

// =====================
// LowStock / SetStock
// =====================

func TestLowStock_InvalidThreshold(t *testing.T) {
	uc := newReportUsecaseForTest(new(ReportRepoMock), new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	_, err := uc.LowStock(context.Background(), 0)
	assertHTTPError(t, err, http.StatusBadRequest, "threshold must be >= 1")
}

func TestSetStock_WritesAdjustmentAndAuditLog(t *testing.T) {
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)
	audit := new(AuditRepoMock)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "Apple", StockQuantity: 20,
	}, nil)
	inventory.On("SetStock", mock.Anything, int64(1), int64(35)).Return(nil)
	inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.InventoryAdjustment) bool {
		return adj.ProductID == 1 && adj.Delta == 15 && adj.StaffUserID == 5
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(log model.AuditLog) bool {
		return log.Action == model.AuditActionUpdateStock &&
			log.ResourceType == model.AuditResourceProduct &&
			log.ResourceID == 1
	})).Return(nil)

	uc := newReportUsecaseForTest(new(ReportRepoMock), products, inventory, audit)

	actor := usecase.Actor{UserID: 5, Role: model.RoleStaff}
	out, err := uc.SetStock(context.Background(), actor, 1, usecase.SetStockInput{
		NewStock: 35,
		Reason:   "restock delivery",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(20), out.OldStock)
	assert.Equal(t, int64(35), out.NewStock)
	inventory.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestSetStock_NegativeStock(t *testing.T) {
	uc := newReportUsecaseForTest(new(ReportRepoMock), new(ProductRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	actor := usecase.Actor{UserID: 5, Role: model.RoleStaff}
	_, err := uc.SetStock(context.Background(), actor, 1, usecase.SetStockInput{NewStock: -1})
	assertHTTPError(t, err, http.StatusBadRequest, "stock_quantity must be >= 0")
}
