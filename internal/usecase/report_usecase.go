package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"
)

// ダッシュボードで「在庫僅少」とみなす閾値
const dashboardLowStockThreshold = 10

type DashboardStats struct {
	TotalUsers      int64   `json:"total_users"`
	TotalProducts   int64   `json:"total_products"`
	TotalCategories int64   `json:"total_categories"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingOrders   int64   `json:"pending_orders"`
	LowStockCount   int64   `json:"low_stock_products"`

	TopSellingProducts []repo.ProductSales  `json:"top_selling_products"`
	RecentOrders       []repo.RecentOrder   `json:"recent_orders"`
	SalesByCategory    []repo.CategorySales `json:"sales_by_category"`
}

type SalesBucket struct {
	Period     string  `json:"period"`
	OrderCount int64   `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

type SalesReport struct {
	Period     string        `json:"period"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	Buckets    []SalesBucket `json:"buckets"`
	OrderCount int64         `json:"order_count"`
	TotalSales float64       `json:"total_sales"`
}

type ReportUsecase struct {
	reportRepo    repo.ReportRepository
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

func NewReportUsecase(
	reportRepo repo.ReportRepository,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ReportUsecase {
	return &ReportUsecase{
		reportRepo:    reportRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// 管理画面トップの集計をまとめて返す
func (u *ReportUsecase) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	var err error

	if s.TotalUsers, err = u.reportRepo.CountUsers(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalProducts, err = u.reportRepo.CountProducts(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalCategories, err = u.reportRepo.CountCategories(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalOrders, err = u.reportRepo.CountOrders(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalRevenue, err = u.reportRepo.TotalRevenue(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.PendingOrders, err = u.reportRepo.CountOrdersWithStatus(ctx, model.OrderStatusPending); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.LowStockCount, err = u.reportRepo.CountActiveProductsBelowStock(ctx, dashboardLowStockThreshold); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TopSellingProducts, err = u.reportRepo.TopSellingProducts(ctx, 5); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.RecentOrders, err = u.reportRepo.RecentOrders(ctx, 5); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.SalesByCategory, err = u.reportRepo.SalesByCategory(ctx); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return s, nil
}

// period別のデフォルト集計範囲
func defaultReportRange(period string, end time.Time) time.Time {
	switch period {
	case "weekly":
		return end.AddDate(0, 0, -7*12)
	case "monthly":
		return end.AddDate(0, 0, -365)
	case "yearly":
		return end.AddDate(-5, 0, 0)
	default: //daily
		return end.AddDate(0, 0, -30)
	}
}

// 注文の作成時刻をperiodごとのキーに変換する
func bucketKey(period string, t time.Time) string {
	switch period {
	case "weekly":
		y, w := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case "monthly":
		return t.Format("2006-01")
	case "yearly":
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// 売上レポート。キャンセル分を除いた注文を期間キーで束ねる。
// startとendが省略されたらperiodに応じた既定範囲を使う。
func (u *ReportUsecase) SalesReport(ctx context.Context, period string, start *time.Time, end *time.Time) (SalesReport, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	switch period {
	case "":
		period = "daily"
	case "daily", "weekly", "monthly", "yearly":
	default:
		return SalesReport{}, NewHTTPError(http.StatusBadRequest, "invalid period")
	}

	endAt := time.Now()
	if end != nil {
		endAt = *end
	}
	startAt := defaultReportRange(period, endAt)
	if start != nil {
		startAt = *start
	}
	if startAt.After(endAt) {
		return SalesReport{}, NewHTTPError(http.StatusBadRequest, "start_date must be before end_date")
	}

	orders, err := u.reportRepo.OrdersBetween(ctx, startAt, endAt)
	if err != nil {
		return SalesReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byKey := map[string]*SalesBucket{}
	var totalCount int64
	var totalSales float64

	for _, o := range orders {
		key := bucketKey(period, o.CreatedAt)
		b, ok := byKey[key]
		if !ok {
			b = &SalesBucket{Period: key}
			byKey[key] = b
		}
		b.OrderCount++
		b.TotalSales = roundPrice(b.TotalSales + o.TotalAmount)

		totalCount++
		totalSales = roundPrice(totalSales + o.TotalAmount)
	}

	//キーの昇順は時系列の昇順になる
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]SalesBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byKey[k])
	}

	return SalesReport{
		Period:     period,
		StartDate:  startAt,
		EndDate:    endAt,
		Buckets:    buckets,
		OrderCount: totalCount,
		TotalSales: totalSales,
	}, nil
}

func (u *ReportUsecase) LowStock(ctx context.Context, threshold int64) ([]repo.LowStockProduct, error) {
	if threshold < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "threshold must be >= 1")
	}

	rows, err := u.reportRepo.LowStockProducts(ctx, threshold)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

type SetStockInput struct {
	NewStock int64
	Reason   string
}

type SetStockOutput struct {
	ProductID int64 `json:"product_id"`
	OldStock  int64 `json:"old_stock"`
	NewStock  int64 `json:"new_stock"`
}

// 在庫の手動調整。調整履歴と監査ログの両方に残す。
func (u *ReportUsecase) SetStock(ctx context.Context, actor Actor, productID int64, in SetStockInput) (SetStockOutput, error) {
	if productID <= 0 {
		return SetStockOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.NewStock < 0 {
		return SetStockOutput{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return SetStockOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return SetStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, in.NewStock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SetStockOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return SetStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	if err := u.inventoryRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:   productID,
		StaffUserID: actor.UserID,
		Delta:       in.NewStock - p.StockQuantity,
		Reason:      in.Reason,
		CreatedAt:   now,
	}); err != nil {
		return SetStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   fmt.Sprintf(`{"stock_quantity":%d}`, p.StockQuantity),
		AfterJSON:    fmt.Sprintf(`{"stock_quantity":%d}`, in.NewStock),
		CreatedAt:    now,
	}); err != nil {
		return SetStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SetStockOutput{
		ProductID: productID,
		OldStock:  p.StockQuantity,
		NewStock:  in.NewStock,
	}, nil
}

// 監査ログ一覧（admin用）
func (u *ReportUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit < 1 || filter.Limit > 1000 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if filter.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
