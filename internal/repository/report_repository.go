package repository

import (
	"context"
	"time"

	"freshmarket/internal/domain/model"
)

// 商品別の売上集計
type ProductSales struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalSales    float64 `json:"total_sales"`
	Category      string  `json:"category"`
}

// カテゴリ別の売上集計
type CategorySales struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
}

// ダッシュボードの直近注文
type RecentOrder struct {
	OrderID      int64     `json:"order_id"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName string    `json:"customer_name"`
}

// 在庫僅少の商品
type LowStockProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	StockQuantity int64   `json:"stock_quantity"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
}

// 読み取り専用の集計クエリ。キャッシュせず毎回計算する。
type ReportRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)

	//キャンセル分を除いた売上合計
	TotalRevenue(ctx context.Context) (float64, error)

	CountOrdersWithStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	CountActiveProductsBelowStock(ctx context.Context, threshold int64) (int64, error)

	//数量順トップN（キャンセル分は除く）
	TopSellingProducts(ctx context.Context, limit int) ([]ProductSales, error)

	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)

	//期間内の注文（キャンセル分は除く）。集計はusecase側で行う
	OrdersBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)

	LowStockProducts(ctx context.Context, threshold int64) ([]LowStockProduct, error)
}
