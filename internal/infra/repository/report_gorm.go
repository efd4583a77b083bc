package repository

import (
	"context"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.User{})
}

func (r *ReportGormRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Product{})
}

func (r *ReportGormRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Category{})
}

func (r *ReportGormRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Order{})
}

func (r *ReportGormRepository) count(ctx context.Context, m interface{}) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// キャンセル分を除いた売上合計
func (r *ReportGormRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status <> ?", model.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ReportGormRepository) CountOrdersWithStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReportGormRepository) CountActiveProductsBelowStock(ctx context.Context, threshold int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock_quantity < ? AND is_active = ?", threshold, true).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// 数量順トップN。同数はproduct_id昇順で安定させる
func (r *ReportGormRepository) TopSellingProducts(ctx context.Context, limit int) ([]repo.ProductSales, error) {
	var rows []repo.ProductSales
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.product_id AS product_id,
			order_items.product_name AS name,
			SUM(order_items.quantity) AS total_quantity,
			SUM(order_items.quantity * order_items.unit_price) AS total_sales,
			COALESCE(MAX(categories.name), 'Unknown') AS category`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("orders.status <> ?", model.OrderStatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("total_quantity DESC, product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductSales{}, err
	}
	return rows, nil
}

func (r *ReportGormRepository) RecentOrders(ctx context.Context, limit int) ([]repo.RecentOrder, error) {
	var rows []repo.RecentOrder
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id AS order_id,
			orders.status AS status,
			orders.total_amount AS total_amount,
			orders.created_at AS created_at,
			COALESCE(users.full_name, 'Unknown') AS customer_name`).
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.RecentOrder{}, err
	}
	return rows, nil
}

func (r *ReportGormRepository) SalesByCategory(ctx context.Context) ([]repo.CategorySales, error) {
	var rows []repo.CategorySales
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`products.category_id AS category_id,
			COALESCE(MAX(categories.name), 'Unknown') AS name,
			SUM(order_items.quantity * order_items.unit_price) AS total_sales`).
		Joins("JOIN order_items ON order_items.product_id = products.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("orders.status <> ?", model.OrderStatusCancelled).
		Group("products.category_id").
		Order("category_id ASC").
		Scan(&rows).Error
	if err != nil {
		return []repo.CategorySales{}, err
	}
	return rows, nil
}

// 期間内の注文（キャンセル分は除く）。時系列バケット化はusecase側
func (r *ReportGormRepository) OrdersBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Where("status <> ?", model.OrderStatusCancelled).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *ReportGormRepository) LowStockProducts(ctx context.Context, threshold int64) ([]repo.LowStockProduct, error) {
	var rows []repo.LowStockProduct
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`products.id AS id,
			products.name AS name,
			COALESCE(categories.name, 'Unknown') AS category,
			products.stock_quantity AS stock_quantity,
			products.price AS price,
			products.unit AS unit`).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.stock_quantity <= ? AND products.is_active = ?", threshold, true).
		Order("products.stock_quantity ASC").
		Scan(&rows).Error
	if err != nil {
		return []repo.LowStockProduct{}, err
	}
	return rows, nil
}
