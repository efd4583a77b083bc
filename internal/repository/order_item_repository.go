package repository

import (
	"context"

	"freshmarket/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//商品削除のソフト/ハード判定に使う
	CountByProductID(ctx context.Context, productID int64) (int64, error)
}
