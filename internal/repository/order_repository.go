package repository

import (
	"context"

	"freshmarket/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//自分の注文一覧（新しい順）
	ListByUserID(ctx context.Context, userID int64, skip int, limit int) ([]model.Order, error)

	//スタッフ向け全件一覧（新しい順）
	ListAll(ctx context.Context, skip int, limit int) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	Update(ctx context.Context, orderID int64, fields map[string]interface{}) error
}
