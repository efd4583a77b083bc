package repository

import (
	"context"

	"freshmarket/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool, skip int, limit int) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)

	//名前の重複チェック用
	FindByName(ctx context.Context, name string) (model.Category, bool, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error

	Deactivate(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}
