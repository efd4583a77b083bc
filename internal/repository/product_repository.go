package repository

import (
	"context"
	"errors"

	"freshmarket/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品一覧の検索条件
type ProductListQuery struct {
	Skip  int
	Limit int

	CategoryID *int64
	IsOrganic  *bool
	ActiveOnly bool

	//name/descriptionと訳文マップを対象にした部分一致
	Search string

	MinPrice *float64
	MaxPrice *float64

	SortBy    string // name / price / created_at
	SortOrder string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64, activeOnly bool) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)

	//usecase側で許可リスト済みのフィールドだけを渡す
	Update(ctx context.Context, id int64, fields map[string]interface{}) error

	Deactivate(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error

	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}
