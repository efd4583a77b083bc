package repository

import (
	"context"
	"errors"
	"strings"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/絞り込み/ソート/ページング付きの商品一覧
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.IsOrganic != nil {
		tx = tx.Where("is_organic = ?", *q.IsOrganic)
	}
	if q.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	//nameとdescriptionに加えて訳文マップも検索対象にする
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where(
			"name ILIKE ? OR description ILIKE ? OR name_translations::text ILIKE ? OR description_translations::text ILIKE ?",
			like, like, like, like,
		)
	}

	dir := "asc"
	if q.SortOrder == "desc" {
		dir = "desc"
	}
	switch q.SortBy {
	case "price":
		tx = tx.Order("price " + dir).Order("id asc")
	case "created_at":
		tx = tx.Order("created_at " + dir).Order("id asc")
	default:
		tx = tx.Order("name " + dir).Order("id asc")
	}

	var products []model.Product
	if err := tx.Offset(q.Skip).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListByCategory(ctx context.Context, categoryID int64, activeOnly bool) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var products []model.Product
	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// usecaseが許可リストで組み立てたフィールドだけを更新する
func (r *ProductGormRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ソフトデリート（非公開化）
func (r *ProductGormRepository) Deactivate(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除（参照のない商品のみ）
func (r *ProductGormRepository) HardDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
