package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"
	"freshmarket/internal/translation"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	orderItemRepo repo.OrderItemRepository
	resolver      *translation.Resolver
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	orderItemRepo repo.OrderItemRepository,
	resolver *translation.Resolver,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		orderItemRepo: orderItemRepo,
		resolver:      resolver,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Skip  int
	Limit int

	CategoryID *int64
	IsOrganic  *bool
	ActiveOnly bool
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	SortOrder  string

	Lang string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if in.Limit < 1 || in.Limit > 1000 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return nil, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.SortBy {
	case "", "name", "price", "created_at":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort_by")
	}
	switch in.SortOrder {
	case "", "asc", "desc":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort_order")
	}

	products, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Skip:       in.Skip,
		Limit:      in.Limit,
		CategoryID: in.CategoryID,
		IsOrganic:  in.IsOrganic,
		ActiveOnly: in.ActiveOnly,
		Search:     strings.TrimSpace(in.Search),
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//保存された行には触らず、レスポンス側だけを翻訳する
	for i := range products {
		u.localizeProduct(&products[i], in.Lang)
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64, lang string) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.localizeProduct(&p, lang)
	return p, nil
}

func (u *ProductUsecase) ListProductsByCategory(ctx context.Context, categoryID int64, activeOnly bool, lang string) ([]model.Product, error) {
	if categoryID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.ListByCategory(ctx, categoryID, activeOnly)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for i := range products {
		u.localizeProduct(&products[i], lang)
	}
	return products, nil
}

type CreateProductInput struct {
	Name                    string
	NameTranslations        map[string]string
	Description             string
	DescriptionTranslations map[string]string
	Price                   float64
	Unit                    string
	StockQuantity           int64
	ImageURL                string
	IsOrganic               bool
	IsActive                bool
	CategoryID              int64
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	unit := model.ProductUnit(in.Unit)
	if !unit.IsValid() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unit")
	}

	//カテゴリの存在確認
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:                    strings.TrimSpace(in.Name),
		NameTranslations:        model.Translations(in.NameTranslations),
		Description:             in.Description,
		DescriptionTranslations: model.Translations(in.DescriptionTranslations),
		Price:                   in.Price,
		Unit:                    unit,
		StockQuantity:           in.StockQuantity,
		ImageURL:                in.ImageURL,
		IsOrganic:               in.IsOrganic,
		IsActive:                in.IsActive,
		CategoryID:              in.CategoryID,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 許可リスト方式の更新入力。nilのフィールドは変更しない。
// ここに無いフィールドは境界で捨てられる。
type ProductUpdateInput struct {
	Name                    *string
	NameTranslations        map[string]string
	Description             *string
	DescriptionTranslations map[string]string
	Price                   *float64
	Unit                    *string
	StockQuantity           *int64
	ImageURL                *string
	IsOrganic               *bool
	IsActive                *bool
	CategoryID              *int64
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductUpdateInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	fields := map[string]interface{}{}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.NameTranslations != nil {
		fields["name_translations"] = model.Translations(in.NameTranslations)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.DescriptionTranslations != nil {
		fields["description_translations"] = model.Translations(in.DescriptionTranslations)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
		}
		fields["price"] = *in.Price
	}
	if in.Unit != nil {
		if !model.ProductUnit(*in.Unit).IsValid() {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unit")
		}
		fields["unit"] = *in.Unit
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
		}
		fields["stock_quantity"] = *in.StockQuantity
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.IsOrganic != nil {
		fields["is_organic"] = *in.IsOrganic
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return model.Product{}, NewHTTPError(http.StatusNotFound, "Category not found")
			}
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		fields["category_id"] = *in.CategoryID
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		err := u.productRepo.Update(ctx, productID, fields)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 商品削除。注文明細から参照されていればソフトデリート、
// 参照がなければ物理削除。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	refs, err := u.orderItemRepo.CountByProductID(ctx, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	switch model.DecideRemoval(refs > 0) {
	case model.RemovalDeactivate:
		err = u.productRepo.Deactivate(ctx, productID)
	default:
		err = u.productRepo.HardDelete(ctx, productID)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) localizeProduct(p *model.Product, lang string) {
	p.Name = u.resolver.Resolve(p.Name, p.NameTranslations, lang)
	p.Description = u.resolver.Resolve(p.Description, p.DescriptionTranslations, lang)
}
