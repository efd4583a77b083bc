package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"freshmarket/internal/domain/model"
	repo "freshmarket/internal/repository"
	"freshmarket/internal/translation"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	resolver     *translation.Resolver
}

// DI
func NewCategoryUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	resolver *translation.Resolver,
) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		resolver:     resolver,
	}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context, activeOnly bool, skip int, limit int, lang string) ([]model.Category, error) {
	if skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if limit < 1 || limit > 1000 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	categories, err := u.categoryRepo.List(ctx, activeOnly, skip, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for i := range categories {
		u.localizeCategory(&categories[i], lang)
	}
	return categories, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, categoryID int64, lang string) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.localizeCategory(&c, lang)
	return c, nil
}

type CreateCategoryInput struct {
	Name                    string
	NameTranslations        map[string]string
	Description             string
	DescriptionTranslations map[string]string
	ImageURL                string
	IsActive                bool
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//名前の重複チェック
	_, found, err := u.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category with this name already exists")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:                    name,
		NameTranslations:        model.Translations(in.NameTranslations),
		Description:             in.Description,
		DescriptionTranslations: model.Translations(in.DescriptionTranslations),
		ImageURL:                in.ImageURL,
		IsActive:                in.IsActive,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 許可リスト方式の更新入力
type CategoryUpdateInput struct {
	Name                    *string
	NameTranslations        map[string]string
	Description             *string
	DescriptionTranslations map[string]string
	ImageURL                *string
	IsActive                *bool
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, categoryID int64, in CategoryUpdateInput) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	current, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields := map[string]interface{}{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
		}
		//改名なら重複チェック
		if name != current.Name {
			_, found, err := u.categoryRepo.FindByName(ctx, name)
			if err != nil {
				return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if found {
				return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category with this name already exists")
			}
		}
		fields["name"] = name
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
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		err := u.categoryRepo.Update(ctx, categoryID, fields)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		if err != nil {
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// カテゴリ削除。商品が1つでも紐づいていればソフトデリート、
// 空なら物理削除。
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.CountByCategoryID(ctx, categoryID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	switch model.DecideRemoval(products > 0) {
	case model.RemovalDeactivate:
		err = u.categoryRepo.Deactivate(ctx, categoryID)
	default:
		err = u.categoryRepo.HardDelete(ctx, categoryID)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CategoryUsecase) localizeCategory(c *model.Category, lang string) {
	c.Name = u.resolver.Resolve(c.Name, c.NameTranslations, lang)
	c.Description = u.resolver.Resolve(c.Description, c.DescriptionTranslations, lang)
}
