package handler

import (
	"net/http"
	"strconv"

	"freshmarket/internal/config"
	"freshmarket/internal/middleware"
	"freshmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products のAPI。閲覧は公開、変更はstaff以上。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.GET("/products/category/:category_id", h.listByCategory)

	g := e.Group("/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffRoleGuard())
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *ProductHandler) list(c echo.Context) error {
	// skip（default 0）
	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid skip"})
		}
		skip = s
	}

	// limit（default 100）
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var categoryID *int64
	if v := c.QueryParam("category_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		categoryID = &x
	}

	var isOrganic *bool
	if v := c.QueryParam("is_organic"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid is_organic"})
		}
		isOrganic = &b
	}

	//active_onlyの既定はtrue。管理画面だけfalseを渡してくる
	activeOnly := true
	if v := c.QueryParam("active_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid active_only"})
		}
		activeOnly = b
	}

	var minPrice *float64
	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *float64
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Skip:       skip,
		Limit:      limit,
		CategoryID: categoryID,
		IsOrganic:  isOrganic,
		ActiveOnly: activeOnly,
		Search:     c.QueryParam("search"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		SortBy:     c.QueryParam("sort_by"),
		SortOrder:  c.QueryParam("sort_order"),
		Lang:       c.QueryParam("lang"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id, c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) listByCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("category_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
	}

	activeOnly := true
	if v := c.QueryParam("active_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid active_only"})
		}
		activeOnly = b
	}

	out, err := h.uc.ListProductsByCategory(c.Request().Context(), categoryID, activeOnly, c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type productCreateRequest struct {
	Name                    string            `json:"name"`
	NameTranslations        map[string]string `json:"name_translations"`
	Description             string            `json:"description"`
	DescriptionTranslations map[string]string `json:"description_translations"`
	Price                   float64           `json:"price"`
	Unit                    string            `json:"unit"`
	StockQuantity           int64             `json:"stock_quantity"`
	ImageURL                string            `json:"image_url"`
	IsOrganic               bool              `json:"is_organic"`
	IsActive                *bool             `json:"is_active"`
	CategoryID              int64             `json:"category_id"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//is_active省略時はtrue
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:                    req.Name,
		NameTranslations:        req.NameTranslations,
		Description:             req.Description,
		DescriptionTranslations: req.DescriptionTranslations,
		Price:                   req.Price,
		Unit:                    req.Unit,
		StockQuantity:           req.StockQuantity,
		ImageURL:                req.ImageURL,
		IsOrganic:               req.IsOrganic,
		IsActive:                isActive,
		CategoryID:              req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

type productUpdateRequest struct {
	Name                    *string           `json:"name"`
	NameTranslations        map[string]string `json:"name_translations"`
	Description             *string           `json:"description"`
	DescriptionTranslations map[string]string `json:"description_translations"`
	Price                   *float64          `json:"price"`
	Unit                    *string           `json:"unit"`
	StockQuantity           *int64            `json:"stock_quantity"`
	ImageURL                *string           `json:"image_url"`
	IsOrganic               *bool             `json:"is_organic"`
	IsActive                *bool             `json:"is_active"`
	CategoryID              *int64            `json:"category_id"`
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.ProductUpdateInput{
		Name:                    req.Name,
		NameTranslations:        req.NameTranslations,
		Description:             req.Description,
		DescriptionTranslations: req.DescriptionTranslations,
		Price:                   req.Price,
		Unit:                    req.Unit,
		StockQuantity:           req.StockQuantity,
		ImageURL:                req.ImageURL,
		IsOrganic:               req.IsOrganic,
		IsActive:                req.IsActive,
		CategoryID:              req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
