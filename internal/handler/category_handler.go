package handler

import (
	"net/http"
	"strconv"

	"freshmarket/internal/config"
	"freshmarket/internal/middleware"
	"freshmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /categories のAPI。閲覧は公開、変更はstaff以上。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/categories", h.list)
	e.GET("/categories/:id", h.detail)

	g := e.Group("/categories")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffRoleGuard())
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *CategoryHandler) list(c echo.Context) error {
	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid skip"})
		}
		skip = s
	}

	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	activeOnly := true
	if v := c.QueryParam("active_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid active_only"})
		}
		activeOnly = b
	}

	out, err := h.uc.ListCategories(c.Request().Context(), activeOnly, skip, limit, c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetCategory(c.Request().Context(), id, c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type categoryCreateRequest struct {
	Name                    string            `json:"name"`
	NameTranslations        map[string]string `json:"name_translations"`
	Description             string            `json:"description"`
	DescriptionTranslations map[string]string `json:"description_translations"`
	ImageURL                string            `json:"image_url"`
	IsActive                *bool             `json:"is_active"`
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req categoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Name:                    req.Name,
		NameTranslations:        req.NameTranslations,
		Description:             req.Description,
		DescriptionTranslations: req.DescriptionTranslations,
		ImageURL:                req.ImageURL,
		IsActive:                isActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

type categoryUpdateRequest struct {
	Name                    *string           `json:"name"`
	NameTranslations        map[string]string `json:"name_translations"`
	Description             *string           `json:"description"`
	DescriptionTranslations map[string]string `json:"description_translations"`
	ImageURL                *string           `json:"image_url"`
	IsActive                *bool             `json:"is_active"`
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req categoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), id, usecase.CategoryUpdateInput{
		Name:                    req.Name,
		NameTranslations:        req.NameTranslations,
		Description:             req.Description,
		DescriptionTranslations: req.DescriptionTranslations,
		ImageURL:                req.ImageURL,
		IsActive:                req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
