package handler

import (
	"net/http"
	"strconv"
	"time"

	"freshmarket/internal/config"
	"freshmarket/internal/domain/model"
	"freshmarket/internal/middleware"
	repo "freshmarket/internal/repository"
	"freshmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin 配下の管理API。staff以上のみ。
type AdminHandler struct {
	uc *usecase.ReportUsecase
}

func NewAdminHandler(uc *usecase.ReportUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffRoleGuard())

	g.GET("/dashboard", h.dashboard)
	g.GET("/sales-report", h.salesReport)
	g.GET("/low-stock", h.lowStock)
	g.PUT("/inventory/:product_id", h.setStock)

	//監査ログはadminだけ
	g.GET("/audit-logs", h.auditLogs, middleware.AdminRoleGuard())
}

func (h *AdminHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) salesReport(c echo.Context) error {
	period := c.QueryParam("period")

	var start *time.Time
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
		}
		start = &t
	}

	var end *time.Time
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
		}
		//end_dateはその日の終わりまで含める
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	out, err := h.uc.SalesReport(c.Request().Context(), period, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) lowStock(c echo.Context) error {
	// threshold（default 10）
	threshold := int64(10)
	if v := c.QueryParam("threshold"); v != "" {
		t, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
		}
		threshold = t
	}

	out, err := h.uc.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type setStockRequest struct {
	StockQuantity int64  `json:"stock_quantity"`
	Reason        string `json:"reason"`
}

func (h *AdminHandler) setStock(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetStock(c.Request().Context(), actor, productID, usecase.SetStockInput{
		NewStock: req.StockQuantity,
		Reason:   req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) auditLogs(c echo.Context) error {
	filter := repo.AuditLogFilter{Limit: 100}

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		filter.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		filter.Offset = o
	}
	if v := c.QueryParam("actor_user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid actor_user_id"})
		}
		filter.ActorUserID = &id
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		filter.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		filter.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id"})
		}
		filter.ResourceID = &id
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
