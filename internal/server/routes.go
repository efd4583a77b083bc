package server

import (
	"freshmarket/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.User.RegisterRoutes(e, cfg)
	h.Admin.RegisterRoutes(e, cfg)
}
