package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Products  *handler.ProductHandler
	Customers *handler.CustomerHandler
	Orders    *handler.OrderHandler
	Reports   *handler.ReportHandler
	AuditLogs *handler.AuditLogHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Users.RegisterRoutes(e, cfg)
	h.Products.RegisterRoutes(e, cfg)
	h.Customers.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)
	h.Reports.RegisterRoutes(e, cfg)
	h.AuditLogs.RegisterRoutes(e, cfg)
}
