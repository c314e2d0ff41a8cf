package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/reports")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/orders", h.orders)
}

func (h *ReportHandler) orders(c echo.Context) error {
	callerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	period := c.QueryParam("period")
	if period == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid period"})
	}

	out, err := h.uc.GetOrdersReport(c.Request().Context(), callerID, period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
