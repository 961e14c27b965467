package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocery-pos/internal/application/dto"
	"github.com/jhoicas/grocery-pos/internal/application/reports"
)

// ReportHandler resúmenes de ventas.
type ReportHandler struct {
	reports *reports.Service
}

func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{reports: svc}
}

// Dashboard ventas y utilidad de hoy y del mes en curso: GET /api/reports/dashboard.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.reports.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDashboardResponse(d))
}

// Daily reporte diario: GET /api/reports/daily.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	day, err := h.reports.ParseDay(c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.reports.Daily(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewReportResponse(r))
}

// Monthly reporte mensual: GET /api/reports/monthly.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	year, month, err := h.reports.ParseMonth(c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.reports.Monthly(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewReportResponse(r))
}
