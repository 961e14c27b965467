package dto

import (
	"time"

	"github.com/jhoicas/grocery-pos/internal/application/reports"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// ReportResponse totales de ventas de un período [from, to).
type ReportResponse struct {
	Period        string      `json:"period"`
	From          time.Time   `json:"from"`
	To            time.Time   `json:"to"`
	Orders        int         `json:"orders"`
	Subtotal      money.Money `json:"subtotal"`
	TaxTotal      money.Money `json:"tax_total"`
	GrandTotal    money.Money `json:"grand_total"`
	Profit        money.Money `json:"profit"`
	AverageTicket money.Money `json:"average_ticket"`
}

// DashboardResponse ventas de hoy y del mes en curso.
type DashboardResponse struct {
	Today ReportResponse `json:"today"`
	Month ReportResponse `json:"month"`
}

func NewReportResponse(r *reports.Report) ReportResponse {
	return ReportResponse{
		Period:        r.Label,
		From:          r.From,
		To:            r.To,
		Orders:        r.Orders,
		Subtotal:      r.Subtotal,
		TaxTotal:      r.TaxTotal,
		GrandTotal:    r.GrandTotal,
		Profit:        r.Profit,
		AverageTicket: r.AverageTicket,
	}
}

func NewDashboardResponse(d *reports.Dashboard) DashboardResponse {
	return DashboardResponse{Today: NewReportResponse(&d.Today), Month: NewReportResponse(&d.Month)}
}
