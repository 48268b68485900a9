package handler

import (
	"time"

	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	if raw := c.Query("start"); raw != "" {
		start, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		end, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return
		}
		// inclusive end of day
		end = end.Add(24*time.Hour - time.Second)
	}
	return
}

// ProfitLoss aggregates the period into the P&L figures
// GET /api/v1/reports/profit-loss?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be formatted YYYY-MM-DD"})
	}

	report, err := h.reportService.ProfitLoss(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// Dashboard returns the landing screen KPIs
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	report, err := h.reportService.Dashboard()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build dashboard"})
	}
	return c.JSON(report)
}

// PurchaseSuggestions lists materials to restock with suggested quantities
// GET /api/v1/reports/purchase-suggestions
func (h *ReportHandler) PurchaseSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.reportService.PurchaseSuggestions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build suggestions"})
	}
	return c.JSON(suggestions)
}
