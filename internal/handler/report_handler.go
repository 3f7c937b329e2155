package handler

import (
	"github.com/anst-dev/ChotTienBanHang/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	sessions service.SessionService
	catalog  service.CatalogService
}

func NewReportHandler(sessions service.SessionService, catalog service.CatalogService) *ReportHandler {
	return &ReportHandler{sessions: sessions, catalog: catalog}
}

// GetSessionReport reconciles the current shift, active or just closed.
func (h *ReportHandler) GetSessionReport(c *fiber.Ctx) error {
	sess, ok := h.sessions.Current()
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No session"})
	}
	return c.JSON(service.BuildReport(sess, h.catalog.List()))
}

func (h *ReportHandler) GetHistory(c *fiber.Ctx) error {
	return c.JSON(h.sessions.History())
}

func (h *ReportHandler) GetHistoryEntry(c *fiber.Ctx) error {
	sess, ok := h.sessions.HistoryByID(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(sess)
}

func (h *ReportHandler) GetHistoryReport(c *fiber.Ctx) error {
	sess, ok := h.sessions.HistoryByID(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(service.BuildReport(sess, h.catalog.List()))
}
