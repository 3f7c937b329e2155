package handler

import (
	"errors"

	"github.com/anst-dev/ChotTienBanHang/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	return &SessionHandler{service: s}
}

// statusFor maps ledger errors onto HTTP codes: rejected input is the
// caller's fault, mutating an inactive shift is a state conflict.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		return 409
	case errors.Is(err, service.ErrValidation):
		return 400
	default:
		return 500
	}
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sess, ok := h.service.Current()
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No session"})
	}
	return c.JSON(sess)
}

func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	sess := h.service.Start()
	return c.Status(201).JSON(fiber.Map{"message": "Session started", "data": sess})
}

func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	sess, err := h.service.Close()
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Session closed", "data": sess})
}

type updateStockRequest struct {
	Field service.StockField `json:"field"`
	Value float64            `json:"value"`
}

func (h *SessionHandler) UpdateStock(c *fiber.Ctx) error {
	var req updateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateStock(c.Params("productId"), req.Field, req.Value); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Stock updated"})
}

func (h *SessionHandler) RecordSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.RecordSale(&req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": tx})
}

func (h *SessionHandler) EditTransaction(c *fiber.Ctx) error {
	var req service.EditTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, found, err := h.service.EditTransaction(c.Params("id"), &req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(fiber.Map{"message": "Transaction updated", "data": tx})
}

// DeleteTransaction is idempotent on a missing id.
func (h *SessionHandler) DeleteTransaction(c *fiber.Ctx) error {
	if _, err := h.service.DeleteTransaction(c.Params("id")); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(204)
}

func (h *SessionHandler) DeleteAllTransactions(c *fiber.Ctx) error {
	if err := h.service.DeleteAllTransactions(); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(204)
}
