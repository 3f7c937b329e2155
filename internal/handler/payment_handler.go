package handler

import (
	"github.com/anst-dev/ChotTienBanHang/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) GetQR(c *fiber.Ctx) error {
	amount := c.QueryFloat("amount", 0)
	description := c.Query("description")
	return c.JSON(fiber.Map{
		"url":  h.service.QRImageURL(amount, description),
		"bank": h.service.Bank(),
	})
}
