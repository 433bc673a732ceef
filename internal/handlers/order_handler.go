package handlers

import (
	"fmt"
	"log"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"
	"adventureworks/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles order creation, retrieval, and invoice delivery
// for the authenticated customer.
type OrderHandler struct {
	orderService   *services.OrderService
	invoiceService *services.InvoiceService
	mailService    *services.MailService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, invoiceService *services.InvoiceService, mailService *services.MailService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
		mailService:    mailService,
	}
}

// RegisterRoutes registers the order routes. The router must already
// enforce authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Get("/:id/invoice.pdf", h.HandleDownloadInvoice)
	orderRoutes.Post("/:id/send-invoice", h.HandleSendInvoice)
}

// CreateOrderRequest is the request body for checkout.
type CreateOrderRequest struct {
	Items    []services.CartItem `json:"items"`
	Address  *models.Address     `json:"address"`
	Discount *models.Discount    `json:"discount"`
	Shipping float64             `json:"shipping"`
}

// HandleCreateOrder prices the cart and persists the resulting order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.CreateOrder(services.CreateOrderInput{
		UserID:   userID,
		Items:    req.Items,
		Address:  req.Address,
		Discount: req.Discount,
		Shipping: req.Shipping,
	})
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrder returns one of the caller's orders. Another user's
// order is indistinguishable from a missing one.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.GetOrderForUser(c.Params("id"), userID)
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(order)
}

// HandleDownloadInvoice renders the order's invoice and streams it as
// a PDF document.
func (h *OrderHandler) HandleDownloadInvoice(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.GetOrderForUser(c.Params("id"), userID)
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	invoicePDF, err := h.invoiceService.Render(order)
	if err != nil {
		log.Printf("Error generating invoice for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": apperrors.ErrInvoiceRender.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="Factura-%s.pdf"`, order.ID))
	return c.Send(invoicePDF)
}

// HandleSendInvoice renders the order's invoice and emails it to the
// order's address.
func (h *OrderHandler) HandleSendInvoice(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	order, err := h.orderService.GetOrderForUser(c.Params("id"), userID)
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	if order.Address == nil || order.Address.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperrors.ErrNoOrderEmail.Error()})
	}

	invoicePDF, err := h.invoiceService.Render(order)
	if err != nil {
		log.Printf("Error generating invoice for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": apperrors.ErrInvoiceRender.Error()})
	}

	if err := h.mailService.SendInvoice(order, invoicePDF, order.Address.Email); err != nil {
		log.Printf("Error sending invoice for order %s: %v", order.ID, err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"message": "Invoice sent successfully"})
}
