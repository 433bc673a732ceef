package handlers

import (
	"log"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles account and order management across all users.
type AdminHandler struct {
	authService  *services.AuthService
	orderService *services.OrderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		orderService: orderService,
	}
}

// RegisterRoutes registers the admin routes. The router must already
// enforce authentication and the admin gate.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.HandleListUsers)
	router.Delete("/users/:id", h.HandleDeleteUser)
	router.Get("/orders", h.HandleListOrders)
	router.Patch("/orders/:id", h.HandleUpdateOrderStatus)
}

// HandleListUsers returns every account, hashes stripped.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(users)
}

// HandleDeleteUser deletes a non-admin account.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.authService.DeleteUser(c.Params("id")); err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// HandleListOrders returns every order in the store.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(orders)
}

// UpdateOrderStatusRequest is the request body for status updates.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateOrderStatus sets an order's status.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperrors.ErrStatusRequired.Error()})
	}

	if err := h.orderService.UpdateOrderStatus(c.Params("id"), req.Status); err != nil {
		log.Printf("Error updating status for order %s: %v", c.Params("id"), err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(fiber.Map{"message": "Order status updated successfully"})
}
