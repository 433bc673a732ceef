package handlers

import (
	"log"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/repositories"
	"adventureworks/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles the public catalog endpoints.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the catalog routes. They require no auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleGetProduct)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/deals", h.HandleListDeals)
}

// HandleListProducts returns the catalog, optionally filtered by
// category, tag, and a case-insensitive search term.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Query:    c.Query("q"),
	}
	products, err := h.service.GetProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product or 404.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(product)
}

// HandleListCategories returns the category list.
func (h *ProductHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(categories)
}

// HandleListDeals returns the products carrying the deal tag.
func (h *ProductHandler) HandleListDeals(c *fiber.Ctx) error {
	deals, err := h.service.GetDeals()
	if err != nil {
		log.Printf("Error listing deals: %v", err)
		status, msg := apperrors.Classify(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(deals)
}
