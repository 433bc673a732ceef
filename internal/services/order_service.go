package services

import (
	"fmt"
	"log"
	"time"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"
	"adventureworks/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dealCut is the flat price reduction applied to "deal"-tagged products.
const dealCut = 0.25

// CartItem is one incoming cart entry. A zero or absent quantity means
// one unit; negative quantities are rejected.
type CartItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CreateOrderInput carries everything needed to assemble an order.
type CreateOrderInput struct {
	UserID   string
	Items    []CartItem
	Address  *models.Address
	Discount *models.Discount
	Shipping float64
}

// OrderEventPublisher emits order lifecycle events. Publishing is best
// effort; a failure must never fail the order itself.
type OrderEventPublisher interface {
	PublishOrderCreated(order *models.Order) error
}

// OrderService handles pricing, order assembly and order reads.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil when
// order events are not configured.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateOrder resolves every cart entry against the catalog, prices the
// lines, and persists the order. Nothing is persisted unless every
// entry resolves.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	lines := make([]models.OrderLine, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, item := range in.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidProduct, item.ProductID)
		}
		if item.Qty < 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNegativeQty, item.ProductID)
		}
		qty := item.Qty
		if qty == 0 {
			qty = 1
		}

		unit := unitPrice(product)
		line := decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(qty))).Round(2)
		subtotal = subtotal.Add(line)

		lines = append(lines, models.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			Brand:     product.Brand,
			Image:     product.Image,
			Tag:       product.Tag,
			Qty:       qty,
			Unit:      unit,
			Line:      line.InexactFloat64(),
		})
	}

	total := subtotal.Round(2)
	if in.Discount != nil && in.Discount.Amount > 0 {
		total = total.Sub(decimal.NewFromFloat(in.Discount.Amount))
	}
	total = total.Add(decimal.NewFromFloat(in.Shipping)).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Items:     lines,
		Total:     total.InexactFloat64(),
		Address:   in.Address,
		Discount:  in.Discount,
		Shipping:  in.Shipping,
		Status:    "created",
		CreatedAt: time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(order); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// GetOrderForUser retrieves an order only if it belongs to the user.
func (s *OrderService) GetOrderForUser(id, userID string) (*models.Order, error) {
	return s.orderRepo.GetByIDForUser(id, userID)
}

// GetAllOrders retrieves every order, for the admin listing.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus updates an order's status. Statuses are free-form;
// admins may set any value.
func (s *OrderService) UpdateOrderStatus(id, status string) error {
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("update %s: %w", id, apperrors.ErrOrderNotFound)
	}
	return nil
}

// unitPrice returns the price actually charged per unit: the catalog
// price, cut 25% and rounded to 2 decimals for "deal"-tagged products.
func unitPrice(p *models.Product) float64 {
	if p.Tag != models.TagDeal {
		return p.Price
	}
	return decimal.NewFromFloat(p.Price).
		Mul(decimal.NewFromFloat(1 - dealCut)).
		Round(2).
		InexactFloat64()
}
