package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hanout/internal/models"
	"hanout/internal/repositories"
	"hanout/pkg/rabbitmq"

	"github.com/google/uuid"
)

// EventPublisher is the messaging surface the order flow needs. Satisfied
// by *rabbitmq.Client.
type EventPublisher interface {
	Publish(queue string, body []byte) error
}

// OrderService owns the order lifecycle: creation with atomic stock
// reservation, the status state machine, cancellation and COD collection.
type OrderService struct {
	uow           repositories.UnitOfWork
	orderRepo     repositories.OrderRepository
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	zoneRepo      repositories.ZoneRepository
	pricing       *PricingCalculator
	mqClient      EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	uow repositories.UnitOfWork,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	inventoryRepo repositories.InventoryRepository,
	zoneRepo repositories.ZoneRepository,
	pricing *PricingCalculator,
	mqClient EventPublisher,
) *OrderService {
	return &OrderService{
		uow:           uow,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		zoneRepo:      zoneRepo,
		pricing:       pricing,
		mqClient:      mqClient,
	}
}

// CreateOrderItemInput is one requested line of a new order.
type CreateOrderItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// VariantID may be empty; the product's default variant is used then.
	VariantID string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the validated shape for createOrder.
type CreateOrderInput struct {
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryZoneID  string                 `json:"delivery_zone_id" validate:"required,uuid"`
	DeliveryAddress string                 `json:"delivery_address" validate:"required,max=500"`
	DeliveryPhone   string                 `json:"delivery_phone" validate:"required,min=9,max=20"`
	PaymentMethod   models.PaymentMethod   `json:"payment_method" validate:"required,oneof=cod card bank_transfer"`
	DiscountAmount  float64                `json:"discount_amount" validate:"gte=0"`
	Notes           string                 `json:"notes" validate:"omitempty,max=500"`
}

// CreateOrder places a new order for the acting user. Prices are
// snapshotted from the catalog, amounts derived by the pricing calculator,
// and stock is reserved atomically with the order insert: an order is
// never persisted in pending without backing reservation, and a failed
// reservation leaves nothing behind.
func (s *OrderService) CreateOrder(actor models.Actor, input CreateOrderInput) (*models.Order, error) {
	zone, err := s.zoneRepo.GetByID(input.DeliveryZoneID)
	if err != nil {
		return nil, err
	}
	if !zone.IsActive {
		return nil, fmt.Errorf("delivery zone %s is not active: %w", zone.ID, repositories.ErrNotFound)
	}

	// Resolve variants and snapshot their prices.
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		variant, err := s.resolveVariant(in)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID:        variant.ProductID,
			ProductVariantID: variant.ID,
			Quantity:         in.Quantity,
			UnitPrice:        variant.Price,
			TotalPrice:       roundMAD(variant.Price * float64(in.Quantity)),
		})
	}

	breakdown := s.pricing.Quote(items, zone, input.DiscountAmount)

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		UserID:          actor.UserID,
		Items:           items,
		Status:          models.StatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		TotalAmount:     breakdown.TotalAmount,
		DeliveryFee:     breakdown.DeliveryFee,
		TaxAmount:       breakdown.TaxAmount,
		DiscountAmount:  breakdown.DiscountAmount,
		FinalAmount:     breakdown.FinalAmount,
		DeliveryZoneID:  zone.ID,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryPhone:   input.DeliveryPhone,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err = s.uow.Do(func(orders repositories.OrderRepository, inventory repositories.InventoryRepository) error {
		for _, item := range newOrder.Items {
			if err := inventory.Reserve(item.ProductVariantID, item.Quantity); err != nil {
				return err
			}
		}
		return orders.Create(newOrder)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.OrderEventsQueue, map[string]interface{}{
		"event":    "order.created",
		"order_id": newOrder.ID,
		"user_id":  newOrder.UserID,
		"status":   newOrder.Status,
		"final":    newOrder.FinalAmount,
	})
	s.alertLowStock(newOrder.Items)

	return newOrder, nil
}

// resolveVariant finds the priced variant for a requested line, falling
// back to the product's default variant when none is given.
func (s *OrderService) resolveVariant(in CreateOrderItemInput) (*models.ProductVariant, error) {
	if in.VariantID != "" {
		return s.productRepo.GetVariantByID(in.VariantID)
	}
	product, err := s.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	for i := range product.Variants {
		if product.Variants[i].IsDefault {
			return &product.Variants[i], nil
		}
	}
	return nil, fmt.Errorf("product %s has no default variant: %w", in.ProductID, repositories.ErrNotFound)
}

// CancelOrder cancels an order from any non-terminal state, releasing every
// line item's reservation back to available stock in the same transaction.
// Paid orders are marked refunded. Customers may only cancel their own
// orders; admins and managers may cancel any.
func (s *OrderService) CancelOrder(actor models.Actor, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.UserID && !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return nil, ErrUnauthorized
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrOrderFinalized)
	}

	paymentStatus := models.PaymentStatus("")
	if order.PaymentStatus == models.PaymentPaid {
		paymentStatus = models.PaymentRefunded
	}

	err = s.uow.Do(func(orders repositories.OrderRepository, inventory repositories.InventoryRepository) error {
		// Once COD is collected the stock has shipped; there is nothing
		// reserved left to put back.
		if order.Status != models.StatusCODCollected {
			for _, item := range order.Items {
				if err := inventory.Release(item.ProductVariantID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return orders.UpdateStatus(order.ID, order.Version, models.StatusCancelled, paymentStatus)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.OrderEventsQueue, map[string]interface{}{
		"event":    "order.cancelled",
		"order_id": order.ID,
		"user_id":  order.UserID,
	})

	return s.orderRepo.GetByID(orderID)
}

// AdvanceOrderStatus moves an order one step forward along the fulfillment
// chain. Staff only. Cancellation and COD collection have their own entry
// points so their side effects cannot be bypassed.
func (s *OrderService) AdvanceOrderStatus(actor models.Actor, orderID string, next models.OrderStatus) (*models.Order, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager, models.RoleDelivery) {
		return nil, ErrUnauthorized
	}
	if next == models.StatusCancelled || next == models.StatusCODCollected {
		return nil, fmt.Errorf("%s must go through its dedicated operation: %w", next, ErrInvalidTransition)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrOrderFinalized)
	}
	if !models.CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, next, ErrInvalidTransition)
	}

	if order.Status == models.StatusDelivered && next == models.StatusCompleted {
		// A COD order completes only after collection confirmed payment.
		if order.PaymentMethod == models.PaymentCOD && order.PaymentStatus != models.PaymentPaid {
			return nil, fmt.Errorf("COD order %s not collected yet: %w", orderID, ErrInvalidTransition)
		}
		// The stock has shipped; retire the reservation with the same
		// atomicity as the update.
		err = s.uow.Do(func(orders repositories.OrderRepository, inventory repositories.InventoryRepository) error {
			for _, item := range order.Items {
				if err := inventory.Commit(item.ProductVariantID, item.Quantity); err != nil {
					return err
				}
			}
			return orders.UpdateStatus(order.ID, order.Version, next, "")
		})
	} else {
		// Pure status progression; the reservation made at creation stands.
		err = s.orderRepo.UpdateStatus(order.ID, order.Version, next, "")
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.OrderEventsQueue, map[string]interface{}{
		"event":    "order.status_changed",
		"order_id": order.ID,
		"from":     order.Status,
		"to":       next,
	})

	return s.orderRepo.GetByID(orderID)
}

// ConfirmCODPayment records cash collected on delivery. Restricted to
// delivery and admin actors; only legal for COD orders in the delivered
// state. The reserved stock is committed and the order marked paid in one
// transaction.
func (s *OrderService) ConfirmCODPayment(actor models.Actor, orderID string) (*models.Order, error) {
	if !actor.HasRole(models.RoleDelivery, models.RoleAdmin) {
		return nil, ErrUnauthorized
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != models.PaymentCOD {
		return nil, fmt.Errorf("order %s is paid by %s, not COD: %w", orderID, order.PaymentMethod, ErrInvalidTransition)
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrOrderFinalized)
	}
	if order.Status != models.StatusDelivered {
		return nil, fmt.Errorf("order %s is %s, COD is collected at delivery: %w", orderID, order.Status, ErrInvalidTransition)
	}

	err = s.uow.Do(func(orders repositories.OrderRepository, inventory repositories.InventoryRepository) error {
		for _, item := range order.Items {
			if err := inventory.Commit(item.ProductVariantID, item.Quantity); err != nil {
				return err
			}
		}
		return orders.UpdateStatus(order.ID, order.Version, models.StatusCODCollected, models.PaymentPaid)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.OrderEventsQueue, map[string]interface{}{
		"event":     "order.cod_collected",
		"order_id":  order.ID,
		"amount":    order.FinalAmount,
		"collector": actor.UserID,
	})

	return s.orderRepo.GetByID(orderID)
}

// GetOrder retrieves one order. Customers see only their own orders.
func (s *OrderService) GetOrder(actor models.Actor, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.UserID && !actor.Role.Staff() {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// ListOrders lists the actor's own orders, or every order for staff.
func (s *OrderService) ListOrders(actor models.Actor) ([]models.Order, error) {
	if actor.Role.Staff() {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByUserID(actor.UserID)
}

// publishEvent marshals and publishes an event, logging instead of failing
// the business operation when messaging is down.
func (s *OrderService) publishEvent(queue string, event map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event %v: %v", event["event"], err)
		return
	}
	if err := s.mqClient.Publish(queue, body); err != nil {
		log.Printf("Warning: failed to publish %v event: %v", event["event"], err)
	}
}

// alertLowStock publishes a stock.low alert for each ordered variant whose
// available quantity fell to its threshold.
func (s *OrderService) alertLowStock(items []models.OrderItem) {
	for _, item := range items {
		record, err := s.inventoryRepo.GetByVariantID(item.ProductVariantID)
		if err != nil {
			log.Printf("Failed to check stock level for variant %s: %v", item.ProductVariantID, err)
			continue
		}
		if record.IsLowStock() {
			s.publishEvent(rabbitmq.StockAlertsQueue, map[string]interface{}{
				"event":      "stock.low",
				"variant_id": record.ProductVariantID,
				"available":  record.AvailableQuantity,
				"threshold":  record.LowStockThreshold,
			})
		}
	}
}
