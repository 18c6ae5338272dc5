package services_test

import (
	"testing"

	"hanout/internal/models"
	"hanout/internal/repositories"
	"hanout/internal/services"

	"github.com/stretchr/testify/assert"
)

var (
	customer = models.Actor{UserID: "user-1", Role: models.RoleCustomer}
	stranger = models.Actor{UserID: "user-2", Role: models.RoleCustomer}
	manager  = models.Actor{UserID: "staff-1", Role: models.RoleManager}
	courier  = models.Actor{UserID: "courier-1", Role: models.RoleDelivery}
)

// orderFixture wires an OrderService against the in-memory repositories
// with one active Casablanca zone (fee 15.00 MAD, tax rate 0).
type orderFixture struct {
	svc       *services.OrderService
	orders    *repositories.MockOrderRepository
	inventory *repositories.MockInventoryRepository
	products  *repositories.MockProductRepository
	zones     *repositories.MockZoneRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:    repositories.NewMockOrderRepository(),
		inventory: repositories.NewMockInventoryRepository(),
		products:  repositories.NewMockProductRepository(),
		zones:     repositories.NewMockZoneRepository(),
	}
	uow := repositories.NewMockUnitOfWork(f.orders, f.inventory)
	f.svc = services.NewOrderService(uow, f.orders, f.products, f.inventory, f.zones, services.NewPricingCalculator(0), nil)

	err := f.zones.Create(&models.DeliveryZone{
		ID: "zone-casa", City: "Casablanca", NameAr: "الدار البيضاء", NameFr: "Casablanca", NameEn: "Casablanca",
		DeliveryFee: 15.00, IsActive: true,
	})
	assert.NoError(t, err)
	return f
}

// seedVariant registers a product with one default variant and stocks it.
func (f *orderFixture) seedVariant(t *testing.T, productID, variantID string, price float64, stock int) {
	t.Helper()

	err := f.products.Create(&models.Product{
		ID: productID, CategoryID: "cat-1",
		NameAr: "منتج", NameFr: "Produit", NameEn: "Product", IsActive: true,
		Variants: []models.ProductVariant{
			{ID: variantID, SKU: "SKU-" + variantID, NameAr: "وحدة", NameFr: "Unité", NameEn: "Unit", Price: price, IsDefault: true},
		},
	})
	assert.NoError(t, err)
	err = f.inventory.Upsert(&models.InventoryRecord{
		ProductVariantID: variantID, AvailableQuantity: stock, LowStockThreshold: 1,
	})
	assert.NoError(t, err)
}

func (f *orderFixture) placeOrder(t *testing.T, items []services.CreateOrderItemInput, method models.PaymentMethod) *models.Order {
	t.Helper()

	order, err := f.svc.CreateOrder(customer, services.CreateOrderInput{
		Items:           items,
		DeliveryZoneID:  "zone-casa",
		DeliveryAddress: "12 Rue des Hôpitaux, Casablanca",
		DeliveryPhone:   "0612345678",
		PaymentMethod:   method,
	})
	assert.NoError(t, err)
	return order
}

func (f *orderFixture) stockOf(t *testing.T, variantID string) models.InventoryRecord {
	t.Helper()

	record, err := f.inventory.GetByVariantID(variantID)
	assert.NoError(t, err)
	return *record
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)

	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 3},
	}, models.PaymentCOD)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 30.00, order.TotalAmount)
	assert.Equal(t, 15.00, order.DeliveryFee)
	assert.Equal(t, 0.00, order.TaxAmount)
	assert.Equal(t, 45.00, order.FinalAmount)
	assert.True(t, order.AmountsConsistent())
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 10.00, order.Items[0].UnitPrice)

	// Reservation happened atomically with creation.
	stock := f.stockOf(t, "var-x")
	assert.Equal(t, 7, stock.AvailableQuantity)
	assert.Equal(t, 3, stock.ReservedQuantity)
}

func TestOrderService_CreateOrder_DefaultVariant(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 8.50, 5)

	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", Quantity: 2}, // no variant given
	}, models.PaymentCOD)

	assert.Equal(t, "var-x", order.Items[0].ProductVariantID)
	assert.Equal(t, 8.50, order.Items[0].UnitPrice)
}

func TestOrderService_CreateOrder_DiscountNeverInvertsBill(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)

	order, err := f.svc.CreateOrder(customer, services.CreateOrderInput{
		Items:           []services.CreateOrderItemInput{{ProductID: "prod-x", VariantID: "var-x", Quantity: 3}},
		DeliveryZoneID:  "zone-casa",
		DeliveryAddress: "12 Rue des Hôpitaux, Casablanca",
		DeliveryPhone:   "0612345678",
		PaymentMethod:   models.PaymentCOD,
		DiscountAmount:  100.00, // far beyond the 45.00 billable
	})
	assert.NoError(t, err)

	// The persisted discount is the clamped one, so no monetary field
	// ever goes negative and the amounts still reconcile.
	assert.Equal(t, 30.00, order.TotalAmount)
	assert.Equal(t, 15.00, order.DeliveryFee)
	assert.Equal(t, 45.00, order.DiscountAmount)
	assert.Equal(t, 0.00, order.FinalAmount)
	assert.GreaterOrEqual(t, order.FinalAmount, 0.00)
	assert.True(t, order.AmountsConsistent())
}

func TestOrderService_CreateOrder_PartialDiscount(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)

	order, err := f.svc.CreateOrder(customer, services.CreateOrderInput{
		Items:           []services.CreateOrderItemInput{{ProductID: "prod-x", VariantID: "var-x", Quantity: 3}},
		DeliveryZoneID:  "zone-casa",
		DeliveryAddress: "12 Rue des Hôpitaux, Casablanca",
		DeliveryPhone:   "0612345678",
		PaymentMethod:   models.PaymentCOD,
		DiscountAmount:  10.00,
	})
	assert.NoError(t, err)

	assert.Equal(t, 10.00, order.DiscountAmount)
	assert.Equal(t, 35.00, order.FinalAmount)
	assert.True(t, order.AmountsConsistent())
}

func TestOrderService_CreateOrder_InsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-a", "var-a", 10.00, 10)
	f.seedVariant(t, "prod-b", "var-b", 5.00, 1)

	_, err := f.svc.CreateOrder(customer, services.CreateOrderInput{
		Items: []services.CreateOrderItemInput{
			{ProductID: "prod-a", VariantID: "var-a", Quantity: 2},
			{ProductID: "prod-b", VariantID: "var-b", Quantity: 5}, // only 1 in stock
		},
		DeliveryZoneID:  "zone-casa",
		DeliveryAddress: "addr",
		DeliveryPhone:   "0612345678",
		PaymentMethod:   models.PaymentCOD,
	})
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	// Nothing persisted, nothing reserved: the first item's reservation
	// was rolled back with the failed transaction.
	orders, _ := f.orders.GetAll()
	assert.Empty(t, orders)
	stockA := f.stockOf(t, "var-a")
	assert.Equal(t, 10, stockA.AvailableQuantity)
	assert.Equal(t, 0, stockA.ReservedQuantity)
}

func TestOrderService_CreateOrder_InactiveZone(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	err := f.zones.Create(&models.DeliveryZone{ID: "zone-off", City: "Agadir", NameAr: "أكادير", NameFr: "Agadir", NameEn: "Agadir", DeliveryFee: 30, IsActive: false})
	assert.NoError(t, err)

	_, err = f.svc.CreateOrder(customer, services.CreateOrderInput{
		Items:           []services.CreateOrderItemInput{{ProductID: "prod-x", VariantID: "var-x", Quantity: 1}},
		DeliveryZoneID:  "zone-off",
		DeliveryAddress: "addr",
		DeliveryPhone:   "0612345678",
		PaymentMethod:   models.PaymentCOD,
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_FullCODLifecycle(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)

	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 3},
	}, models.PaymentCOD)

	for _, next := range []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReadyForPickup,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		updated, err := f.svc.AdvanceOrderStatus(manager, order.ID, next)
		assert.NoError(t, err)
		assert.Equal(t, next, updated.Status)
		assert.True(t, updated.AmountsConsistent())
	}

	// Cash collected at the door: payment flips to paid and the reserved
	// units are committed out of the ledger.
	collected, err := f.svc.ConfirmCODPayment(courier, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCODCollected, collected.Status)
	assert.Equal(t, models.PaymentPaid, collected.PaymentStatus)

	stock := f.stockOf(t, "var-x")
	assert.Equal(t, 7, stock.AvailableQuantity)
	assert.Equal(t, 0, stock.ReservedQuantity) // committed, not restored

	done, err := f.svc.AdvanceOrderStatus(manager, order.ID, models.StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.True(t, done.AmountsConsistent())
}

func TestOrderService_AdvanceOrderStatus_SkippingStates(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 2},
	}, models.PaymentCOD)

	_, err := f.svc.AdvanceOrderStatus(manager, order.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// Order and ledger are untouched by the rejected transition.
	current, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, models.StatusPending, current.Status)
	stock := f.stockOf(t, "var-x")
	assert.Equal(t, 8, stock.AvailableQuantity)
	assert.Equal(t, 2, stock.ReservedQuantity)
}

func TestOrderService_AdvanceOrderStatus_ReservedTargets(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	// Cancellation and COD collection carry side effects and must go
	// through their dedicated operations.
	_, err := f.svc.AdvanceOrderStatus(manager, order.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	_, err = f.svc.AdvanceOrderStatus(manager, order.ID, models.StatusCODCollected)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrderService_AdvanceOrderStatus_CustomerForbidden(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	_, err := f.svc.AdvanceOrderStatus(customer, order.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-a", "var-a", 10.00, 10)
	f.seedVariant(t, "prod-b", "var-b", 5.00, 4)

	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-a", VariantID: "var-a", Quantity: 2},
		{ProductID: "prod-b", VariantID: "var-b", Quantity: 1},
	}, models.PaymentCOD)

	cancelled, err := f.svc.CancelOrder(customer, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	stockA := f.stockOf(t, "var-a")
	assert.Equal(t, 10, stockA.AvailableQuantity)
	assert.Equal(t, 0, stockA.ReservedQuantity)
	stockB := f.stockOf(t, "var-b")
	assert.Equal(t, 4, stockB.AvailableQuantity)
	assert.Equal(t, 0, stockB.ReservedQuantity)
}

func TestOrderService_CancelOrder_TerminalFails(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	_, err := f.svc.CancelOrder(customer, order.ID)
	assert.NoError(t, err)

	_, err = f.svc.CancelOrder(customer, order.ID)
	assert.ErrorIs(t, err, services.ErrOrderFinalized)
}

func TestOrderService_CancelOrder_StrangerForbidden(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	_, err := f.svc.CancelOrder(stranger, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// Managers may cancel on a customer's behalf.
	_, err = f.svc.CancelOrder(manager, order.ID)
	assert.NoError(t, err)
}

func TestOrderService_ConfirmCOD_WrongPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCard)

	// Rejected regardless of current status.
	_, err := f.svc.ConfirmCODPayment(courier, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	for _, next := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReadyForPickup,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err = f.svc.AdvanceOrderStatus(manager, order.ID, next)
		assert.NoError(t, err)
	}
	_, err = f.svc.ConfirmCODPayment(courier, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrderService_ConfirmCOD_BeforeDelivery(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	_, err := f.svc.ConfirmCODPayment(courier, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrderService_ConfirmCOD_RoleRestricted(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	_, err := f.svc.ConfirmCODPayment(customer, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	_, err = f.svc.ConfirmCODPayment(manager, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestOrderService_NonCODCompletionCommitsStock(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 4},
	}, models.PaymentBankTransfer)

	for _, next := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReadyForPickup,
		models.StatusOutForDelivery, models.StatusDelivered, models.StatusCompleted,
	} {
		_, err := f.svc.AdvanceOrderStatus(manager, order.ID, next)
		assert.NoError(t, err)
	}

	stock := f.stockOf(t, "var-x")
	assert.Equal(t, 6, stock.AvailableQuantity)
	assert.Equal(t, 0, stock.ReservedQuantity)
}

func TestOrderService_CODOrderCannotCompleteUnpaid(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	for _, next := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReadyForPickup,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err := f.svc.AdvanceOrderStatus(manager, order.ID, next)
		assert.NoError(t, err)
	}

	_, err := f.svc.AdvanceOrderStatus(manager, order.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	order := f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	got, err := f.svc.GetOrder(customer, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.svc.GetOrder(stranger, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = f.svc.GetOrder(courier, order.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetOrder(customer, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newOrderFixture(t)
	f.seedVariant(t, "prod-x", "var-x", 10.00, 10)
	f.placeOrder(t, []services.CreateOrderItemInput{
		{ProductID: "prod-x", VariantID: "var-x", Quantity: 1},
	}, models.PaymentCOD)

	mine, err := f.svc.ListOrders(customer)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.ListOrders(stranger)
	assert.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := f.svc.ListOrders(manager)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}
