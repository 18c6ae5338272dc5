package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCODCollected   OrderStatus = "cod_collected"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

// validNext is the allowed forward adjacency. Cancellation is handled
// separately: it is legal from any non-terminal state and carries ledger
// side effects, so it never goes through a plain status update.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:        {StatusConfirmed: true},
	StatusConfirmed:      {StatusPreparing: true},
	StatusPreparing:      {StatusReadyForPickup: true},
	StatusReadyForPickup: {StatusOutForDelivery: true},
	StatusOutForDelivery: {StatusDelivered: true},
	StatusDelivered:      {StatusCODCollected: true, StatusCompleted: true},
	StatusCODCollected:   {StatusCompleted: true},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether from -> to is a legal forward step.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether the status admits no further mutation.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentMethod is how the customer pays. Only COD is fully modeled;
// card and bank transfer exist for imported orders.
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus tracks money, independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderItem is a line of an order. UnitPrice is the variant price
// snapshotted at order time and never changes afterwards.
type OrderItem struct {
	ID               string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID          string  `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID        string  `json:"product_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	ProductVariantID string  `json:"product_variant_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity         int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice        float64 `json:"unit_price"` // Price at the time of order
	TotalPrice       float64 `json:"total_price"`
}

// Order is a cart snapshot moving through the status lifecycle. Orders are
// never deleted; cancellation is a status, not a removal. All amounts are
// in MAD.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string        `json:"user_id" gorm:"type:varchar(36);index"`
	Items           []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(20);index"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20)"`
	TotalAmount     float64       `json:"total_amount"`
	DeliveryFee     float64       `json:"delivery_fee"`
	TaxAmount       float64       `json:"tax_amount"`
	DiscountAmount  float64       `json:"discount_amount"`
	FinalAmount     float64       `json:"final_amount"`
	DeliveryZoneID  string        `json:"delivery_zone_id" gorm:"type:varchar(36)"`
	DeliveryAddress string        `json:"delivery_address" gorm:"type:varchar(500)"`
	DeliveryPhone   string        `json:"delivery_phone" gorm:"type:varchar(20)"`
	Notes           string        `json:"notes" gorm:"type:varchar(500)"`
	// Version guards against two actors transitioning the same order at once.
	Version   int       `json:"version" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AmountsConsistent checks the money invariant:
// final = total + delivery fee + tax - discount (to the centime).
func (o *Order) AmountsConsistent() bool {
	want := o.TotalAmount + o.DeliveryFee + o.TaxAmount - o.DiscountAmount
	diff := o.FinalAmount - want
	return diff < 0.005 && diff > -0.005
}
