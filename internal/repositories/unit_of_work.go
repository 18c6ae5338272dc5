package repositories

import (
	"gorm.io/gorm"
)

// UnitOfWork runs a function against order and inventory repositories
// inside one atomic boundary. Either every write in fn lands or none does;
// a reservation without a persisted order (or the reverse) is never an
// observable state.
type UnitOfWork interface {
	Do(fn func(orders OrderRepository, inventory InventoryRepository) error) error
}

// GORMUnitOfWork implements UnitOfWork on a database transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{
		db: db,
	}
}

// Do executes fn against transaction-bound repositories. GORM rolls the
// transaction back when fn returns an error.
func (u *GORMUnitOfWork) Do(fn func(orders OrderRepository, inventory InventoryRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMOrderRepository(tx), NewGORMInventoryRepository(tx))
	})
}

// MockUnitOfWork implements UnitOfWork over the in-memory repositories by
// snapshotting their state up front and restoring it when fn fails. Tests
// can therefore observe real rollback behavior.
type MockUnitOfWork struct {
	Orders    *MockOrderRepository
	Inventory *MockInventoryRepository
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork.
func NewMockUnitOfWork(orders *MockOrderRepository, inventory *MockInventoryRepository) *MockUnitOfWork {
	return &MockUnitOfWork{
		Orders:    orders,
		Inventory: inventory,
	}
}

// Do executes fn and restores the pre-call state on error.
func (u *MockUnitOfWork) Do(fn func(orders OrderRepository, inventory InventoryRepository) error) error {
	orderState := u.Orders.snapshot()
	inventoryState := u.Inventory.snapshot()

	if err := fn(u.Orders, u.Inventory); err != nil {
		u.Orders.restore(orderState)
		u.Inventory.restore(inventoryState)
		return err
	}
	return nil
}
