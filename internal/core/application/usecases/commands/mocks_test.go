package commands_test

import (
	"context"
	"time"

	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetSettleableIDs(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

var (
	bakery  = kernel.MustNewVendorID("bakery-7")
	dairy   = kernel.MustNewVendorID("dairy-3")
	butcher = kernel.MustNewVendorID("butcher-1")
)

// fastOptions keeps retries quick in unit tests.
func fastOptions() commands.WriteOptions {
	return commands.WriteOptions{
		StoreTimeout:      time.Second,
		MaxAttempts:       3,
		RetryInitialDelay: time.Millisecond,
	}
}

// newStoredOrder returns a fresh aggregate for id as if read from the store:
// bakery 100.00, dairy 40.00, fees 1.80.
func newStoredOrder(id kernel.UUID) *order.Order {
	bread, _ := order.NewItem("bread", "Bread", 4, kernel.MustMoney("25.00"))
	milk, _ := order.NewItem("milk", "Milk", 2, kernel.MustMoney("20.00"))
	p1, _ := order.NewPortion(bakery, []order.Item{bread})
	p2, _ := order.NewPortion(dairy, []order.Item{milk})

	o, err := order.NewOrder(id, []*order.Portion{p1, p2},
		kernel.MustMoney("1.50"), kernel.MustMoney("0.30"), order.PaymentPaid,
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return o
}

// newMockUoW wires a unit of work whose repository is repo and whose
// lifecycle calls all succeed.
func newMockUoW(repo *MockOrderRepository) *MockOrderUoW {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}
