package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"vendorhub/internal/adapters/out/postgres"
	"vendorhub/internal/adapters/out/postgres/orderrepo"
	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type ConcurrentUpdatesTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   commands.OrderUoWFactory
	opts      commands.WriteOptions
}

func (suite *ConcurrentUpdatesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	uowFactory := postgres.NewGormUnitOfWorkFactory(db)
	suite.factory = funcOrderUoWFactory(func() commands.OrderUoW {
		return uowFactory.Create()
	})
	suite.opts = commands.WriteOptions{
		StoreTimeout:      5 * time.Second,
		MaxAttempts:       5,
		RetryInitialDelay: 5 * time.Millisecond,
	}
}

func (suite *ConcurrentUpdatesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ConcurrentUpdatesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *ConcurrentUpdatesTestSuite) TestDisjointPortionsBothPersist() {
	ctx := context.Background()
	id := suite.createOrder(ctx)

	suite.runConcurrently(id, order.PortionPreparing, bakery, dairy, butcher)

	stored := suite.load(ctx, id)
	for _, p := range stored.Portions() {
		suite.Equal(order.PortionPreparing, p.Status(), p.VendorID().String())
	}
	suite.Equal(int64(3), stored.Version())
	suite.Equal("201.80", stored.GrandTotal().String())
}

func (suite *ConcurrentUpdatesTestSuite) TestLastReadyPortionPromotesOrder() {
	ctx := context.Background()
	id := suite.createOrder(ctx)
	suite.runConcurrently(id, order.PortionPreparing, bakery, dairy, butcher)

	suite.runConcurrently(id, order.PortionReadyForPickup, bakery, dairy, butcher)

	stored := suite.load(ctx, id)
	suite.Equal(order.OverallReadyForPickup, stored.OverallStatus())
}

func (suite *ConcurrentUpdatesTestSuite) runConcurrently(
	id kernel.UUID,
	status order.PortionStatus,
	vendors ...kernel.VendorID,
) {
	handler := commands.NewUpdatePortionCommandHandler(suite.factory, suite.opts)

	var wg sync.WaitGroup
	errCh := make(chan error, len(vendors))
	for _, v := range vendors {
		cmd, err := commands.NewUpdatePortionCommand(id, v, status, nil)
		suite.Require().NoError(err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, handleErr := handler.Handle(context.Background(), cmd)
			errCh <- handleErr
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}
}

// createOrder stores bakery 100.00, dairy 40.00 and butcher 60.00 plus 1.80 in fees.
func (suite *ConcurrentUpdatesTestSuite) createOrder(ctx context.Context) kernel.UUID {
	lines := []struct {
		vendor kernel.VendorID
		item   string
		qty    int
		price  string
	}{
		{bakery, "bread", 4, "25.00"},
		{dairy, "milk", 2, "20.00"},
		{butcher, "ham", 3, "20.00"},
	}

	portions := make([]*order.Portion, 0, len(lines))
	for _, l := range lines {
		item, err := order.NewItem(l.item, l.item, l.qty, kernel.MustMoney(l.price))
		suite.Require().NoError(err)
		p, err := order.NewPortion(l.vendor, []order.Item{item})
		suite.Require().NoError(err)
		portions = append(portions, p)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, portions,
		kernel.MustMoney("1.50"), kernel.MustMoney("0.30"), order.PaymentPaid, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateOrderCommandHandler(suite.factory, suite.opts).Handle(ctx, cmd))
	return id
}

func (suite *ConcurrentUpdatesTestSuite) load(ctx context.Context, id kernel.UUID) *order.Order {
	o, err := suite.factory.Create().OrderRepository().Get(ctx, id)
	suite.Require().NoError(err)
	return o
}

func TestConcurrentUpdatesTestSuite(t *testing.T) {
	suite.Run(t, new(ConcurrentUpdatesTestSuite))
}
