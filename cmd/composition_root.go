package cmd

import (
	"context"
	"log/slog"

	httpin "vendorhub/internal/adapters/in/http"
	"vendorhub/internal/adapters/out/postgres"
	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/application/usecases/queries"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/services"
	"vendorhub/internal/jobs"
	"vendorhub/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, countCommittedOrders),
	}
}

func countCommittedOrders(_ context.Context, ids []kernel.UUID) {
	metrics.OrdersCommitted.Add(float64(len(ids)))
}

func (c *CompositionRoot) writeOptions() commands.WriteOptions {
	opts := commands.DefaultWriteOptions()
	opts.StoreTimeout = c.config.OrderStoreTimeout
	opts.MaxAttempts = c.config.OrderUpdateMaxAttempts
	return opts
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpdatePortionCommandHandler() commands.UpdatePortionCommandHandler {
	return commands.NewUpdatePortionCommandHandler(c.orderUoWFactory(), c.writeOptions())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.writeOptions())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.writeOptions())
}

func (c *CompositionRoot) CreateSettleOrdersCommandHandler() commands.SettleOrdersCommandHandler {
	return commands.NewSettleOrdersCommandHandler(c.orderUoWFactory(), services.NewOrderSettler(), c.writeOptions())
}

func (c *CompositionRoot) CreateGetActiveVendorOrdersQueryHandler() queries.GetActiveVendorOrdersQueryHandler {
	return queries.NewGetActiveVendorOrdersQueryHandler(c.gormDB, c.config.OrderStoreTimeout)
}

func (c *CompositionRoot) CreateGetReadyForPickupOrdersQueryHandler() queries.GetReadyForPickupOrdersQueryHandler {
	return queries.NewGetReadyForPickupOrdersQueryHandler(c.gormDB, c.config.OrderStoreTimeout)
}

func (c *CompositionRoot) CreateGetVendorOrderQueryHandler() queries.GetVendorOrderQueryHandler {
	return queries.NewGetVendorOrderQueryHandler(c.gormDB, c.config.OrderStoreTimeout)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		UpdatePortion:     c.CreateUpdatePortionCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		ActiveOrders:      c.CreateGetActiveVendorOrdersQueryHandler(),
		ReadyForPickup:    c.CreateGetReadyForPickupOrdersQueryHandler(),
		VendorOrder:       c.CreateGetVendorOrderQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSettleOrdersCommandHandler(), c.config.OrderSettlementSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
