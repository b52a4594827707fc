package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateCommand(t *testing.T, id kernel.UUID, vendorID kernel.VendorID, status order.PortionStatus,
	items []order.Item) commands.UpdatePortionCommand {
	t.Helper()
	cmd, err := commands.NewUpdatePortionCommand(id, vendorID, status, items)
	require.NoError(t, err)
	return cmd
}

func TestUpdatePortionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	stored := newStoredOrder(id)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	view, err := h.Handle(ctx, newUpdateCommand(t, id, bakery, order.PortionPreparing, nil))

	require.NoError(t, err)
	assert.True(t, view.OrderID.IsEqual(id))
	assert.Equal(t, order.PortionPreparing, view.Portion.Status)
	assert.True(t, view.Portion.VendorID.IsEqual(bakery))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdatePortionCommandHandler_Handle_ItemAdjustment(t *testing.T) {
	id := kernel.NewUUID()
	stored := newStoredOrder(id)
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(stored, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.GrandTotal().String() == "161.80"
	})).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Once()

	bread, err := order.NewItem("bread", "Bread", 4, kernel.MustMoney("25.00"))
	require.NoError(t, err)
	cake, err := order.NewItem("cake", "Cake", 1, kernel.MustMoney("20.00"))
	require.NoError(t, err)

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	view, err := h.Handle(t.Context(),
		newUpdateCommand(t, id, bakery, order.PortionPreparing, []order.Item{bread, cake}))

	require.NoError(t, err)
	assert.Equal(t, "120.00", view.Portion.Subtotal.String())
	assert.Len(t, view.Portion.Items, 2)
	repo.AssertExpectations(t)
}

func TestUpdatePortionCommandHandler_Handle_SameStatusSkipsWrite(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(newStoredOrder(id), nil).Once()
	uow := newMockUoW(repo)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	view, err := h.Handle(t.Context(), newUpdateCommand(t, id, dairy, order.PortionNew, nil))

	require.NoError(t, err)
	assert.Equal(t, order.PortionNew, view.Portion.Status)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertCalled(t, "Rollback", mock.Anything)
}

func TestUpdatePortionCommandHandler_Handle_ForeignVendorForbidden(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(newStoredOrder(id), nil).Once()
	uow := newMockUoW(repo)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	_, err := h.Handle(t.Context(), newUpdateCommand(t, id, butcher, order.PortionPreparing, nil))

	require.ErrorIs(t, err, errs.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpdatePortionCommandHandler_Handle_InvalidTransition(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(newStoredOrder(id), nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	_, err := h.Handle(t.Context(), newUpdateCommand(t, id, bakery, order.PortionPickedUp, nil))

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpdatePortionCommandHandler_Handle_NotFound(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	_, err := h.Handle(t.Context(), newUpdateCommand(t, id, bakery, order.PortionPreparing, nil))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpdatePortionCommandHandler_Handle_RetriesStaleVersion(t *testing.T) {
	id := kernel.NewUUID()
	first := newStoredOrder(id)

	// the concurrent writer confirmed the dairy portion in between
	second := newStoredOrder(id)
	_, err := second.ApplyPortionUpdate(dairy, order.PortionPreparing, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).Return(first, nil).Once()
	repo.On("Update", mock.Anything, first).Return(errs.NewVersionIsInvalidError("order")).Once()
	repo.On("Get", mock.Anything, id).Return(second, nil).Once()
	repo.On("Update", mock.Anything, second).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Twice()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	view, err := h.Handle(t.Context(), newUpdateCommand(t, id, bakery, order.PortionPreparing, nil))

	require.NoError(t, err)
	assert.Equal(t, order.PortionPreparing, view.Portion.Status)
	p, err := second.PortionFor(dairy)
	require.NoError(t, err)
	assert.Equal(t, order.PortionPreparing, p.Status(), "the concurrent change must survive")
	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdatePortionCommandHandler_Handle_ConflictAfterMaxAttempts(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	for range 3 {
		repo.On("Get", mock.Anything, id).Return(newStoredOrder(id), nil).Once()
	}
	repo.On("Update", mock.Anything, mock.Anything).Return(errs.NewVersionIsInvalidError("order")).Times(3)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Times(3)

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	_, err := h.Handle(t.Context(), newUpdateCommand(t, id, bakery, order.PortionPreparing, nil))

	require.ErrorIs(t, err, errs.ErrConflict)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 3, conflict.Attempts)
	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdatePortionCommandHandler_Handle_StoreTimeout(t *testing.T) {
	id := kernel.NewUUID()
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, id).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(newMockUoW(repo)).Once()

	opts := fastOptions()
	opts.StoreTimeout = 20 * time.Millisecond
	h := commands.NewUpdatePortionCommandHandler(factory, opts)
	_, err := h.Handle(t.Context(), newUpdateCommand(t, id, bakery, order.PortionPreparing, nil))

	require.ErrorIs(t, err, errs.ErrTimeout)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpdatePortionCommandHandler_Handle_BeginError(t *testing.T) {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())
	_, err := h.Handle(t.Context(), newUpdateCommand(t, kernel.NewUUID(), bakery, order.PortionPreparing, nil))

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestUpdatePortionCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewUpdatePortionCommandHandler(factory, fastOptions())

	_, err := h.Handle(t.Context(), commands.UpdatePortionCommand{})

	require.ErrorIs(t, err, commands.ErrUpdatePortionCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
