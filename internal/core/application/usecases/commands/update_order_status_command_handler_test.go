package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/application/usecases/commands"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"
)

func TestNewUpdateOrderStatusCommand_RejectsInitialStatus(t *testing.T) {
	aggregate := placedOrder(t, kernel.NewUUID())

	_, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), kernel.NewUUID(), order.StatusPlaced, nil)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	aggregate := placedOrder(t, kernel.NewUUID())
	require.NoError(t, aggregate.Accept(partnerID))

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), partnerID, order.StatusPreparing, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("events.StatusUpdate")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, aggregate.Status())

	update := publisher.Calls[0].Arguments[1].(events.StatusUpdate)
	assert.Equal(t, "preparing", update.Status)
	assert.Equal(t, []string{events.OrderChannel(aggregate.ID().String())}, update.Channels())
}

func TestUpdateOrderStatusCommandHandler_Handle_NotAssignedPartner(t *testing.T) {
	ctx := t.Context()

	aggregate := placedOrder(t, kernel.NewUUID())
	require.NoError(t, aggregate.Accept(kernel.NewUUID()))

	stranger := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), stranger, order.StatusPreparing, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	publisher.AssertNotCalled(t, "Publish")
}

func TestUpdateOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	aggregate := placedOrder(t, kernel.NewUUID())
	require.NoError(t, aggregate.Accept(partnerID))

	// confirmed cannot jump straight to delivered
	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), partnerID, order.StatusDelivered, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
}
