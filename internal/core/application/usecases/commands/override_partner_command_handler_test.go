package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgo/internal/core/application/usecases/commands"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
)

func TestOverridePartnerCommandHandler_Handle_AdminReassignsOrder(t *testing.T) {
	ctx := t.Context()

	originalPartnerID := kernel.NewUUID()
	replacementID := kernel.NewUUID()
	replacement := testPartner(t, replacementID)

	aggregate := placedOrder(t, kernel.NewUUID())
	require.NoError(t, aggregate.Accept(originalPartnerID))

	cmd, err := commands.NewOverridePartnerCommand(aggregate.ID(), replacementID, kernel.RoleAdmin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, replacementID).Return(replacement, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("events.OrderAccepted")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOverridePartnerCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.PartnerID())
	assert.True(t, replacementID.IsEqual(*aggregate.PartnerID()))
}

func TestOverridePartnerCommandHandler_Handle_NonAdminIsRejected(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewOverridePartnerCommand(
		kernel.NewOrderID(), kernel.NewUUID(), kernel.RoleDeliveryPartner)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewOverridePartnerCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestOverridePartnerCommandHandler_Handle_UnknownReplacementFails(t *testing.T) {
	ctx := t.Context()

	replacementID := kernel.NewUUID()
	orderID := kernel.NewOrderID()

	cmd, err := commands.NewOverridePartnerCommand(orderID, replacementID, kernel.RoleAdmin)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	notFound := errs.NewObjectNotFoundError("delivery partner", replacementID.String())
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, replacementID).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOverridePartnerCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
