package service

import (
	"context"
	"errors"
	"testing"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockOfferService(uow *MockUnitOfWork) OfferService {
	return NewOfferService(&MockUnitOfWorkFactory{UoW: uow}, config.NewTestConfig())
}

func TestOfferService_CreateOfferPublishesEvent(t *testing.T) {
	ctx := context.Background()
	uow := NewMockUnitOfWork()

	uow.On("Begin", ctx).Return(nil)
	uow.Offers.On("Exists", ctx, "M1").Return(false, nil)
	uow.Offers.On("Create", ctx, mock.MatchedBy(func(o *models.Offer) bool {
		return o.MatchID == "M1" && o.Status == models.OfferStatusOpen && o.ProfitPercent == 50
	})).Return(nil)
	uow.Publisher.On("Publish", events.OfferCreatedEvent{
		MatchID: "M1", Team1: "A", Team2: "B", ProfitPercent: 50,
	}).Return()
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)

	offer, err := newMockOfferService(uow).CreateOffer(ctx, "M1", "A", "B", 50)
	require.NoError(t, err)
	assert.Equal(t, "M1", offer.MatchID)

	uow.AssertAllExpectations(t)
}

func TestOfferService_CommitFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	uow := NewMockUnitOfWork()
	saveErr := errors.New("store unavailable")

	uow.On("Begin", ctx).Return(nil)
	uow.Offers.On("Exists", ctx, "M1").Return(false, nil)
	uow.Offers.On("Create", ctx, mock.Anything).Return(nil)
	uow.Publisher.On("Publish", mock.Anything).Return()
	uow.On("Commit").Return(saveErr)
	uow.On("Rollback").Return(nil)

	_, err := newMockOfferService(uow).CreateOffer(ctx, "M1", "A", "B", 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)
	assert.Empty(t, KindOf(err))
}

func TestOfferService_DuplicateStopsBeforeCreate(t *testing.T) {
	ctx := context.Background()
	uow := NewMockUnitOfWork()

	uow.On("Begin", ctx).Return(nil)
	uow.Offers.On("Exists", ctx, "M1").Return(true, nil)
	uow.On("Rollback").Return(nil)

	_, err := newMockOfferService(uow).CreateOffer(ctx, "M1", "A", "B", 50)
	assert.ErrorIs(t, err, ErrDuplicateID)

	uow.Offers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit")
}
