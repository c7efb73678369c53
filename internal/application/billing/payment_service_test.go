package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/gymtrack/backend/internal/domain/shared"
)

func TestPaymentService_Create(t *testing.T) {
	_, payments, _, _, members, _ := newBillingFixture()
	service := NewPaymentService(payments, members)

	members.On("FindByID", mock.Anything, uint(7)).Return(testMember(7, "Ana", "Torres"), nil)

	var saved *payment.Payment
	payments.On("Save", mock.Anything, mock.AnythingOfType("*payment.Payment")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*payment.Payment)
	}).Return(nil)

	resp, err := service.Create(context.Background(), CreatePaymentRequest{
		MemberID: 7,
		Amount:   decimal.RequireFromString("15.50"),
		Method:   payment.MethodCard,
		Concept:  "Day pass",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.MemberID)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("15.50")))

	require.NotNil(t, saved)
	assert.Equal(t, payment.MethodCard, saved.Method)
	assert.Equal(t, payment.PeriodLabel(saved.PaidAt), saved.Period)
}

func TestPaymentService_Create_DefaultsToCash(t *testing.T) {
	_, payments, _, _, members, _ := newBillingFixture()
	service := NewPaymentService(payments, members)

	members.On("FindByID", mock.Anything, uint(7)).Return(testMember(7, "Ana", "Torres"), nil)

	var saved *payment.Payment
	payments.On("Save", mock.Anything, mock.AnythingOfType("*payment.Payment")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*payment.Payment)
	}).Return(nil)

	_, err := service.Create(context.Background(), CreatePaymentRequest{
		MemberID: 7,
		Amount:   decimal.RequireFromString("5"),
		Concept:  "Guest pass",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, payment.MethodCash, saved.Method)
}

func TestPaymentService_Create_UnknownMember(t *testing.T) {
	_, payments, _, _, members, _ := newBillingFixture()
	service := NewPaymentService(payments, members)

	members.On("FindByID", mock.Anything, uint(99)).Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreatePaymentRequest{
		MemberID: 99,
		Amount:   decimal.RequireFromString("5"),
		Concept:  "Guest pass",
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
