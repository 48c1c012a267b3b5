package pricepublisher

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	pricepublisherv1_mock "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestFanout_PublishPrice(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(90)
	errFirst := errors.New("first")
	errThird := errors.New("third")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := pricepublisherv1_mock.NewMockPricePublisher(ctrl)
	second := pricepublisherv1_mock.NewMockPricePublisher(ctrl)
	third := pricepublisherv1_mock.NewMockPricePublisher(ctrl)

	first.EXPECT().PublishPrice(ctx, "X", price).Return(errFirst)
	second.EXPECT().PublishPrice(ctx, "X", price).Return(nil)
	third.EXPECT().PublishPrice(ctx, "X", price).Return(errThird)

	fanout := NewFanout(first, nil, second, third)
	assert.Len(t, fanout, 3)

	err := fanout.PublishPrice(ctx, "X", price)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errThird)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestFanout_Empty(t *testing.T) {
	assert.NoError(t, NewFanout().PublishPrice(context.Background(), "X", decimal.NewFromInt(1)))
}
