package pricepublisher

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	pricepublisherv1 "github.com/muhammadchandra19/stockmarket/internal/domain/price-publisher/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	redis_mock "github.com/muhammadchandra19/stockmarket/pkg/redis/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_PublishPrice(t *testing.T) {
	ctx := context.Background()
	price := decimal.RequireFromString("90.5")

	t.Run("stores and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := redis_mock.NewMockClient(ctrl)
		gomock.InOrder(
			client.EXPECT().HSet(ctx, "sm:prices", map[string]any{"X": "90.5"}).Return(int64(1), nil),
			client.EXPECT().Publish(ctx, "prices", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, message any) (int64, error) {
				event, err := pricepublisherv1.FromBytes(message.([]byte))
				require.NoError(t, err)
				assert.Equal(t, "X", event.Symbol)
				assert.True(t, price.Equal(event.Price))
				return 0, nil
			}),
		)

		publisher := NewRedisPublisher(client, "sm:prices", "prices", logger.NewNopLogger())
		assert.NoError(t, publisher.PublishPrice(ctx, "X", price))
	})

	t.Run("hset failure skips publish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := redis_mock.NewMockClient(ctrl)
		client.EXPECT().HSet(ctx, "sm:prices", gomock.Any()).Return(int64(0), assert.AnError)

		publisher := NewRedisPublisher(client, "sm:prices", "prices", logger.NewNopLogger())
		assert.ErrorIs(t, publisher.PublishPrice(ctx, "X", price), assert.AnError)
	})

	t.Run("publish failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := redis_mock.NewMockClient(ctrl)
		client.EXPECT().HSet(ctx, "sm:prices", gomock.Any()).Return(int64(1), nil)
		client.EXPECT().Publish(ctx, "prices", gomock.Any()).Return(int64(0), assert.AnError)

		publisher := NewRedisPublisher(client, "sm:prices", "prices", logger.NewNopLogger())
		assert.ErrorIs(t, publisher.PublishPrice(ctx, "X", price), assert.AnError)
	})
}

func TestRedisPublisher_LastPrice(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		stored        string
		hgetErr       error
		expectedFound bool
		expectedPrice decimal.Decimal
		expectedErr   bool
	}{
		{name: "found", stored: "95", expectedFound: true, expectedPrice: decimal.NewFromInt(95)},
		{name: "missing", stored: ""},
		{name: "redis failure", hgetErr: assert.AnError, expectedErr: true},
		{name: "corrupt value", stored: "abc", expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redis_mock.NewMockClient(ctrl)
			client.EXPECT().HGet(ctx, "sm:prices", "X").Return(tc.stored, tc.hgetErr)

			publisher := NewRedisPublisher(client, "sm:prices", "prices", logger.NewNopLogger())
			got, found, err := publisher.LastPrice(ctx, "X")
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedFound, found)
			if tc.expectedFound {
				assert.True(t, tc.expectedPrice.Equal(got))
			}
		})
	}
}
