package orderreaderv1

import (
	"testing"

	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequest_Validate(t *testing.T) {
	testCases := []struct {
		name           string
		request        PlaceOrderRequest
		expectedFields []string
	}{
		{
			name:    "limit buy",
			request: PlaceOrderRequest{TraderID: "t1", Symbol: "X", Type: OrderTypeLimit, Side: "buy", Size: 1, Price: decimal.NewFromInt(10)},
		},
		{
			name:    "market sell ignores price",
			request: PlaceOrderRequest{TraderID: "t1", Symbol: "X", Type: OrderTypeMarket, Side: "sell", Size: 1},
		},
		{
			name:    "bank purchase needs no side",
			request: PlaceOrderRequest{TraderID: "t1", Symbol: "X", Type: OrderTypeBank, Size: 1},
		},
		{
			name:           "limit without price",
			request:        PlaceOrderRequest{TraderID: "t1", Symbol: "X", Type: OrderTypeLimit, Side: "buy", Size: 1},
			expectedFields: []string{"price"},
		},
		{
			name:           "everything missing",
			request:        PlaceOrderRequest{Type: "cancel"},
			expectedFields: []string{"traderID", "symbol", "size", "type"},
		},
		{
			name:           "bad side",
			request:        PlaceOrderRequest{TraderID: "t1", Symbol: "X", Type: OrderTypeMarket, Side: "hold", Size: 1},
			expectedFields: []string{"side"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.request.Validate()
			if len(tc.expectedFields) == 0 {
				require.NoError(t, err)
				return
			}

			baseErr, ok := err.(*errors.BaseError)
			require.True(t, ok)
			assert.True(t, baseErr.IsAllCodeEqual(errors.ErrInvalidOrder))

			fields := make([]string, 0, len(baseErr.GetDetails()))
			for _, d := range baseErr.GetDetails() {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tc.expectedFields, fields)
		})
	}
}
