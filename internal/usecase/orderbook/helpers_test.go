package orderbook

import (
	"fmt"
	"sync"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// notification is what an owner observed when it was notified.
type notification struct {
	orderID string
	size    int64
	status  orderbookv1.Status
	price   decimal.Decimal
}

// recordingOwner records every notification and optionally fails.
type recordingOwner struct {
	mu            sync.Mutex
	notifications []notification
	err           error
	panics        bool
}

func (o *recordingOwner) NotifyFilled(order *orderbookv1.Order, price decimal.Decimal) error {
	o.mu.Lock()
	o.notifications = append(o.notifications, notification{
		orderID: order.ID,
		size:    order.Size,
		status:  order.Status,
		price:   price,
	})
	o.mu.Unlock()

	if o.panics {
		panic("owner exploded")
	}
	return o.err
}

func (o *recordingOwner) calls() []notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]notification(nil), o.notifications...)
}

func createTestOrder(owner orderbookv1.Owner, id, symbol string, side orderbookv1.Side, size int64, price string) *orderbookv1.Order {
	order := orderbookv1.NewOrder(owner, "owner-"+id, symbol, side, size, decimal.RequireFromString(price))
	order.ID = id
	return order
}

func orderIDs(orders []*orderbookv1.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

// decimalEq matches a decimal.Decimal by value.
type decimalEq struct {
	expected decimal.Decimal
}

func eqDecimal(value string) decimalEq {
	return decimalEq{expected: decimal.RequireFromString(value)}
}

func (m decimalEq) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.expected)
}

func (m decimalEq) String() string {
	return fmt.Sprintf("is decimal %s", m.expected)
}
