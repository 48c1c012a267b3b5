package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
)

// arena holds the orders of one symbol and side in insertion order.
// Removal clears the slot so a walk over a copy of the live orders never
// sees the underlying slice shift.
type arena struct {
	slots []*orderbookv1.Order
	index map[string]int // orderID -> slot
	dead  int
}

func newArena() *arena {
	return &arena{
		slots: make([]*orderbookv1.Order, 0),
		index: make(map[string]int),
	}
}

func (a *arena) add(order *orderbookv1.Order) {
	a.index[order.ID] = len(a.slots)
	a.slots = append(a.slots, order)
}

// remove invalidates the slot of order. It reports false when the order is not held.
func (a *arena) remove(order *orderbookv1.Order) bool {
	slot, ok := a.index[order.ID]
	if !ok || a.slots[slot] != order {
		return false
	}

	a.slots[slot] = nil
	delete(a.index, order.ID)
	a.dead++
	return true
}

func (a *arena) contains(order *orderbookv1.Order) bool {
	slot, ok := a.index[order.ID]
	return ok && a.slots[slot] == order
}

func (a *arena) len() int {
	return len(a.index)
}

// orders returns the live orders in insertion order.
func (a *arena) orders() orderbookv1.Orders {
	live := make(orderbookv1.Orders, 0, a.len())
	for _, order := range a.slots {
		if order != nil {
			live = append(live, order)
		}
	}
	return live
}

// compact drops invalidated slots once they outnumber the live ones.
func (a *arena) compact() {
	if a.dead == 0 || a.dead < a.len() {
		return
	}

	live := a.orders()
	a.slots = live
	for slot, order := range live {
		a.index[order.ID] = slot
	}
	a.dead = 0
}
