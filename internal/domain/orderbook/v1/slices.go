package orderbookv1

// Orders is a slice of Order pointers in book insertion order.
type Orders []*Order

func (o Orders) Len() int      { return len(o) }
func (o Orders) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

// TotalSize sums the resting size of the orders.
func (o Orders) TotalSize() int64 {
	var total int64
	for _, order := range o {
		total += order.Size
	}
	return total
}

// ByBuyPriority orders buys with marketable orders first, then by limit
// price descending. Use with sort.Stable so insertion order breaks ties.
type ByBuyPriority struct {
	Orders
}

func (a ByBuyPriority) Less(i, j int) bool {
	left, right := a.Orders[i], a.Orders[j]
	switch {
	case left.IsMarketable():
		return !right.IsMarketable()
	case right.IsMarketable():
		return false
	default:
		return left.LimitPrice.GreaterThan(right.LimitPrice)
	}
}

// BySellPriority orders sells by limit price ascending. Use with sort.Stable.
type BySellPriority struct {
	Orders
}

func (a BySellPriority) Less(i, j int) bool {
	return a.Orders[i].LimitPrice.LessThan(a.Orders[j].LimitPrice)
}
