package orderbook

import (
	"math"
	"sort"

	orderbookv1 "github.com/muhammadchandra19/stockmarket/internal/domain/orderbook/v1"
)

// prioritizeBuys returns a copy of buys with marketable orders first, then
// by limit price descending. Equal prices keep insertion order.
func prioritizeBuys(buys orderbookv1.Orders) orderbookv1.Orders {
	sorted := make(orderbookv1.Orders, len(buys))
	copy(sorted, buys)
	sort.Stable(orderbookv1.ByBuyPriority{Orders: sorted})
	return sorted
}

// prioritizeSells returns a copy of sells by limit price ascending.
// Equal prices keep insertion order.
func prioritizeSells(sells orderbookv1.Orders) orderbookv1.Orders {
	sorted := make(orderbookv1.Orders, len(sells))
	copy(sorted, sells)
	sort.Stable(orderbookv1.BySellPriority{Orders: sorted})
	return sorted
}

// FindCrossing scans every (buy, sell) prefix pair of the priority ordered
// sequences and keeps the best viable one.
//
// A pair is viable when the cumulative buy volume covers the cumulative sell
// volume and the buy limit is at least the sell limit. A marketable buy
// (price 0) is therefore only compatible with a marketable sell. A pair
// replaces the best so far when its imbalance is not larger and its
// cumulative sell volume is strictly larger. The clearing price is the limit
// of the marginal sell order and the matched volume its cumulative sell volume.
func FindCrossing(symbol string, buys, sells orderbookv1.Orders) orderbookv1.Crossing {
	crossing := orderbookv1.NoCrossing(symbol)

	bestImbalance := int64(math.MaxInt64)
	bestSellVolume := int64(-1)

	var buyVolume int64
	for i, buy := range buys {
		buyVolume += buy.Size

		var sellVolume int64
		for j, sell := range sells {
			sellVolume += sell.Size
			if buyVolume < sellVolume {
				// sizes are positive, every later j is short as well
				break
			}

			imbalance := buyVolume - sellVolume
			if imbalance <= bestImbalance &&
				sellVolume > bestSellVolume &&
				buy.LimitPrice.GreaterThanOrEqual(sell.LimitPrice) {
				crossing.BuyIndex = i
				crossing.SellIndex = j
				crossing.ClearingPrice = sell.LimitPrice
				crossing.MatchedVolume = sellVolume

				bestImbalance = imbalance
				bestSellVolume = sellVolume
			}
		}
	}

	return crossing
}
