package main

import (
	"fmt"
	"math/rand"

	orderreaderv1 "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1"
	"github.com/shopspring/decimal"
)

// generatorConfig drives generateOrders.
type generatorConfig struct {
	Count       int
	Symbols     []string
	Traders     int
	BasePrice   float64
	PriceSpread float64
}

// generateOrders creates count realistic requests. Every trader opens with a
// bank purchase of each symbol so later sells have a position to draw from.
func generateOrders(rng *rand.Rand, cfg generatorConfig) []orderreaderv1.PlaceOrderRequest {
	orders := make([]orderreaderv1.PlaceOrderRequest, 0, cfg.Count)

	for i := 0; i < cfg.Traders && len(orders) < cfg.Count; i++ {
		for _, symbol := range cfg.Symbols {
			if len(orders) == cfg.Count {
				break
			}
			orders = append(orders, orderreaderv1.PlaceOrderRequest{
				TraderID: traderID(i),
				Symbol:   symbol,
				Type:     orderreaderv1.OrderTypeBank,
				Size:     int64(rng.Intn(20) + 10),
			})
		}
	}

	for len(orders) < cfg.Count {
		// Order types: 80% limit, 20% market
		orderType := orderreaderv1.OrderTypeLimit
		if rng.Float64() < 0.2 {
			orderType = orderreaderv1.OrderTypeMarket
		}

		isBid := rng.Float64() < 0.5
		side := "sell"
		if isBid {
			side = "buy"
		}

		price := decimal.Zero
		if orderType == orderreaderv1.OrderTypeLimit {
			raw := cfg.BasePrice + (rng.Float64()-0.5)*cfg.PriceSpread
			if raw <= 0 {
				raw = cfg.BasePrice
			}
			price = decimal.NewFromFloat(raw).Round(2)
		}

		orders = append(orders, orderreaderv1.PlaceOrderRequest{
			TraderID: traderID(rng.Intn(cfg.Traders)),
			Symbol:   cfg.Symbols[rng.Intn(len(cfg.Symbols))],
			Type:     orderType,
			Side:     side,
			Size:     int64(rng.Intn(10) + 1),
			Price:    price,
		})
	}

	return orders
}

func traderID(i int) string {
	return fmt.Sprintf("trader-%03d", i)
}
