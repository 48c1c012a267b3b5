package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"strings"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/stockmarket/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/segmentio/kafka-go"
)

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		file        = flag.String("file", "", "JSON file with orders (optional, generates orders if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending orders")
		count       = flag.Int("count", 1000, "Number of orders to generate")
		symbols     = flag.String("symbols", "AAPL,MSFT", "Symbols to trade (comma-separated)")
		traders     = flag.Int("traders", 20, "Number of distinct traders")
		basePrice   = flag.Float64("base-price", 100, "Base price for limit orders")
		priceSpread = flag.Float64("price-spread", 20, "Price spread range")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var orders []orderreaderv1.PlaceOrderRequest
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error(err, logger.NewField("file", *file))
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &orders); err != nil {
			log.Error(err, logger.NewField("file", *file))
			os.Exit(1)
		}
		log.Info("Loaded orders from file", logger.NewField("count", len(orders)), logger.NewField("file", *file))
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		orders = generateOrders(rng, generatorConfig{
			Count:       *count,
			Symbols:     strings.Split(*symbols, ","),
			Traders:     *traders,
			BasePrice:   *basePrice,
			PriceSpread: *priceSpread,
		})
		log.Info("Generated orders", logger.NewField("count", len(orders)))
	}

	log.Info("Sending orders",
		logger.NewField("brokers", *brokers),
		logger.NewField("topic", *topic),
		logger.NewField("delay", delay.String()),
	)

	sent := 0
	for i, order := range orders {
		if err := order.Validate(); err != nil {
			log.Warn("Skipping invalid order", logger.NewField("index", i), logger.NewField("reason", err.Error()))
			continue
		}

		orderJSON, err := json.Marshal(order)
		if err != nil {
			log.Error(err, logger.NewField("index", i))
			continue
		}

		msg := kafka.Message{
			Key:   []byte(order.TraderID),
			Value: orderJSON,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.NewField("index", i), logger.NewField("traderID", order.TraderID))
			continue
		}
		sent++

		// Log progress every 100 orders or for the last order
		if (i+1)%100 == 0 || i == len(orders)-1 {
			log.Info("Sent order",
				logger.NewField("progress", i+1),
				logger.NewField("total", len(orders)),
				logger.NewField("traderID", order.TraderID),
				logger.NewField("type", order.Type),
				logger.NewField("side", order.Side),
				logger.NewField("symbol", order.Symbol),
				logger.NewField("size", order.Size),
				logger.NewField("price", order.Price.String()),
			)
		}

		if i < len(orders)-1 {
			time.Sleep(*delay)
		}
	}

	summary := map[orderreaderv1.OrderType]int{}
	for _, order := range orders {
		summary[order.Type]++
	}

	log.Info("Summary",
		logger.NewField("sent", sent),
		logger.NewField("total", len(orders)),
		logger.NewField("bank", summary[orderreaderv1.OrderTypeBank]),
		logger.NewField("limit", summary[orderreaderv1.OrderTypeLimit]),
		logger.NewField("market", summary[orderreaderv1.OrderTypeMarket]),
	)
}
