package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/stockmarket/pkg/postgresql"
	"github.com/muhammadchandra19/stockmarket/pkg/redis"
	"github.com/shopspring/decimal"
)

// MustLoad loads the configuration like Load and panics on failure.
func MustLoad[T any](cfg T, files ...string) {
	if err := Load(cfg, files...); err != nil {
		panic(err)
	}
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T, files ...string) error {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return err
	}

	return env.Parse(cfg)
}

// Config holds the configuration for the matching service.
type Config struct {
	Instruments          []string `env:"INSTRUMENTS" envSeparator:","` // SYMBOL:price seed list
	HealthAddr           string   `env:"HEALTH_ADDR" envDefault:":8080"`
	KafkaConfig          `envPrefix:"KAFKA_"`
	MatchPublisherConfig `envPrefix:"PRICE_PUBLISHER_"`
	EngineConfig         `envPrefix:"ENGINE_"`
	Redis                redis.Config      `envPrefix:"REDIS_"`
	Postgres             postgresql.Config `envPrefix:"POSTGRES_"`
}

// KafkaConfig holds the configuration for the order consumer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC" envDefault:"orders"`
	GroupID string   `env:"GROUP_ID"` // empty reads partition 0 directly
	Brokers []string `env:"BROKER" envDefault:"localhost:9092" envSeparator:","`
}

// MatchPublisherConfig holds the configuration for the clearing price producer.
type MatchPublisherConfig struct {
	Topic   string   `env:"TOPIC" envDefault:"prices"`
	Brokers []string `env:"BROKER" envDefault:"localhost:9092" envSeparator:","`
	Channel string   `env:"CHANNEL" envDefault:"prices"`
}

// EngineConfig holds the scheduling knobs of the engine.
type EngineConfig struct {
	Name                string        `env:"NAME" envDefault:"stockmarket"`
	MatchInterval       time.Duration `env:"MATCH_INTERVAL" envDefault:"1s"`
	SnapshotInterval    time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"30s"`
	SnapshotOffsetDelta int64         `env:"SNAPSHOT_OFFSET_DELTA" envDefault:"1000"`
	TraderCash          string        `env:"TRADER_CASH" envDefault:"100000"`
}

// Instrument is a parsed entry of Config.Instruments.
type Instrument struct {
	Symbol string
	Price  decimal.Decimal
}

// ParseInstruments parses the SYMBOL:price seed list.
func (c *Config) ParseInstruments() ([]Instrument, error) {
	instruments := make([]Instrument, 0, len(c.Instruments))
	for _, entry := range c.Instruments {
		symbol, rawPrice, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || symbol == "" {
			return nil, fmt.Errorf("instrument %q: expected SYMBOL:price", entry)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: %w", entry, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("instrument %q: price must not be negative", entry)
		}
		instruments = append(instruments, Instrument{Symbol: symbol, Price: price})
	}
	return instruments, nil
}
