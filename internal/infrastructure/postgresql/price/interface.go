package price

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// PriceRepository is the repository of historical clearing prices.
type PriceRepository interface {
	Store(ctx context.Context, price *Price) error
	Latest(ctx context.Context, symbol string) (*Price, error)
}
