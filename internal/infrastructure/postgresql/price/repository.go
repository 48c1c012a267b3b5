package price

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/postgresql"
)

// repository is the pgx backed PriceRepository.
type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) PriceRepository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Store stores a price.
func (r *repository) Store(ctx context.Context, price *Price) error {
	query := `INSERT INTO price_history (id, symbol, price, pass_id, timestamp) VALUES ($1, $2, $3, $4, $5)`

	cmd, err := r.db.Exec(ctx, query,
		price.ID,
		price.Symbol,
		price.Price,
		price.PassID,
		price.Timestamp,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.DebugContext(ctx, "Inserted price", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// Latest returns the most recent price of symbol, nil when none was recorded.
func (r *repository) Latest(ctx context.Context, symbol string) (*Price, error) {
	query := `SELECT id, symbol, price, pass_id, timestamp FROM price_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`

	var price Price
	err := r.db.QueryRow(ctx, query, symbol).Scan(
		&price.ID,
		&price.Symbol,
		&price.Price,
		&price.PassID,
		&price.Timestamp,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &price, nil
}
