package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/muhammadchandra19/stockmarket/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/redis"
)

// Store keeps the latest market snapshot in Redis as JSON.
type Store struct {
	key         string
	logger      *logger.Logger
	redisclient redis.Client
}

var _ snapshotv1.Store = (*Store)(nil)

// NewSnapshotStore creates a new Store writing under key.
func NewSnapshotStore(redisclient redis.Client, key string, logger *logger.Logger) *Store {
	return &Store{
		key:         key,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store stores the snapshot in Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "key", Value: s.key})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: s.key},
			logger.Field{Key: "orderOffset", Value: snapshot.OrderOffset},
		)
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.Field{Key: "key", Value: s.key},
		logger.Field{Key: "orderOffset", Value: snapshot.OrderOffset},
		logger.Field{Key: "orders", Value: len(snapshot.OrderBookSnapshot.Orders)},
	)
	return nil
}

// LoadStore loads the snapshot from Redis. It returns nil, nil when no
// snapshot was stored yet.
func (s *Store) LoadStore(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: s.key},
			logger.Field{Key: "action", Value: "load snapshot"},
		)
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{Key: "key", Value: s.key})
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: s.key},
			logger.Field{Key: "action", Value: "unmarshal snapshot"},
		)
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
