package price

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	mockPg "github.com/muhammadchandra19/stockmarket/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow is a pgx.Row holding a single price.
type fakeRow struct {
	price *Price
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanPrice(r.price, dest...)
}

func scanPrice(price *Price, dest ...any) error {
	if len(dest) != 5 {
		return fmt.Errorf("expected 5 destinations, got %d", len(dest))
	}
	*dest[0].(*string) = price.ID
	*dest[1].(*string) = price.Symbol
	*dest[2].(*decimal.Decimal) = price.Price
	*dest[3].(*string) = price.PassID
	*dest[4].(*time.Time) = price.Timestamp
	return nil
}

func TestPrice_Store(t *testing.T) {
	ctx := context.Background()
	query := `INSERT INTO price_history (id, symbol, price, pass_id, timestamp) VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, tc *Price)
		testData *Price
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, tc *Price) {
				mockpg.EXPECT().
					Exec(ctx, query, tc.ID, tc.Symbol, tc.Price, tc.PassID, tc.Timestamp).
					Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
			},
			testData: &Price{ID: "1", Symbol: "X", Price: decimal.NewFromInt(90), PassID: "pass", Timestamp: now},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, tc *Price) {
				mockpg.EXPECT().
					Exec(ctx, query, tc.ID, tc.Symbol, tc.Price, tc.PassID, tc.Timestamp).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			testData: &Price{ID: "1", Symbol: "X", Price: decimal.NewFromInt(90), PassID: "pass", Timestamp: now},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockpg := mockPg.NewMockPostgreSQLClient(ctrl)
			tc.mockFn(mockpg, tc.testData)

			repo := NewRepository(mockpg, logger.NewNopLogger())
			tc.assertFn(t, repo.Store(ctx, tc.testData))
		})
	}
}

func TestPrice_Latest(t *testing.T) {
	ctx := context.Background()
	query := `SELECT id, symbol, price, pass_id, timestamp FROM price_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`
	stored := &Price{ID: "1", Symbol: "X", Price: decimal.NewFromInt(90), PassID: "pass", Timestamp: time.Now()}

	testCases := []struct {
		name     string
		row      pgx.Row
		assertFn func(t *testing.T, price *Price, err error)
	}{
		{
			name: "found",
			row:  fakeRow{price: stored},
			assertFn: func(t *testing.T, price *Price, err error) {
				require.NoError(t, err)
				require.NotNil(t, price)
				assert.Equal(t, "pass", price.PassID)
				assert.True(t, price.Price.Equal(decimal.NewFromInt(90)))
			},
		},
		{
			name: "no rows",
			row:  fakeRow{err: pgx.ErrNoRows},
			assertFn: func(t *testing.T, price *Price, err error) {
				assert.NoError(t, err)
				assert.Nil(t, price)
			},
		},
		{
			name: "error",
			row:  fakeRow{err: errors.New("conn reset")},
			assertFn: func(t *testing.T, price *Price, err error) {
				assert.Error(t, err)
				assert.Nil(t, price)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockpg := mockPg.NewMockPostgreSQLClient(ctrl)
			mockpg.EXPECT().QueryRow(ctx, query, "X").Return(tc.row)

			repo := NewRepository(mockpg, logger.NewNopLogger())
			price, err := repo.Latest(ctx, "X")
			tc.assertFn(t, price, err)
		})
	}
}
