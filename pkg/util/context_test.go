package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		assertFn func(t *testing.T, got string)
	}{
		{
			name: "keeps provided id",
			id:   "pass-1",
			assertFn: func(t *testing.T, got string) {
				assert.Equal(t, "pass-1", got)
			},
		},
		{
			name: "generates uuid when empty",
			id:   "",
			assertFn: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := WithRequestID(context.Background(), tc.id)
			tc.assertFn(t, GetRequestID(ctx))
		})
	}
}

func TestContextValuesMissing(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetSymbol(ctx))
	assert.Equal(t, "X", GetSymbol(WithSymbol(ctx, "X")))
}
