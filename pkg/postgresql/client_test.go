package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConnectionString(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     5432,
		Database: "stockmarket",
		Username: "postgres",
		Password: "secret",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://postgres:secret@db:5432/stockmarket?sslmode=disable", BuildConnectionString(cfg))
}
