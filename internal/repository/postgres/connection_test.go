package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection_InvalidDSN(t *testing.T) {
	_, err := NewConnection(context.Background(), "postgres://user@localhost:notaport/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse postgres dsn")
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}

	assert.ErrorIs(t, c.Ping(context.Background()), errNilPool)
	assert.NoError(t, c.Close())
}

func TestConnectionOptions(t *testing.T) {
	o := connectionOptions{migrate: true}
	WithMaxConns(7)(&o)
	WithoutMigrations()(&o)

	assert.Equal(t, int32(7), o.maxConns)
	assert.False(t, o.migrate)
}
