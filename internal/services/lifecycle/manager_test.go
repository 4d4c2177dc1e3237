package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdownRunsHooksInReverseOnce(t *testing.T) {
	m := New(0, nil)
	var order []string
	m.Register("database", func(context.Context) error {
		order = append(order, "database")
		return nil
	})
	m.RegisterCloser("catalog", closerFunc(func() error {
		order = append(order, "catalog")
		return errors.New("already closed")
	}))
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return nil
	})

	err := m.Shutdown(context.Background())
	assert.EqualError(t, err, "already closed")
	assert.Equal(t, []string{"http", "catalog", "database"}, order)

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Len(t, order, 3)
}

func TestListenStop(t *testing.T) {
	m := New(0, nil)
	stop := m.Listen(func() {})
	stop()
	stop()
}
