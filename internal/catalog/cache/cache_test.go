package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubSource struct {
	data  []byte
	err   error
	calls int
}

func (s *stubSource) Load(context.Context, models.Collection) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

const ttl = time.Minute

func TestCache_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	src := &stubSource{}
	c := New(client, src, ttl, zaptest.NewLogger(t))

	mock.ExpectGet("catalog:snapshot:drops").SetVal(`[{"id":"d1"}]`)

	data, err := c.Load(context.Background(), models.Drops)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"d1"}]`, string(data))
	assert.Zero(t, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_MissReadsThrough(t *testing.T) {
	client, mock := redismock.NewClientMock()
	src := &stubSource{data: []byte(`[]`)}
	c := New(client, src, ttl, zaptest.NewLogger(t))

	mock.ExpectGet("catalog:snapshot:moments").RedisNil()
	mock.ExpectSet("catalog:snapshot:moments", []byte(`[]`), ttl).SetVal("OK")

	data, err := c.Load(context.Background(), models.Moments)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, 1, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_RedisDownFallsBack(t *testing.T) {
	client, mock := redismock.NewClientMock()
	src := &stubSource{data: []byte(`[{"id":"c1"}]`)}
	c := New(client, src, ttl, zaptest.NewLogger(t))

	mock.ExpectGet("catalog:snapshot:companies").SetErr(errors.New("connection refused"))
	mock.ExpectSet("catalog:snapshot:companies", []byte(`[{"id":"c1"}]`), ttl).SetErr(errors.New("connection refused"))

	data, err := c.Load(context.Background(), models.Companies)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"c1"}]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_SourceErrorIsNotCached(t *testing.T) {
	client, mock := redismock.NewClientMock()
	src := &stubSource{err: e.ErrUnavailable}
	c := New(client, src, ttl, zaptest.NewLogger(t))

	mock.ExpectGet("catalog:snapshot:drops").RedisNil()

	_, err := c.Load(context.Background(), models.Drops)
	assert.ErrorIs(t, err, e.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, &stubSource{}, ttl, zaptest.NewLogger(t))

	mock.ExpectDel("catalog:snapshot:companies").SetVal(1)
	require.NoError(t, c.Invalidate(context.Background(), models.Companies))

	mock.ExpectDel("catalog:snapshot:drops").SetErr(errors.New("boom"))
	assert.Error(t, c.Invalidate(context.Background(), models.Drops))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_HealthCheck(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, &stubSource{}, ttl, zaptest.NewLogger(t))

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, c.HealthCheck(context.Background()))

	mock.ExpectPing().SetErr(errors.New("down"))
	assert.Error(t, c.HealthCheck(context.Background()))
}
