package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/lock"
)

// ─── KeyedMutex ───────────────────────────────────────────────────────────────

func TestKeyedMutex_SerializaMismaClave(t *testing.T) {
	m := lock.NewKeyedMutex()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "receipt:1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside, "nunca debe haber dos dueños de la misma clave")
	assert.Equal(t, 0, m.Len(), "las claves liberadas no deben quedar en el mapa")
}

func TestKeyedMutex_ClavesDistintasNoSeBloquean(t *testing.T) {
	m := lock.NewKeyedMutex()
	unlockA, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	unlockB, err := m.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestKeyedMutex_ContextoCancelado(t *testing.T) {
	m := lock.NewKeyedMutex()
	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(ctx, "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)
	assert.ErrorIs(t, err, domain.ErrConflict)

	unlock()
	unlock() // idempotente
	assert.Equal(t, 0, m.Len())
}

// ─── RedisLocker ──────────────────────────────────────────────────────────────

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisLocker_ObtieneYLibera(t *testing.T) {
	rdb := newRedis(t)
	l := lock.NewRedisLocker(rdb, time.Minute, lock.WithRetry(redislock.NoRetry()))
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "disposal:1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "disposal:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)

	unlock()

	unlock2, err := l.Lock(ctx, "disposal:1")
	require.NoError(t, err, "tras liberar debe poder obtenerse de nuevo")
	unlock2()
}

func TestRedisLocker_ClavesIndependientes(t *testing.T) {
	rdb := newRedis(t)
	l := lock.NewRedisLocker(rdb, time.Minute, lock.WithRetry(redislock.NoRetry()))

	u1, err := l.Lock(context.Background(), "receipt:1")
	require.NoError(t, err)
	defer u1()
	u2, err := l.Lock(context.Background(), "receipt:2")
	require.NoError(t, err)
	defer u2()
}
