package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

var _ inventory.Locker = (*RedisLocker)(nil)

const keyPrefix = "almacen:lock:"

// RedisLocker lock distribuido sobre redislock; el TTL evita locks huérfanos si el proceso cae.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
	log    *logger.Logger
}

// Option configura el RedisLocker.
type Option func(*RedisLocker)

// WithRetry estrategia de reintento al obtener el lock (por defecto 10 intentos cada 100ms).
func WithRetry(r redislock.RetryStrategy) Option {
	return func(l *RedisLocker) { l.retry = r }
}

// WithLogger logger para fallos al liberar.
func WithLogger(log *logger.Logger) Option {
	return func(l *RedisLocker) { l.log = log }
}

// NewRedisLocker construye el locker sobre un cliente go-redis.
func NewRedisLocker(rdb redislock.RedisClient, ttl time.Duration, opts ...Option) *RedisLocker {
	l := &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 10),
		log:    logger.Nop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Lock obtiene la clave o devuelve domain.ErrLockNotObtained al agotar los reintentos.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("lock %s: %w", key, domain.ErrLockNotObtained)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock")
		}
	}, nil
}

// NewRedisClient conecta a Redis y verifica con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
