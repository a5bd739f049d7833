package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type goRedisStore struct {
	client *redis.Client
}

func (s *goRedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.client.Get(ctx, key).Bytes()
}

func (s *goRedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// NewRedisCache conecta no Redis a partir de uma URL redis://[:senha@]host:porta[/db]
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, func() error, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"addr": opts.Addr,
		"db":   opts.DB,
		"ttl":  ttl.String(),
	}).Info("Cache Redis conectado")

	return newRedisCache(&goRedisStore{client: client}, ttl), client.Close, nil
}
