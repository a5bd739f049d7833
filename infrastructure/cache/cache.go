package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang/snappy"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/spaolacci/murmur3"
	"github.com/vfg2006/traffic-manager-kpi/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "kpi:"

var ErrCacheMiss = errors.New("cache: chave não encontrada")

// KPICache guarda resultados de consultas de KPI já calculados
type KPICache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

// Key gera a chave determinística kpi:<murmur3-128 hex> a partir das partes da consulta
func Key(parts ...string) string {
	h := murmur3.New128()
	for _, part := range parts {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func encode(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar valor do cache: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

func decode(data []byte, dest any) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("erro ao descompactar valor do cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("erro ao desserializar valor do cache: %w", err)
	}
	return nil
}

// store é o subconjunto de comandos do Redis usado pelo cache
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct {
	store store
	ttl   time.Duration
}

func newRedisCache(s store, ttl time.Duration) *RedisCache {
	return &RedisCache{store: s, ttl: ttl}
}

// Get retorna ErrCacheMiss quando a chave não existe ou o valor gravado não pode ser lido
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.Get().RecordCache(false)
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("erro ao ler cache: %w", err)
	}

	if err := decode(data, dest); err != nil {
		metrics.Get().RecordCache(false)
		return fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}

	metrics.Get().RecordCache(true)
	return nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}
	return nil
}

// NoopCache é usado quando o Redis está desabilitado
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) error {
	return ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, any) error {
	return nil
}
