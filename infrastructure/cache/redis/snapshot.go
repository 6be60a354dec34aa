package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

const snapshotKeyPrefix = "snapshot:"

// SnapshotCache guarda os snapshots mesclados (básico + insights) com TTL.
// Falhas de cache degradam para busca direta, nunca derrubam a requisição.
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get devolve o snapshot da chave, ou nil quando não há entrada (cache
// miss não é erro).
func (c *SnapshotCache) Get(ctx context.Context, key string) (*domain.Snapshot, error) {
	val, err := c.rdb.Get(ctx, snapshotKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("cache: entrada de snapshot corrompida, descartando")
		return nil, nil
	}

	return &snapshot, nil
}

// Set grava o snapshot com o TTL configurado.
func (c *SnapshotCache) Set(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.rdb.Set(ctx, snapshotKeyPrefix+key, bytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}

	return nil
}

// InvalidateAccount remove todas as entradas de snapshot que cobrem a
// conta. Usado após mutações confirmadas, para que a próxima carga não
// sirva dados anteriores ao toggle.
func (c *SnapshotCache) InvalidateAccount(ctx context.Context, accountID string) error {
	pattern := fmt.Sprintf("%s*%s*", snapshotKeyPrefix, accountID)

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan snapshot keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete snapshot keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}
