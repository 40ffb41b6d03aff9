package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/thereayou/rythmrun/internal/models"
)

const keyPrefix = "refresh:"

// rotateScript: 1 заменено, 0 записи нет, -1 токен не совпал
var rotateScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then
	return 0
end
if cur ~= ARGV[1] then
	return -1
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// RedisStore хранит refresh-сессии в Redis, срок жизни задаётся TTL ключа
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func key(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (s *RedisStore) Save(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Revoke(ctx, userID)
	}
	if err := s.rdb.Set(ctx, key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, userID uint, token string) (*models.RefreshToken, error) {
	pipe := s.rdb.TxPipeline()
	getCmd := pipe.Get(ctx, key(userID))
	ttlCmd := pipe.PTTL(ctx, key(userID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	stored, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		// ключ с истёкшим TTL Redis уже удалил
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	if stored != token {
		return nil, ErrSessionMismatch
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		return nil, ErrSessionExpired
	}
	return &models.RefreshToken{UserID: userID, Token: stored, ExpiresAt: s.now().Add(ttl)}, nil
}

func (s *RedisStore) Rotate(ctx context.Context, userID uint, current, next string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}
	res, err := rotateScript.Run(ctx, s.rdb, []string{key(userID)}, current, next, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("redis rotate: %w", err)
	}
	switch res {
	case 1:
		return nil
	case 0:
		return ErrSessionNotFound
	default:
		return ErrSessionMismatch
	}
}

func (s *RedisStore) Revoke(ctx context.Context, userID uint) error {
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
