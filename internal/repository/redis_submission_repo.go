package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
)

// ConnectRedis opens a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisSubmissionRepo keeps submissions as JSON documents in a single list,
// so RPUSH order is storage order.
type RedisSubmissionRepo struct {
	rdb *redis.Client
	key string
}

func NewRedisSubmissionRepo(rdb *redis.Client, keyPrefix string) *RedisSubmissionRepo {
	return &RedisSubmissionRepo{rdb: rdb, key: keyPrefix + ":" + SubmissionsCollection}
}

func (r *RedisSubmissionRepo) Create(ctx context.Context, sub *models.Submission) (string, error) {
	rec := *sub
	rec.ID = uuid.NewString()
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("redis: marshal submission: %w", err)
	}
	if err := r.rdb.RPush(ctx, r.key, data).Err(); err != nil {
		return "", fmt.Errorf("redis: push submission: %w", err)
	}
	return rec.ID, nil
}

func (r *RedisSubmissionRepo) FindAll(ctx context.Context) ([]models.Submission, error) {
	items, err := r.rdb.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list submissions: %w", err)
	}
	subs := make([]models.Submission, 0, len(items))
	for i, item := range items {
		var s models.Submission
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			slog.WarnContext(ctx, "skipping unreadable submission", "index", i, "err", err)
			continue
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (r *RedisSubmissionRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
