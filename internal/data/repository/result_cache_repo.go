package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"movie-quiz/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cached reads are namespaced by a generation counter; Create bumps it so
// every older leaderboard and statistics entry is skipped and left to expire.
const (
	cacheGenerationKey = "quiz:results:generation"
	leaderboardPrefix  = "quiz:leaderboard:"
	statisticsPrefix   = "quiz:statistics:"
)

type cachedResultRepository struct {
	ResultRepository

	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	log    *zap.Logger
}

// NewCachedResultRepository serves Leaderboard and Statistics from Redis and
// falls back to next on a miss. Redis failures are logged and bypass the cache.
func NewCachedResultRepository(next ResultRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) ResultRepository {
	return &cachedResultRepository{
		ResultRepository: next,
		client:           client,
		ttl:              ttl,
		log:              log.With(zap.String("repository", "result_cache")),
	}
}

func (r *cachedResultRepository) Create(ctx context.Context, result *entity.QuizResult) error {
	if err := r.ResultRepository.Create(ctx, result); err != nil {
		return err
	}

	if err := r.client.Incr(ctx, cacheGenerationKey).Err(); err != nil {
		r.log.Warn("Failed to invalidate result cache", zap.Error(err))
	}
	return nil
}

func (r *cachedResultRepository) Leaderboard(ctx context.Context, minQuestions, limit int) ([]*entity.QuizResult, error) {
	suffix := strconv.Itoa(minQuestions) + ":" + strconv.Itoa(limit)

	var results []*entity.QuizResult
	err := r.cached(ctx, leaderboardPrefix, suffix, &results, func() (any, error) {
		return r.ResultRepository.Leaderboard(ctx, minQuestions, limit)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cachedResultRepository) Statistics(ctx context.Context) (*entity.Statistics, error) {
	var stats entity.Statistics
	err := r.cached(ctx, statisticsPrefix, "all", &stats, func() (any, error) {
		return r.ResultRepository.Statistics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// cached decodes the entry for prefix+generation+suffix into dest or fills it
// from load. Concurrent misses on the same key share a single load.
func (r *cachedResultRepository) cached(ctx context.Context, prefix, suffix string, dest any, load func() (any, error)) error {
	gen, err := r.client.Get(ctx, cacheGenerationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		r.log.Warn("Result cache unavailable", zap.Error(err))
		return r.loadInto(dest, load)
	}
	key := prefix + gen + ":" + suffix

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		if err := json.Unmarshal(raw, dest); err == nil {
			return nil
		}
		r.log.Warn("Dropping undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("Result cache read failed", zap.Error(err), zap.String("key", key))
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			return json.RawMessage(raw), nil
		}

		value, err := load()
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache entry %s: %w", key, err)
		}
		if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
			r.log.Warn("Result cache write failed", zap.Error(err), zap.String("key", key))
		}
		return json.RawMessage(encoded), nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(v.(json.RawMessage), dest); err != nil {
		return fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return nil
}

func (r *cachedResultRepository) loadInto(dest any, load func() (any, error)) error {
	value, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return json.Unmarshal(raw, dest)
}
