package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

func New(dsn string) (*Client, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.ConnMaxIdleTime = 5 * time.Minute
	opts.ConnMaxLifetime = 30 * time.Minute

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) RDB() *redis.Client {
	return c.rdb
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SlidingWindowAllow conta requisições na janela via sorted set e decide se
// a requisição atual passa. Retorna também o retry-after em segundos.
func (c *Client) SlidingWindowAllow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	now := time.Now().Unix()
	windowSeconds := int64(window.Seconds())
	oldest := now - windowSeconds

	if err := c.rdb.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(oldest, 10)).Err(); err != nil {
		return false, 0, err
	}

	count, err := c.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	if count >= limit {
		oldestReq, _ := c.rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
		retryAfter := windowSeconds
		if len(oldestReq) > 0 {
			retryAfter = windowSeconds - (now - int64(oldestReq[0].Score))
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return false, retryAfter, nil
	}

	pipe := c.rdb.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10)})
	pipe.Expire(ctx, key, window)
	_, err = pipe.Exec(ctx)
	return true, 0, err
}
