package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = redis.Nil

type Client struct {
	rdb *redis.Client
}

func New(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	opt.PoolSize = 10
	opt.MinIdleConns = 5

	opt.ConnMaxLifetime = 2 * time.Minute
	opt.ConnMaxIdleTime = 30 * time.Second

	rdb := redis.NewClient(opt)

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
