// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/metrics"
	"github.com/MKhiriev/go-code-gen/models"
)

const (
	defaultPollTimeout = time.Second
	redisPingTimeout   = 5 * time.Second
)

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			metrics.QueueErrorsTotal.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			metrics.QueueErrorsTotal.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// NewRedisClient connects to addr, given either as "host:port" or as a
// redis:// URL, and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisQueue stores tasks as JSON in a Redis list: LPUSH to publish, BRPOP
// to consume. Tasks survive a server restart.
//
// The queue does not own the client; close it after the consumers stopped.
type RedisQueue struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
	closed      atomic.Bool

	logger *logger.Logger
}

// NewRedisQueue returns a queue on list key.
func NewRedisQueue(client *redis.Client, key string, logger *logger.Logger) *RedisQueue {
	return &RedisQueue{
		client:      client,
		key:         key,
		pollTimeout: defaultPollTimeout,
		logger:      logger,
	}
}

func (q *RedisQueue) Publish(ctx context.Context, task models.ValidationTask) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encoding validation task: %w", err)
	}

	if err = q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("publishing validation task: %w", err)
	}

	return nil
}

// Consume polls the list with BRPOP. Malformed payloads are logged and
// skipped.
func (q *RedisQueue) Consume(ctx context.Context) (models.ValidationTask, error) {
	for {
		res, err := q.client.BRPop(ctx, q.pollTimeout, q.key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if q.closed.Load() {
				return models.ValidationTask{}, ErrQueueClosed
			}
			continue
		case ctx.Err() != nil:
			return models.ValidationTask{}, ctx.Err()
		case err != nil:
			return models.ValidationTask{}, fmt.Errorf("consuming validation task: %w", err)
		}

		// res is [key, value].
		var task models.ValidationTask
		if err = json.Unmarshal([]byte(res[1]), &task); err != nil {
			metrics.QueueErrorsTotal.WithLabelValues("decode").Inc()
			q.logger.Err(err).Str("payload", res[1]).Msg("skipping malformed validation task")
			continue
		}

		return task, nil
	}
}

// Close is idempotent. Consumers keep popping until the list is empty;
// tasks still listed after shutdown are picked up by the next run.
func (q *RedisQueue) Close() error {
	q.closed.Store(true)
	return nil
}
