package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "stride:kv:"

// Redis is a Store backed by a redis instance so two processes on the
// same machine (or two machines) observe each other's writes, the way
// two browser tabs share storage events. Change events ride pub/sub and
// are therefore best effort: a subscriber that was down misses them and
// reconciles through the fallback poll.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(addr, password string, log *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Redis{client: client, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	r.publish(ctx, Event{Key: key, Value: value})
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	r.publish(ctx, Event{Key: key, Removed: true})
	return nil
}

func (r *Redis) Subscribe(key string, fn func(Event)) func() {
	ps := r.client.Subscribe(context.Background(), channelPrefix+key)

	go func() {
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.log.Warn("dropping malformed change event",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fn(ev)
		}
	}()

	return func() { _ = ps.Close() }
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) publish(ctx context.Context, ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := r.client.Publish(ctx, channelPrefix+ev.Key, raw).Err(); err != nil {
		// The write itself succeeded; peers reconcile via polling.
		r.log.Warn("change event publish failed", zap.String("key", ev.Key), zap.Error(err))
	}
}
