package rdx

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func RdxSetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(context.Background(), key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(context.Background(), key).Result()
}

func RdxDel(key string) (int64, error) {
	return Conn.Del(context.Background(), key).Result()
}

// RdxPublish pushes a payload onto a pub/sub channel.
func RdxPublish(channel string, payload []byte) error {
	return Conn.Publish(context.Background(), channel, payload).Err()
}
