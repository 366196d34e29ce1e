package rdx

import (
	"log"
	"os"
	"time"

	"catashop/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init wires the Redis connection from REDIS_ADDR. Redis is optional: the
// cache, token store and live order feed all degrade to no-ops without it.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set; caching and live order feed disabled")
		return
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis ping failed (%v); caching and live order feed disabled", err)
		Conn = nil
	}
}

func RdxSet(key, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) (int64, error) {
	if Conn == nil {
		return 0, nil
	}
	return Conn.Del(globals.Ctx, key).Result()
}

func RdxHset(hash, field, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	if Conn == nil {
		return 0, nil
	}
	return Conn.HDel(globals.Ctx, hash, field).Result()
}
