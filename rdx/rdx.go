package rdx

import (
	"log"
	"os"
	"time"

	"solstice/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSetWithTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxSetNX is used for short-lived per-user locks.
func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	ok, err := Conn.SetNX(globals.Ctx, key, value, ttl).Result()
	if err != nil {
		log.Printf("RdxSetNX %s failed: %v", key, err)
		return false, err
	}
	return ok, nil
}
