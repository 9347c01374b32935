package rdx

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared redis client, nil until Init runs. Callers treat cache
// misses and a nil client the same way: fall through to mongo.
var Conn *redis.Client

func Init(addr string) error {
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	return Conn.Ping(context.Background()).Err()
}
