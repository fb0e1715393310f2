package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the catalog relies on. Any
// redis.UniversalClient satisfies it.
type Client interface {
	redis.UniversalClient
}

// Pipeliner is a batch of queued commands
type Pipeliner interface {
	redis.Pipeliner
}
