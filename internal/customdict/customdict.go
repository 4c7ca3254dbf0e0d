package customdict

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// CustomDict stores user-added vocabulary words in a Redis set so they
// survive restarts and are shared between instances.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a CustomDict on the provided Redis client. key is the set key;
// empty means "custom_dict".
func New(client *redis.Client, key string) *CustomDict {
	if key == "" {
		key = "custom_dict"
	}
	return &CustomDict{client: client, key: key}
}

func (cd *CustomDict) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(word string) error {
	ctx, cancel := cd.ctx()
	defer cancel()
	return cd.client.SAdd(ctx, cd.key, word).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(word string) error {
	ctx, cancel := cd.ctx()
	defer cancel()
	return cd.client.SRem(ctx, cd.key, word).Err()
}

// All returns every word stored in the custom dictionary.
func (cd *CustomDict) All() ([]string, error) {
	ctx, cancel := cd.ctx()
	defer cancel()
	return cd.client.SMembers(ctx, cd.key).Result()
}
