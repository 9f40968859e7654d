package corpus

import (
	"context"
	"sort"
)

// HashReader reads a whole Redis hash. *pkg/redis.Client satisfies it.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// RedisHash serves a corpus stored as one Redis hash: field is the document
// id, value is its text. HGETALL is atomic, so every walk sees one
// consistent snapshot. Documents are yielded in id order.
type RedisHash struct {
	client HashReader
	key    string
}

func NewRedisHash(client HashReader, key string) *RedisHash {
	return &RedisHash{client: client, key: key}
}

func (r *RedisHash) Walk(ctx context.Context, fn WalkFunc) error {
	fields, err := r.client.HGetAll(ctx, r.key)
	if err != nil {
		return ioError("reading redis hash "+r.key, err)
	}
	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := fn(Document{ID: id, Text: fields[id]}); err != nil {
			return err
		}
	}
	return nil
}
