package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"seabattle/internal/archive"
	"seabattle/internal/model"
)

// resultsKey is the list of finished games, most recent first.
const resultsKey = "seabattle:results"

// Archive is a Redis-backed implementation of the archive interface.
type Archive struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis archive and verifies the connection.
func New(cfg Config) (*Archive, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Archive{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis archive with an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config) *Archive {
	return &Archive{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (a *Archive) Close() error {
	return a.client.Close()
}

// Ensure Archive implements the interface
var _ archive.Archive = (*Archive)(nil)

func (a *Archive) Record(ctx context.Context, result *model.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	// Push + trim in one round trip so the list never grows unbounded.
	pipe := a.client.Pipeline()
	pipe.LPush(ctx, resultsKey, data)
	pipe.LTrim(ctx, resultsKey, 0, int64(a.cfg.KeepResults)-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (a *Archive) Recent(ctx context.Context, n int) ([]*model.GameResult, error) {
	entries, err := a.client.LRange(ctx, resultsKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.GameResult, 0, len(entries))
	for _, entry := range entries {
		var result model.GameResult
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, nil
}
