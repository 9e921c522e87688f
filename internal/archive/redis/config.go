package redis

// Config holds Redis archive settings.
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string
	// KeepResults caps how many finished games are retained.
	KeepResults int
	// PoolSize is the connection pool size.
	PoolSize int
}

// DefaultConfig returns sensible defaults for the Redis archive.
func DefaultConfig() Config {
	return Config{
		KeepResults: 1000,
		PoolSize:    10,
	}
}
