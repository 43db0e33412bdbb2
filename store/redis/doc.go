// Package redis provides a Redis-backed AnalysisStore.
//
// Records are stored as JSON values keyed by ID, with a per-run set
// indexing each batch run's records. An optional TTL expires old results
// automatically:
//
//	s := redis.NewRedisStore(redis.RedisOptions{
//		Addr:   "localhost:6379",
//		Prefix: "salespipe:",
//		TTL:    24 * time.Hour,
//	})
//	defer s.Close()
package redis
