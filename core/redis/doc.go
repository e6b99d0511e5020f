// Package redis provides the Redis client used for upload counters.
//
// The market records live in the relational database; Redis carries the
// write-heavy auxiliary state: uploads-per-day counters, per-world upload
// totals, and the recently-updated item list. All of these are single
// atomic commands (INCR, LPUSH/LTRIM), so no transaction spans them.
//
// # Usage
//
//	rdb, err := redis.Connect(cfg.Redis)
//	if err != nil {
//	    log.Fatal("Redis connection failed", err)
//	}
package redis
