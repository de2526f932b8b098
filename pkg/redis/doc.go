// Package redis bootstraps a Redis client for deployments that share the
// entitlement cache across processes (see ttlcache.RedisStore).
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	cache := ttlcache.NewRedisStore(client, "entitlements")
package redis
