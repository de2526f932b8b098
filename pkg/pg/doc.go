// Package pg bootstraps a PostgreSQL connection pool for applications
// embedding the entitlement engine. The subscription store, plan catalog and
// resource counters all ride on the pool returned here.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
package pg
