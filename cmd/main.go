package main

import (
	"fmt"
	"log"

	"github.com/eng-by-sjb/alutech-storefront-backend/cmd/server"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/config"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/kvstore"
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := newKVStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:     cfg.Server.Addr,
		KVStore:  store,
		Catalog:  cfg.Catalog,
		Checkout: cfg.Checkout,
	},
	)
	srv.Run()
}

func newKVStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		return kvstore.NewRedisStore(cfg.Store.RedisURL)
	case "memory", "":
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf(
			"unknown store backend '%s': want 'memory' or 'redis'",
			cfg.Store.Backend,
		)
	}
}
