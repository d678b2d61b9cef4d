package service

import (
	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/service/admin"
	"github.com/kirinyoku/fyyur/internal/service/query"
)

type Services struct {
	Query *query.Service
	Admin *admin.Service
}

type Config struct {
	Query query.Config
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	cfg Config,
) *Services {
	return &Services{
		Query: query.New(store, cache, cfg.Query),
		Admin: admin.New(store, cache),
	}
}
