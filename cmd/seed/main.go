package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kirinyoku/fyyur/internal/config"
	"github.com/kirinyoku/fyyur/internal/postgres"
	redisx "github.com/kirinyoku/fyyur/internal/redis"
	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/seed"
	"github.com/kirinyoku/fyyur/internal/service/admin"
)

func main() {
	dump := flag.String("dump", "", `write stored "venues" or "artists" as CSV to stdout instead of loading`)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(context.Background(), *dump, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dump string, logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Postgres.DSN(), MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	store := postgresrepo.NewStore(pool)

	switch dump {
	case "":
	case "venues":
		venues, err := store.Venues().List(ctx)
		if err != nil {
			return err
		}
		return seed.DumpVenues(os.Stdout, venues)
	case "artists":
		artists, err := store.Artists().List(ctx)
		if err != nil {
			return err
		}
		return seed.DumpArtists(os.Stdout, artists)
	default:
		return fmt.Errorf("unknown -dump target %q", dump)
	}

	rdb, err := redisx.New(ctx, redisx.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	st, err := seed.Load(ctx, admin.New(store, redisrepo.New(rdb)))
	if err != nil {
		return err
	}

	logger.Info("sample data loaded", "venues", st.Venues, "artists", st.Artists, "shows", st.Shows)
	return nil
}
