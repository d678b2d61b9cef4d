package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/fyyur/internal/domain"
	redisx "github.com/kirinyoku/fyyur/internal/redis"
	"github.com/kirinyoku/fyyur/internal/repository"
	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/viewmodel"
)

type Config struct {
	// EntityTTL bounds how long venue and artist records stay cached.
	EntityTTL time.Duration
	// Location is the zone in which "today" is evaluated.
	Location *time.Location
	Now      func() time.Time
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.EntityTTL <= 0 {
		cfg.EntityTTL = 60 * time.Second
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Now returns the current time in the configured location.
func (s *Service) Now() time.Time {
	return s.cfg.Now().In(s.cfg.Location)
}

func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

// VenueAreas lists every venue grouped by city and state, each with its own
// upcoming-show count.
func (s *Service) VenueAreas(ctx context.Context) ([]viewmodel.VenueArea, error) {
	const op = "service.query.VenueAreas"

	summaries, err := s.store.Venues().Summaries(ctx, domain.UpcomingBoundary(s.Now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return viewmodel.GroupVenuesByCityState(summaries), nil
}

func (s *Service) SearchVenues(ctx context.Context, term string) (viewmodel.SearchResults, error) {
	const op = "service.query.SearchVenues"

	hits, err := s.store.Venues().SearchByName(ctx, term, domain.UpcomingBoundary(s.Now()))
	if err != nil {
		return viewmodel.SearchResults{}, fmt.Errorf("%s: %w", op, err)
	}

	return viewmodel.BuildSearchResults(term, viewmodel.VenueHits(hits)), nil
}

// Venue retrieves a venue record, going through the cache.
//
// Returns:
//   - error: query.ErrVenueNotFound if the venue does not exist.
func (s *Service) Venue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "service.query.Venue"

	venue, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyVenue(id),
		s.cfg.EntityTTL,
		func(ctx context.Context) (domain.Venue, error) {
			v, err := s.store.Venues().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Venue{}, ErrVenueNotFound
				}

				return domain.Venue{}, err
			}

			return *v, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &venue, nil
}

// VenueDetail loads a venue together with its shows split into past and
// upcoming.
//
// Returns:
//   - error: query.ErrVenueNotFound if the venue does not exist.
func (s *Service) VenueDetail(ctx context.Context, id int64) (*viewmodel.VenueDetail, error) {
	const op = "service.query.VenueDetail"

	var (
		venue *domain.Venue
		shows []domain.ShowDetails
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		venue, err = s.Venue(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		shows, err = s.store.Shows().ListByVenue(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := viewmodel.BuildVenueDetail(*venue, shows, s.Now())
	return &d, nil
}

// Artists lists every artist by ID with its upcoming-show count.
func (s *Service) Artists(ctx context.Context) ([]viewmodel.SearchHit, error) {
	const op = "service.query.Artists"

	summaries, err := s.store.Artists().Summaries(ctx, domain.UpcomingBoundary(s.Now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return viewmodel.ArtistHits(summaries), nil
}

func (s *Service) SearchArtists(ctx context.Context, term string) (viewmodel.SearchResults, error) {
	const op = "service.query.SearchArtists"

	hits, err := s.store.Artists().SearchByName(ctx, term, domain.UpcomingBoundary(s.Now()))
	if err != nil {
		return viewmodel.SearchResults{}, fmt.Errorf("%s: %w", op, err)
	}

	return viewmodel.BuildSearchResults(term, viewmodel.ArtistHits(hits)), nil
}

// Artist retrieves an artist record, going through the cache.
//
// Returns:
//   - error: query.ErrArtistNotFound if the artist does not exist.
func (s *Service) Artist(ctx context.Context, id int64) (*domain.Artist, error) {
	const op = "service.query.Artist"

	artist, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyArtist(id),
		s.cfg.EntityTTL,
		func(ctx context.Context) (domain.Artist, error) {
			a, err := s.store.Artists().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Artist{}, ErrArtistNotFound
				}

				return domain.Artist{}, err
			}

			return *a, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &artist, nil
}

// ArtistDetail loads an artist together with its shows split into past and
// upcoming.
//
// Returns:
//   - error: query.ErrArtistNotFound if the artist does not exist.
func (s *Service) ArtistDetail(ctx context.Context, id int64) (*viewmodel.ArtistDetail, error) {
	const op = "service.query.ArtistDetail"

	var (
		artist *domain.Artist
		shows  []domain.ShowDetails
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		artist, err = s.Artist(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		shows, err = s.store.Shows().ListByArtist(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := viewmodel.BuildArtistDetail(*artist, shows, s.Now())
	return &d, nil
}

func (s *Service) Shows(ctx context.Context) ([]viewmodel.ShowRow, error) {
	const op = "service.query.Shows"

	shows, err := s.store.Shows().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return viewmodel.BuildShowListing(shows, s.cfg.Location), nil
}
