package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/fyyur/internal/domain"
	"github.com/kirinyoku/fyyur/internal/repository"
	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/uow"
)

// Service performs every write to the directory. Each call is one unit of
// work; cached records are dropped only after the commit.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache) *Service {
	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
	}
}

// CreateVenue stores a venue with its genres and returns its ID.
func (s *Service) CreateVenue(ctx context.Context, v domain.Venue) (int64, error) {
	const op = "service.admin.CreateVenue"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Venues().With(tx).Create(ctx, v)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// UpdateVenue replaces the editable fields of a venue.
//
// Returns:
//   - error: admin.ErrVenueNotFound if the venue does not exist.
func (s *Service) UpdateVenue(ctx context.Context, id int64, u domain.VenueUpdate) error {
	const op = "service.admin.UpdateVenue"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Venues().With(tx).Update(ctx, id, u); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrVenueNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateVenue(ctx, id)
		})
		return nil
	})
}

// DeleteVenue removes a venue. Its shows go with it.
//
// Returns:
//   - error: admin.ErrVenueNotFound if the venue does not exist.
func (s *Service) DeleteVenue(ctx context.Context, id int64) error {
	const op = "service.admin.DeleteVenue"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Venues().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrVenueNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateVenue(ctx, id)
		})
		return nil
	})
}

// CreateArtist stores an artist with its genres and returns its ID.
func (s *Service) CreateArtist(ctx context.Context, a domain.Artist) (int64, error) {
	const op = "service.admin.CreateArtist"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Artists().With(tx).Create(ctx, a)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// UpdateArtist replaces the editable fields of an artist.
//
// Returns:
//   - error: admin.ErrArtistNotFound if the artist does not exist.
func (s *Service) UpdateArtist(ctx context.Context, id int64, u domain.ArtistUpdate) error {
	const op = "service.admin.UpdateArtist"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Artists().With(tx).Update(ctx, id, u); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrArtistNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateArtist(ctx, id)
		})
		return nil
	})
}

// DeleteArtist removes an artist. Its shows go with it.
//
// Returns:
//   - error: admin.ErrArtistNotFound if the artist does not exist.
func (s *Service) DeleteArtist(ctx context.Context, id int64) error {
	const op = "service.admin.DeleteArtist"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Artists().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrArtistNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateArtist(ctx, id)
		})
		return nil
	})
}

// CreateShow books an artist at a venue.
//
// Returns:
//   - error: admin.ErrUnknownVenueOrArtist if either side does not exist.
func (s *Service) CreateShow(ctx context.Context, show domain.Show) (int64, error) {
	const op = "service.admin.CreateShow"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Shows().With(tx).Create(ctx, show)
		if err != nil {
			if errors.Is(err, repository.ErrInvalidReference) {
				return fmt.Errorf("%s: %w", op, ErrUnknownVenueOrArtist)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}
