package postgresrepo

import (
	"context"
	"time"

	"github.com/kirinyoku/fyyur/internal/domain"
	"github.com/kirinyoku/fyyur/internal/repository"
)

type ArtistRepo struct {
	pool Pool
	db   DB
}

func (r *ArtistRepo) With(db DB) *ArtistRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ArtistRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Get retrieves an artist and its genres by ID.
//
// Returns:
//   - *domain.Artist: the artist when found.
//   - error: repository.ErrNotFound if the artist does not exist.
func (r *ArtistRepo) Get(ctx context.Context, id int64) (*domain.Artist, error) {
	const op = "postgresrepo.ArtistRepo.Get"

	db := r.handle()

	var a domain.Artist
	err := db.QueryRow(ctx,
		`SELECT id, name, city, state, phone, image_link, facebook_link, website,
		        seeking_venue, seeking_description
		 FROM artists WHERE id = $1`,
		id,
	).Scan(
		&a.ID,
		&a.Name,
		&a.City,
		&a.State,
		&a.Phone,
		&a.ImageLink,
		&a.FacebookLink,
		&a.Website,
		&a.SeekingVenue,
		&a.SeekingDescription,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	a.Genres, err = artistGenres.load(ctx, db, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

// List returns every artist with its genres, ordered by ID.
func (r *ArtistRepo) List(ctx context.Context) ([]domain.Artist, error) {
	const op = "postgresrepo.ArtistRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT a.id, a.name, a.city, a.state, a.phone, a.image_link, a.facebook_link, a.website,
		        a.seeking_venue, a.seeking_description, `+artistGenres.aggregate("a")+`
		 FROM artists a
		 ORDER BY a.id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.City,
			&a.State,
			&a.Phone,
			&a.ImageLink,
			&a.FacebookLink,
			&a.Website,
			&a.SeekingVenue,
			&a.SeekingDescription,
			&a.Genres,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Summaries lists every artist with the number of its shows starting at or
// after upcomingFrom, ordered by ID.
func (r *ArtistRepo) Summaries(ctx context.Context, upcomingFrom time.Time) ([]domain.ArtistSummary, error) {
	const op = "postgresrepo.ArtistRepo.Summaries"

	rows, err := r.handle().Query(ctx,
		`SELECT a.id, a.name, COUNT(s.id) FILTER (WHERE s.start_time >= $1)
		 FROM artists a
		 LEFT JOIN shows s ON s.artist_id = a.id
		 GROUP BY a.id
		 ORDER BY a.id`,
		upcomingFrom,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanArtistSummaries(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// SearchByName performs a case-insensitive substring match on artist names.
func (r *ArtistRepo) SearchByName(
	ctx context.Context,
	term string,
	upcomingFrom time.Time,
) ([]domain.ArtistSummary, error) {
	const op = "postgresrepo.ArtistRepo.SearchByName"

	rows, err := r.handle().Query(ctx,
		`SELECT a.id, a.name, COUNT(s.id) FILTER (WHERE s.start_time >= $2)
		 FROM artists a
		 LEFT JOIN shows s ON s.artist_id = a.id
		 WHERE a.name ILIKE $1
		 GROUP BY a.id
		 ORDER BY a.name, a.id`,
		likePattern(term), upcomingFrom,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanArtistSummaries(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *ArtistRepo) Create(ctx context.Context, a domain.Artist) (int64, error) {
	const op = "postgresrepo.ArtistRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website,
		                      seeking_venue, seeking_description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		a.Name, a.City, a.State, a.Phone, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	if err := artistGenres.replace(ctx, db, id, a.Genres); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *ArtistRepo) Update(ctx context.Context, id int64, u domain.ArtistUpdate) error {
	const op = "postgresrepo.ArtistRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE artists
		 SET name = $2, city = $3, state = $4, phone = $5, facebook_link = $6
		 WHERE id = $1`,
		id, u.Name, u.City, u.State, u.Phone, u.FacebookLink,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	if err := artistGenres.replace(ctx, db, id, u.Genres); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgresrepo.ArtistRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

func scanArtistSummaries(rows rowScanner) ([]domain.ArtistSummary, error) {
	defer rows.Close()

	var out []domain.ArtistSummary
	for rows.Next() {
		var s domain.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.UpcomingShows); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}
