package postgresrepo

import (
	"context"
	"time"

	"github.com/kirinyoku/fyyur/internal/domain"
	"github.com/kirinyoku/fyyur/internal/repository"
)

type VenueRepo struct {
	pool Pool
	db   DB
}

func (r *VenueRepo) With(db DB) *VenueRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *VenueRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Get retrieves a venue and its genres by ID.
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: repository.ErrNotFound if the venue does not exist.
func (r *VenueRepo) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "postgresrepo.VenueRepo.Get"

	db := r.handle()

	var v domain.Venue
	err := db.QueryRow(ctx,
		`SELECT id, name, city, state, address, phone, image_link, website,
		        seeking_talent, seeking_description, facebook_link
		 FROM venues WHERE id = $1`,
		id,
	).Scan(
		&v.ID,
		&v.Name,
		&v.City,
		&v.State,
		&v.Address,
		&v.Phone,
		&v.ImageLink,
		&v.Website,
		&v.SeekingTalent,
		&v.SeekingDescription,
		&v.FacebookLink,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	v.Genres, err = venueGenres.load(ctx, db, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

// List returns every venue with its genres, ordered by ID.
func (r *VenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	const op = "postgresrepo.VenueRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT v.id, v.name, v.city, v.state, v.address, v.phone, v.image_link, v.website,
		        v.seeking_talent, v.seeking_description, v.facebook_link, `+venueGenres.aggregate("v")+`
		 FROM venues v
		 ORDER BY v.id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Venue
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.City,
			&v.State,
			&v.Address,
			&v.Phone,
			&v.ImageLink,
			&v.Website,
			&v.SeekingTalent,
			&v.SeekingDescription,
			&v.FacebookLink,
			&v.Genres,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Summaries lists every venue with the number of its shows starting at or
// after upcomingFrom, ordered by ID.
func (r *VenueRepo) Summaries(ctx context.Context, upcomingFrom time.Time) ([]domain.VenueSummary, error) {
	const op = "postgresrepo.VenueRepo.Summaries"

	rows, err := r.handle().Query(ctx,
		`SELECT v.id, v.name, v.city, v.state,
		        COUNT(s.id) FILTER (WHERE s.start_time >= $1)
		 FROM venues v
		 LEFT JOIN shows s ON s.venue_id = v.id
		 GROUP BY v.id
		 ORDER BY v.id`,
		upcomingFrom,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanVenueSummaries(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// SearchByName performs a case-insensitive substring match on venue names.
func (r *VenueRepo) SearchByName(
	ctx context.Context,
	term string,
	upcomingFrom time.Time,
) ([]domain.VenueSummary, error) {
	const op = "postgresrepo.VenueRepo.SearchByName"

	rows, err := r.handle().Query(ctx,
		`SELECT v.id, v.name, v.city, v.state,
		        COUNT(s.id) FILTER (WHERE s.start_time >= $2)
		 FROM venues v
		 LEFT JOIN shows s ON s.venue_id = v.id
		 WHERE v.name ILIKE $1
		 GROUP BY v.id
		 ORDER BY v.name, v.id`,
		likePattern(term), upcomingFrom,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanVenueSummaries(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Create inserts a venue together with its genres and returns the new ID.
// Run it through With(tx) so both inserts share one transaction.
func (r *VenueRepo) Create(ctx context.Context, v domain.Venue) (int64, error) {
	const op = "postgresrepo.VenueRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO venues (name, city, state, address, phone, image_link, website,
		                     seeking_talent, seeking_description, facebook_link)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.Website,
		v.SeekingTalent, v.SeekingDescription, v.FacebookLink,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	if err := venueGenres.replace(ctx, db, id, v.Genres); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// Update overwrites the editable fields of a venue.
//
// Returns:
//   - error: repository.ErrNotFound if the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, id int64, u domain.VenueUpdate) error {
	const op = "postgresrepo.VenueRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE venues
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

	if err := venueGenres.replace(ctx, db, id, u.Genres); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Delete removes a venue. Its genres and shows go with it through
// ON DELETE CASCADE.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgresrepo.VenueRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

func scanVenueSummaries(rows rowScanner) ([]domain.VenueSummary, error) {
	defer rows.Close()

	var out []domain.VenueSummary
	for rows.Next() {
		var s domain.VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.UpcomingShows); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}
