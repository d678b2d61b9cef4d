package postgresrepo

import (
	"context"

	"github.com/kirinyoku/fyyur/internal/domain"
)

type ShowRepo struct {
	pool Pool
	db   DB
}

func (r *ShowRepo) With(db DB) *ShowRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ShowRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const selectShowDetails = `SELECT s.id, s.start_time, s.venue_id, v.name, v.image_link,
        s.artist_id, a.name, a.image_link
 FROM shows s
 JOIN venues v ON v.id = s.venue_id
 JOIN artists a ON a.id = s.artist_id`

// Create inserts a show and returns its ID.
//
// Returns:
//   - error: repository.ErrInvalidReference if the venue or artist does not exist.
func (r *ShowRepo) Create(ctx context.Context, s domain.Show) (int64, error) {
	const op = "postgresrepo.ShowRepo.Create"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO shows (start_time, venue_id, artist_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.StartTime, s.VenueID, s.ArtistID,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]domain.ShowDetails, error) {
	const op = "postgresrepo.ShowRepo.ListByVenue"

	return r.list(ctx, op, selectShowDetails+` WHERE s.venue_id = $1 ORDER BY s.start_time, s.id`, venueID)
}

func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]domain.ShowDetails, error) {
	const op = "postgresrepo.ShowRepo.ListByArtist"

	return r.list(ctx, op, selectShowDetails+` WHERE s.artist_id = $1 ORDER BY s.start_time, s.id`, artistID)
}

func (r *ShowRepo) ListAll(ctx context.Context) ([]domain.ShowDetails, error) {
	const op = "postgresrepo.ShowRepo.ListAll"

	return r.list(ctx, op, selectShowDetails+` ORDER BY s.start_time, s.id`)
}

func (r *ShowRepo) list(ctx context.Context, op, sql string, args ...any) ([]domain.ShowDetails, error) {
	rows, err := r.handle().Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.ShowDetails
	for rows.Next() {
		var sd domain.ShowDetails
		if err := rows.Scan(
			&sd.ID,
			&sd.StartTime,
			&sd.VenueID,
			&sd.VenueName,
			&sd.VenueImageLink,
			&sd.ArtistID,
			&sd.ArtistName,
			&sd.ArtistImageLink,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
