package postgresrepo

import (
	"context"
	"fmt"
	"strings"
)

// genreTable describes one of the normalized genre tables.
type genreTable struct {
	name   string
	column string
}

var (
	venueGenres  = genreTable{name: "venue_genres", column: "venue_id"}
	artistGenres = genreTable{name: "artist_genres", column: "artist_id"}
)

// replace drops the stored genres of ownerID and inserts genres keeping
// their order.
func (t genreTable) replace(ctx context.Context, db DB, ownerID int64, genres []string) error {
	if _, err := db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.name, t.column),
		ownerID,
	); err != nil {
		return err
	}

	if len(genres) == 0 {
		return nil
	}

	_, err := db.Exec(ctx,
		fmt.Sprintf(
			`INSERT INTO %s (%s, position, genre)
			 SELECT $1, g.ord, g.genre
			 FROM unnest($2::text[]) WITH ORDINALITY AS g(genre, ord)`,
			t.name, t.column,
		),
		ownerID, genres,
	)

	return err
}

func (t genreTable) load(ctx context.Context, db DB, ownerID int64) ([]string, error) {
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT genre FROM %s WHERE %s = $1 ORDER BY position`, t.name, t.column),
		ownerID,
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}

		out = append(out, g)
	}

	return out, rows.Err()
}

// aggregate returns a correlated subquery yielding the ordered genres of the
// row aliased as alias.
func (t genreTable) aggregate(alias string) string {
	return fmt.Sprintf(
		`COALESCE((SELECT array_agg(g.genre ORDER BY g.position) FROM %s g WHERE g.%s = %s.id), '{}')`,
		t.name, t.column, alias,
	)
}

// likePattern turns a search term into an ILIKE substring pattern that
// matches %, _ and \ literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
