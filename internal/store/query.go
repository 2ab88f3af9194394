// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mastaal/nllegalcit/pkg/types"
)

// QueryOptions holds the filters for listing citations. Zero fields do not
// filter.
type QueryOptions struct {
	Kind types.Kind

	Kamer types.Kamer

	// Dossiernummer matches exactly, or as the main number of a dossier
	// with a chapter suffix: "31700" also matches "31700-VIII".
	Dossiernummer string

	// Court matches the ECLI court code, ignoring case.
	Court string

	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Record is a stored citation with the run it came from.
type Record struct {
	RunID    string
	Source   string
	Position int
	Citation types.Citation
}

// Query lists stored citations matching opts, ordered by run and then by
// position in the source document.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT c.run_id, r.source, c.position, c.kind, c.matched_text, c.start_offset, c.end_offset,
			c.country, c.court, c.year, c.casenumber,
			c.kamer, c.vergaderjaar, c.dossiernummer, c.ondernummer, c.paginaverwijzing, c.rijksdossiernummer
		FROM citations c
		JOIN runs r ON r.id = c.run_id
		WHERE 1=1`)

	if opts.Kind != "" {
		qb.WriteString(` AND c.kind = ?`)
		args = append(args, string(opts.Kind))
	}
	if opts.Kamer != "" {
		qb.WriteString(` AND c.kamer = ?`)
		args = append(args, string(opts.Kamer))
	}
	if opts.Dossiernummer != "" {
		qb.WriteString(` AND (c.dossiernummer = ? OR c.dossiernummer LIKE ? ESCAPE '\')`)
		args = append(args, opts.Dossiernummer, escapeLike(opts.Dossiernummer)+"-%")
	}
	if opts.Court != "" {
		qb.WriteString(` AND UPPER(c.court) = UPPER(?)`)
		args = append(args, opts.Court)
	}
	if opts.Source != "" {
		qb.WriteString(` AND r.source = ?`)
		args = append(args, opts.Source)
	}

	qb.WriteString(` ORDER BY r.created_at, r.source, c.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec  Record
			kind string
			occ  types.Occurrence

			country, court, casenumber sql.NullString
			year                       sql.NullInt64

			kamer, vergaderjaar, dossiernummer, ondernummer sql.NullString
			pagina, rijksdossiernummer                      sql.NullString
		)
		if err := rows.Scan(&rec.RunID, &rec.Source, &rec.Position, &kind,
			&occ.MatchedText, &occ.Start, &occ.End,
			&country, &court, &year, &casenumber,
			&kamer, &vergaderjaar, &dossiernummer, &ondernummer, &pagina, &rijksdossiernummer,
		); err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}

		switch types.Kind(kind) {
		case types.KindEcli:
			rec.Citation = types.EcliCitation{
				Occurrence: occ,
				Country:    country.String,
				Court:      court.String,
				Year:       int(year.Int64),
				Casenumber: casenumber.String,
			}
		case types.KindKamerstuk:
			rec.Citation = types.KamerstukCitation{
				Occurrence:         occ,
				Kamer:              types.Kamer(kamer.String),
				Vergaderjaar:       vergaderjaar.String,
				Dossiernummer:      dossiernummer.String,
				Ondernummer:        ondernummer.String,
				Paginaverwijzing:   pagina.String,
				Rijksdossiernummer: rijksdossiernummer.String,
			}
		default:
			return nil, fmt.Errorf("unknown citation kind %q in run %s", kind, rec.RunID)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
