package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/lib/pq"

	"gymlink-api/internal/models"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresProvider reads the catalog from a table whose services column is text[].
type PostgresProvider struct {
	DB    *sql.DB
	Table string
}

func (p *PostgresProvider) Name() string { return "postgres" }

func (p *PostgresProvider) Load(ctx context.Context) ([]models.BusinessRecord, error) {
	if !identifierPattern.MatchString(p.Table) {
		return nil, fmt.Errorf("invalid table name %q", p.Table)
	}

	query := fmt.Sprintf(
		`SELECT id, name, category, location, price, vibe, rating, services, description, image FROM %s ORDER BY id`,
		p.Table,
	)

	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	var records []models.BusinessRecord
	for rows.Next() {
		var (
			r           models.BusinessRecord
			description sql.NullString
			image       sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Category, &r.Location, &r.Price, &r.Vibe, &r.Rating,
			pq.Array(&r.Services), &description, &image,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		r.Description = description.String
		r.Image = image.String
		if r.Services == nil {
			r.Services = []string{}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return records, nil
}
