package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// CreateAffiliation вставляет новую аффилиацию и возвращает её ID.
func (s *Storage) CreateAffiliation(ctx context.Context, aff models.Affiliation) (int, error) {
	const op = "storage.CreateAffiliation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO affiliations (institution, department, street_address, city, zip_code, country)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		aff.Institution, aff.Department, aff.StreetAddress, aff.City, aff.ZipCode, aff.Country).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAffiliations возвращает список аффилиаций с пагинацией.
func (s *Storage) ListAffiliations(ctx context.Context, limit, offset int) ([]*models.Affiliation, error) {
	const op = "storage.ListAffiliations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, institution, department, street_address, city, zip_code, country
			  FROM affiliations
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Affiliation
	for rows.Next() {
		var item models.Affiliation
		if err := rows.Scan(&item.ID, &item.Institution, &item.Department,
			&item.StreetAddress, &item.City, &item.ZipCode, &item.Country); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
