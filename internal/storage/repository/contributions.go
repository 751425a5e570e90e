package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// CreateContribution выполняет workflow создания доклада одной транзакцией:
// вставляет строку доклада, затем в порядке следования записей авторства
// создаёт нового автора на каждую запись, связывает его с докладом строкой
// авторства и привязывает перечисленные аффилиации. Любая ошибка любого
// шага откатывает всё: частично созданный доклад в базе не остаётся.
//
// Автор всегда создаётся заново, поиска существующего автора по имени нет:
// авторы с одинаковыми именами в разных докладах — разные записи.
func (s *Storage) CreateContribution(ctx context.Context, userUID string, req models.DummyContribution) (*models.Contribution, error) {
	const op = "storage.CreateContribution"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	contribution := &models.Contribution{
		UserUID:          userUID,
		Title:            req.Title,
		PresentationForm: req.PresentationForm,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO contributions (user_uid, title, presentation_form)
		 VALUES ($1, $2, $3)
		 RETURNING id, created, last_modified, discount`,
		userUID, req.Title, req.PresentationForm,
	).Scan(&contribution.ID, &contribution.Created, &contribution.LastModified, &contribution.Discount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, entry := range req.Authorships {
		var authorID int
		err = tx.QueryRowContext(ctx,
			`INSERT INTO authors (name) VALUES ($1) RETURNING id`,
			entry.AuthorName,
		).Scan(&authorID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		authorship := &models.Authorship{
			AuthorID:       authorID,
			AuthorName:     entry.AuthorName,
			ContributionID: contribution.ID,
			IsMainAuthor:   entry.IsMainAuthor,
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO authorships (author_id, contribution_id, is_main_author)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			authorID, contribution.ID, entry.IsMainAuthor,
		).Scan(&authorship.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%s: %w", op, models.ErrDuplicateAuthorship)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, affiliationID := range entry.AffiliationIDs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO authorship_affiliations (authorship_id, affiliation_id)
				 VALUES ($1, $2)`,
				authorship.ID, affiliationID,
			)
			if err != nil {
				if isForeignKeyViolation(err) {
					return nil, fmt.Errorf("%s: %w", op, models.ErrAffiliationNotFound)
				}
				return nil, fmt.Errorf("%s: %w", op, err)
			}

			var affiliation models.Affiliation
			err = tx.QueryRowContext(ctx,
				`SELECT id, institution, department, street_address, city, zip_code, country
				 FROM affiliations WHERE id = $1`,
				affiliationID,
			).Scan(&affiliation.ID, &affiliation.Institution, &affiliation.Department,
				&affiliation.StreetAddress, &affiliation.City, &affiliation.ZipCode, &affiliation.Country)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			authorship.Affiliations = append(authorship.Affiliations, &affiliation)
		}

		contribution.Authorships = append(contribution.Authorships, authorship)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contribution, nil
}

// ReadContribution возвращает доклад владельца вместе с авторствами и их
// аффилиациями. Запрос ограничен владельцем: чужой доклад неотличим от
// несуществующего, оба случая дают models.ErrContributionNotFound.
func (s *Storage) ReadContribution(ctx context.Context, userUID string, id int) (*models.Contribution, error) {
	const op = "storage.ReadContribution"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, presentation_form, created, last_modified, discount
			  FROM contributions
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Contribution
	if err := row.Scan(&result.ID, &result.UserUID, &result.Title, &result.PresentationForm,
		&result.Created, &result.LastModified, &result.Discount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrContributionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authorships, err := s.listAuthorships(ctx, result.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Authorships = authorships

	return &result, nil
}

// listAuthorships возвращает авторства доклада с аффилиациями, в порядке создания.
func (s *Storage) listAuthorships(ctx context.Context, contributionID int) ([]*models.Authorship, error) {
	query := `SELECT ash.id, ash.author_id, a.name, ash.contribution_id, ash.is_main_author
			  FROM authorships ash
			  JOIN authors a ON a.id = ash.author_id
			  WHERE ash.contribution_id = $1
			  ORDER BY ash.id`
	rows, err := s.DB.QueryContext(ctx, query, contributionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Authorship
	for rows.Next() {
		var item models.Authorship
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.AuthorName,
			&item.ContributionID, &item.IsMainAuthor); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, ash := range result {
		affiliations, err := s.listAuthorshipAffiliations(ctx, ash.ID)
		if err != nil {
			return nil, err
		}
		ash.Affiliations = affiliations
	}
	return result, nil
}

func (s *Storage) listAuthorshipAffiliations(ctx context.Context, authorshipID int) ([]*models.Affiliation, error) {
	query := `SELECT af.id, af.institution, af.department, af.street_address, af.city, af.zip_code, af.country
			  FROM authorship_affiliations aa
			  JOIN affiliations af ON af.id = aa.affiliation_id
			  WHERE aa.authorship_id = $1
			  ORDER BY af.id`
	rows, err := s.DB.QueryContext(ctx, query, authorshipID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Affiliation
	for rows.Next() {
		var item models.Affiliation
		if err := rows.Scan(&item.ID, &item.Institution, &item.Department,
			&item.StreetAddress, &item.City, &item.ZipCode, &item.Country); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListContributions возвращает доклады владельца с пагинацией, без
// развёрнутых авторств.
func (s *Storage) ListContributions(ctx context.Context, userUID string, limit, offset int) ([]*models.Contribution, error) {
	const op = "storage.ListContributions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, presentation_form, created, last_modified, discount
			  FROM contributions
			  WHERE user_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Contribution
	for rows.Next() {
		var item models.Contribution
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Title, &item.PresentationForm,
			&item.Created, &item.LastModified, &item.Discount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveContribution удаляет доклад владельца. Авторства и связи с
// аффилиациями удаляются каскадом, записи авторов остаются.
func (s *Storage) RemoveContribution(ctx context.Context, userUID string, id int) (int, error) {
	const op = "storage.RemoveContribution"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM contributions WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateDiscount выставляет скидку доклада и возвращает UID владельца.
// Административная операция, владельцем не ограничена; last_modified
// обновляется триггером.
func (s *Storage) UpdateDiscount(ctx context.Context, id, discount int) (string, error) {
	const op = "storage.UpdateDiscount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contributions SET discount = $1 WHERE id = $2 RETURNING user_uid`
	var ownerUID string
	err := s.DB.QueryRowContext(ctx, query, discount, id).Scan(&ownerUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, models.ErrContributionNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return ownerUID, nil
}
