package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"talenthub/internal/company/models"
	"talenthub/internal/sentinel"
)

// PostgresStore persists companies and memberships in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed company store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const companyColumns = `id, name, slug, description, website, industry, company_size,
	headquarters, founded_year, is_active, created_at, updated_at`

// Create inserts the company and its owner membership in one transaction.
func (s *PostgresStore) Create(ctx context.Context, company *models.Company, ownerID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create company: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO companies (id, name, slug, description, website, industry, company_size,
			headquarters, founded_year, is_active, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		company.ID, company.Name, company.Slug, nullable(company.Description),
		nullable(company.Website), nullable(company.Industry), nullable(company.Size),
		nullable(company.Headquarters), nullableInt(company.FoundedYear), company.Active,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("company slug taken: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("insert company: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO company_users (company_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		company.ID, ownerID, models.RoleOwner, company.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create company: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row, "find company by id")
}

func (s *PostgresStore) AddMember(ctx context.Context, companyID, userID uuid.UUID, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO company_users (company_id, user_id, role, created_at)
		VALUES ($1, $2, $3, now())`,
		companyID, userID, role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member already present: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM company_users WHERE company_id = $1 AND user_id = $2
		)`, companyID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+companyColumns+`
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.id
		WHERE cu.user_id = $1
		ORDER BY c.created_at, c.slug
		OFFSET $2 LIMIT $3`, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	companies := make([]*models.Company, 0, limit)
	for rows.Next() {
		company, err := scanCompany(rows, "list companies")
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *PostgresStore) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM company_users WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner, op string) (*models.Company, error) {
	var (
		company                                          models.Company
		description, website, industry, sz, headquarters sql.NullString
		foundedYear                                      sql.NullInt64
	)
	err := row.Scan(&company.ID, &company.Name, &company.Slug, &description,
		&website, &industry, &sz, &headquarters, &foundedYear, &company.Active,
		&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	company.Description = description.String
	company.Website = website.String
	company.Industry = industry.String
	company.Size = sz.String
	company.Headquarters = headquarters.String
	company.FoundedYear = int(foundedYear.Int64)
	return &company, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
