package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"talenthub/internal/job/models"
	"talenthub/internal/sentinel"
)

// PostgresStore persists jobs in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed job store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const jobColumns = `id, company_id, title, description, location, employment_type,
	salary_min, salary_max, remote_allowed, status, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, job *models.Job) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, company_id, title, description, location, employment_type,
			salary_min, salary_max, remote_allowed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID, job.CompanyID, job.Title, nullable(job.Description), nullable(job.Location),
		job.EmploymentType, nullableInt(job.SalaryMin), nullableInt(job.SalaryMax),
		job.RemoteAllowed, job.Status, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, job *models.Job) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET title = $2, description = $3, location = $4, employment_type = $5,
			salary_min = $6, salary_max = $7, remote_allowed = $8, status = $9,
			updated_at = $10
		WHERE id = $1`,
		job.ID, job.Title, nullable(job.Description), nullable(job.Location),
		job.EmploymentType, nullableInt(job.SalaryMin), nullableInt(job.SalaryMax),
		job.RemoteAllowed, job.Status, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row, "find job by id")
}

func (s *PostgresStore) List(ctx context.Context, offset, limit int) ([]*models.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	jobs := make([]*models.Job, 0, limit)
	for rows.Next() {
		job, err := scanJob(rows, "list jobs")
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner, op string) (*models.Job, error) {
	var (
		job                   models.Job
		description, location sql.NullString
		salaryMin, salaryMax  sql.NullInt64
	)
	err := row.Scan(&job.ID, &job.CompanyID, &job.Title, &description, &location,
		&job.EmploymentType, &salaryMin, &salaryMax, &job.RemoteAllowed, &job.Status,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	job.Description = description.String
	job.Location = location.String
	job.SalaryMin = int(salaryMin.Int64)
	job.SalaryMax = int(salaryMax.Int64)
	return &job, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
