package candidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"talenthub/internal/candidate/models"
	"talenthub/internal/sentinel"
)

// PostgresStore persists candidates in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed candidate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const candidateColumns = `id, first_name, last_name, email, phone_number, linkedin_url,
	github_url, portfolio_url, current_title, current_company, years_of_experience,
	expected_salary_min, expected_salary_max, remote_work_preference, preferred_locations,
	summary, profile_completion_score, availability_status, is_active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, candidate *models.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (id, first_name, last_name, email, phone_number, linkedin_url,
			github_url, portfolio_url, current_title, current_company, years_of_experience,
			expected_salary_min, expected_salary_max, remote_work_preference, preferred_locations,
			summary, profile_completion_score, availability_status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, lower($4), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21)`,
		candidate.ID, candidate.FirstName, candidate.LastName, candidate.Email,
		nullable(candidate.PhoneNumber), nullable(candidate.LinkedinURL),
		nullable(candidate.GithubURL), nullable(candidate.PortfolioURL),
		nullable(candidate.CurrentTitle), nullable(candidate.CurrentCompany),
		nullableFloat(candidate.YearsOfExperience), nullableInt(candidate.ExpectedSalaryMin),
		nullableInt(candidate.ExpectedSalaryMax), candidate.RemoteWorkPreference,
		nullable(joinLocations(candidate.PreferredLocations)), nullable(candidate.Summary),
		candidate.ProfileCompletionScore, candidate.AvailabilityStatus, candidate.Active,
		candidate.CreatedAt, candidate.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("candidate email taken: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, candidate *models.Candidate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidates
		SET first_name = $2, last_name = $3, phone_number = $4, linkedin_url = $5,
			github_url = $6, portfolio_url = $7, current_title = $8, current_company = $9,
			years_of_experience = $10, expected_salary_min = $11, expected_salary_max = $12,
			remote_work_preference = $13, preferred_locations = $14, summary = $15,
			profile_completion_score = $16, availability_status = $17, is_active = $18,
			updated_at = $19
		WHERE id = $1`,
		candidate.ID, candidate.FirstName, candidate.LastName,
		nullable(candidate.PhoneNumber), nullable(candidate.LinkedinURL),
		nullable(candidate.GithubURL), nullable(candidate.PortfolioURL),
		nullable(candidate.CurrentTitle), nullable(candidate.CurrentCompany),
		nullableFloat(candidate.YearsOfExperience), nullableInt(candidate.ExpectedSalaryMin),
		nullableInt(candidate.ExpectedSalaryMax), candidate.RemoteWorkPreference,
		nullable(joinLocations(candidate.PreferredLocations)), nullable(candidate.Summary),
		candidate.ProfileCompletionScore, candidate.AvailabilityStatus, candidate.Active,
		candidate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update candidate rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidate(row, "find candidate by id")
}

const searchClause = `(first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
	OR current_title ILIKE $1 OR current_company ILIKE $1)`

func (s *PostgresStore) List(ctx context.Context, search string, offset, limit int) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	args := []any{}
	if search != "" {
		query += ` WHERE ` + searchClause
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at, email OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	candidates := make([]*models.Candidate, 0, limit)
	for rows.Next() {
		candidate, err := scanCandidate(rows, "list candidates")
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

func (s *PostgresStore) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT count(*) FROM candidates`
	args := []any{}
	if search != "" {
		query += ` WHERE ` + searchClause
		args = append(args, "%"+search+"%")
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner, op string) (*models.Candidate, error) {
	var (
		candidate                                           models.Candidate
		phone, linkedin, github, portfolio, title, company  sql.NullString
		locations, summary                                  sql.NullString
		years                                               sql.NullFloat64
		salaryMin, salaryMax                                sql.NullInt64
	)
	err := row.Scan(&candidate.ID, &candidate.FirstName, &candidate.LastName, &candidate.Email,
		&phone, &linkedin, &github, &portfolio, &title, &company, &years,
		&salaryMin, &salaryMax, &candidate.RemoteWorkPreference, &locations, &summary,
		&candidate.ProfileCompletionScore, &candidate.AvailabilityStatus, &candidate.Active,
		&candidate.CreatedAt, &candidate.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	candidate.PhoneNumber = phone.String
	candidate.LinkedinURL = linkedin.String
	candidate.GithubURL = github.String
	candidate.PortfolioURL = portfolio.String
	candidate.CurrentTitle = title.String
	candidate.CurrentCompany = company.String
	candidate.YearsOfExperience = years.Float64
	candidate.ExpectedSalaryMin = int(salaryMin.Int64)
	candidate.ExpectedSalaryMax = int(salaryMax.Int64)
	candidate.PreferredLocations = splitLocations(locations.String)
	candidate.Summary = summary.String
	return &candidate, nil
}

// Preferred locations are stored as a single comma-joined column.

func joinLocations(locations []string) string {
	return strings.Join(locations, ",")
}

func splitLocations(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullableFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
