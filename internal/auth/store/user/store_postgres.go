package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"talenthub/internal/auth/models"
	"talenthub/internal/sentinel"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, first_name, last_name, username, phone_number, timezone,
	profile_picture_url, hashed_password, is_active, is_verified, is_superuser,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, username, phone_number, timezone,
			profile_picture_url, hashed_password, is_active, is_verified, is_superuser,
			created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		user.ID, user.Email, user.FirstName, user.LastName, nullable(user.Username),
		nullable(user.PhoneNumber), user.Timezone, nullable(user.ProfilePictureURL),
		user.HashedPassword, user.Active, user.Verified, user.Superuser,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email taken: %w", sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, username = $4, phone_number = $5,
			timezone = $6, profile_picture_url = $7, hashed_password = $8,
			is_active = $9, is_verified = $10, is_superuser = $11, updated_at = $12
		WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, nullable(user.Username),
		nullable(user.PhoneNumber), user.Timezone, nullable(user.ProfilePictureURL),
		user.HashedPassword, user.Active, user.Verified, user.Superuser, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "find user by id")
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	return scanUser(row, "find user by email")
}

func (s *PostgresStore) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, email
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	users := make([]*models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows, "list users")
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, op string) (*models.User, error) {
	var (
		user                        models.User
		username, phone, pictureURL sql.NullString
	)
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&username, &phone, &user.Timezone, &pictureURL, &user.HashedPassword,
		&user.Active, &user.Verified, &user.Superuser, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Username = username.String
	user.PhoneNumber = phone.String
	user.ProfilePictureURL = pictureURL.String
	return &user, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
