package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type adminRepository struct {
	db DBTX
}

func NewAdmin(pool *pgxpool.Pool) port.AdminRepository {
	return &adminRepository{db: pool}
}

func NewAdminWithTx(tx pgx.Tx) port.AdminRepository {
	return &adminRepository{db: tx}
}

func (r *adminRepository) GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	var a domain.Admin

	if username == "" {
		return a, fmt.Errorf("username is empty")
	}

	row := r.db.QueryRow(ctx,
		"SELECT id, username, password_hash FROM admins WHERE username = $1", username)

	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, ErrAdminNotFound
		}
		return a, fmt.Errorf("row.Scan: %w", err)
	}

	return a, nil
}

func (r *adminRepository) CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	var a domain.Admin

	if admin.Username == "" {
		return a, fmt.Errorf("username is empty")
	}

	if admin.PasswordHash == "" {
		return a, fmt.Errorf("password hash is empty")
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, username, password_hash`,
		admin.Username, admin.PasswordHash)

	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return a, fmt.Errorf("username[%s]: %w", admin.Username, ErrUsernameTaken)
		}
		return a, fmt.Errorf("row.Scan: %w", err)
	}

	return a, nil
}
