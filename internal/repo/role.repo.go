package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// RoleRepo gates admin-only operations via the user_roles table.
type RoleRepo interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID, role string) error
}

type roleRepo struct {
	db *sql.DB
}

func NewRoleRepo(db *sql.DB) RoleRepo {
	return &roleRepo{db: db}
}

func (r *roleRepo) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)",
		userID, role,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *roleRepo) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, role,
	)
	return err
}
