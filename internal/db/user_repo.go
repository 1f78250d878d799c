package db

import (
	"context"
	"time"

	"todolist/internal/db/models"

	"github.com/jackc/pgx/v5"
)

// ListUsers retrieves all users, active and deactivated alike.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, active, created_at, updated_at
		FROM users
		ORDER BY id`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Active,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a user by its ID, nil when no row matches.
// Deactivated users are still returned; deletion never removes the row.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, active, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail finds a user by email case-insensitively, skipping
// excludeID so an update does not collide with the row being updated.
func (db *DB) GetUserByEmail(ctx context.Context, email string, excludeID int64) (*models.User, error) {
	query := `
		SELECT id, name, email, active, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1) AND id <> $2`

	user := &models.User{}
	err := db.QueryRow(ctx, query, email, excludeID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user and fills in its generated ID.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return db.QueryRow(ctx,
		`INSERT INTO users (name, email, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		user.Name, user.Email, user.Active, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
}

// UpdateUser persists changes to an existing user.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	_, err := db.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, active = $3, updated_at = $4
		 WHERE id = $5`,
		user.Name, user.Email, user.Active, user.UpdatedAt, user.ID,
	)
	return err
}
