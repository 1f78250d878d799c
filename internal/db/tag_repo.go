package db

import (
	"context"

	"todolist/internal/db/models"

	"github.com/jackc/pgx/v5"
)

// ListTags retrieves one page of tags matching the filter.
func (db *DB) ListTags(ctx context.Context, filter models.TagFilter, page models.Pageable) ([]models.Tag, error) {
	b := tagConds(filter)
	query := `SELECT id, name FROM tags` + b.where() + b.page(page)

	rows, err := db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// CountTags recounts the tags matching the same filter as ListTags.
func (db *DB) CountTags(ctx context.Context, filter models.TagFilter) (int64, error) {
	b := tagConds(filter)

	var total int64
	err := db.QueryRow(ctx, `SELECT count(*) FROM tags`+b.where(), b.args...).Scan(&total)
	return total, err
}

// GetTagByID retrieves a tag by its ID, nil when no row matches.
func (db *DB) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag := &models.Tag{}
	err := db.QueryRow(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTagByName finds a tag by name case-insensitively, skipping
// excludeID so an update does not collide with the row being updated.
func (db *DB) GetTagByName(ctx context.Context, name string, excludeID int64) (*models.Tag, error) {
	query := `
		SELECT id, name
		FROM tags
		WHERE lower(name) = lower($1) AND id <> $2`

	tag := &models.Tag{}
	err := db.QueryRow(ctx, query, name, excludeID).Scan(&tag.ID, &tag.Name)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// CreateTag inserts a new tag and fills in its generated ID.
func (db *DB) CreateTag(ctx context.Context, tag *models.Tag) error {
	return db.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`,
		tag.Name,
	).Scan(&tag.ID)
}

// UpdateTag renames an existing tag.
func (db *DB) UpdateTag(ctx context.Context, tag *models.Tag) error {
	_, err := db.Exec(ctx, `UPDATE tags SET name = $1 WHERE id = $2`, tag.Name, tag.ID)
	return err
}

// DeleteTag removes the tag row entirely.
func (db *DB) DeleteTag(ctx context.Context, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
