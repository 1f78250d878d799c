package services

import (
	"context"
	"fmt"

	"todolist/internal/db"
	"todolist/internal/db/models"
	"todolist/internal/logging"
)

// TagRepository is the persistence surface TagService needs.
// *db.DB satisfies it.
type TagRepository interface {
	ListTags(ctx context.Context, filter models.TagFilter, page models.Pageable) ([]models.Tag, error)
	CountTags(ctx context.Context, filter models.TagFilter) (int64, error)
	GetTagByID(ctx context.Context, id int64) (*models.Tag, error)
	GetTagByName(ctx context.Context, name string, excludeID int64) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id int64) error
}

type TagService struct {
	repo TagRepository
}

func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// List returns one page of tags plus the total count for the same
// filter. The count is recomputed per call, so it is a second query.
func (s *TagService) List(ctx context.Context, filter models.TagFilter, page models.Pageable) ([]models.Tag, int64, error) {
	tags, err := s.repo.ListTags(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}

	total, err := s.repo.CountTags(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return tags, total, nil
}

// GetByID finds the tag or fails with NotFoundError.
func (s *TagService) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if tag == nil {
		return nil, &NotFoundError{Entity: "Tag", ID: id}
	}
	return tag, nil
}

// Create adds a new tag, rejecting names already in use regardless of
// case.
func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	if err := s.verifyTagNameAlreadyExists(ctx, name, 0); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, tagNameInUse(name)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	logging.Logger.Infof("Created tag %d (%s)", tag.ID, tag.Name)
	return tag, nil
}

// Update renames an existing tag. The target must exist and the new
// name must not belong to a different tag.
func (s *TagService) Update(ctx context.Context, id int64, name string) (*models.Tag, error) {
	tag, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.verifyTagNameAlreadyExists(ctx, name, id); err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.repo.UpdateTag(ctx, tag); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, tagNameInUse(name)
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// Delete removes the tag row entirely, unlike user deletion.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	tag, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTag(ctx, tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	logging.Logger.Infof("Deleted tag %d (%s)", tag.ID, tag.Name)
	return nil
}

func (s *TagService) verifyTagNameAlreadyExists(ctx context.Context, name string, excludeID int64) error {
	existing, err := s.repo.GetTagByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check tag name: %w", err)
	}
	if existing != nil {
		return tagNameInUse(name)
	}
	return nil
}

func tagNameInUse(name string) error {
	return &AlreadyExistsError{Message: fmt.Sprintf("This tag name '%s' is already in use!", name)}
}
