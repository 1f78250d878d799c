package services

import (
	"context"
	"fmt"

	"todolist/internal/db/models"
	"todolist/internal/logging"
)

// TaskRepository is the persistence surface TaskService needs.
// *db.DB satisfies it.
type TaskRepository interface {
	ListTasks(ctx context.Context, filter models.TaskFilter, page models.Pageable) ([]*models.Task, error)
	CountTasks(ctx context.Context, filter models.TaskFilter) (int64, error)
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, task *models.Task, tagIDs []int64) error
	UpdateTask(ctx context.Context, task *models.Task, tagIDs []int64) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskInput carries the writable task fields from a request. Severity
// and status arrive as raw codes and are resolved against the enums.
type TaskInput struct {
	Title          string
	Description    string
	UserID         int64
	Priority       int
	SeverityType   int
	TaskStatusType int
	TagIDs         []int64
}

type TaskService struct {
	repo  TaskRepository
	tags  *TagService
	users *UserService
}

func NewTaskService(repo TaskRepository, tags *TagService, users *UserService) *TaskService {
	return &TaskService{repo: repo, tags: tags, users: users}
}

// List returns one page of tasks plus the total count for the same
// filter. Owners come expanded; tag lists are only loaded on GetByID.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter, page models.Pageable) ([]*models.Task, int64, error) {
	tasks, err := s.repo.ListTasks(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.repo.CountTasks(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return tasks, total, nil
}

// GetByID finds the task with owner and tags expanded, or fails with
// NotFoundError.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, &NotFoundError{Entity: "Task", ID: id}
	}
	return task, nil
}

// Create validates every reference in the input before anything is
// written: the owner must exist, both enum codes must resolve, and
// every tag id must exist. A failed lookup persists nothing.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	task, tagIDs, err := s.convertInput(ctx, nil, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTask(ctx, task, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logging.Logger.Infof("Created task %d (%s) for user %d", task.ID, task.Title, task.UserID)
	return task, nil
}

// Update revalidates the input the same way Create does and replaces
// the task's tag set wholesale with the resolved one.
func (s *TaskService) Update(ctx context.Context, id int64, in TaskInput) (*models.Task, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, tagIDs, err := s.convertInput(ctx, existing, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTask(ctx, task, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes the task row entirely; its tag associations go with
// it.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logging.Logger.Infof("Deleted task %d (%s)", task.ID, task.Title)
	return nil
}

// convertInput resolves all references in the input against the
// datastore and builds the entity to persist. existing is nil on
// create.
func (s *TaskService) convertInput(ctx context.Context, existing *models.Task, in TaskInput) (*models.Task, []int64, error) {
	owner, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}

	severity, err := models.SeverityTypeByCode(in.SeverityType)
	if err != nil {
		return nil, nil, err
	}
	status, err := models.TaskStatusTypeByCode(in.TaskStatusType)
	if err != nil {
		return nil, nil, err
	}

	tags, tagIDs, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, nil, err
	}

	task := &models.Task{}
	if existing != nil {
		task = existing
	}
	task.Title = in.Title
	task.Description = in.Description
	task.Priority = in.Priority
	task.Severity = severity
	task.Status = status
	task.UserID = owner.ID
	task.Owner = owner
	task.Tags = tags

	return task, tagIDs, nil
}

// resolveTags looks up every referenced tag, failing on the first
// unknown id. Repeated ids in the input collapse to one association.
func (s *TaskService) resolveTags(ctx context.Context, ids []int64) ([]models.Tag, []int64, error) {
	seen := make(map[int64]bool, len(ids))
	var tags []models.Tag
	var tagIDs []int64

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		tag, err := s.tags.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		tags = append(tags, *tag)
		tagIDs = append(tagIDs, tag.ID)
	}
	return tags, tagIDs, nil
}
