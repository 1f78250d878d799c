package services

import (
	"context"
	"sort"
	"strings"

	"todolist/internal/db/models"
)

// In-memory repository fakes. They mirror the SQL semantics the
// service layer relies on: case-insensitive name/email matches,
// id-ordered listing, and join rows removed with their task.

type fakeTagRepo struct {
	nextID int64
	tags   map[int64]models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[int64]models.Tag)}
}

func (f *fakeTagRepo) all(filter models.TagFilter) []models.Tag {
	var tags []models.Tag
	for _, tag := range f.tags {
		if filter.Name != nil && !strings.Contains(strings.ToLower(tag.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags
}

func (f *fakeTagRepo) ListTags(ctx context.Context, filter models.TagFilter, page models.Pageable) ([]models.Tag, error) {
	tags := f.all(filter)
	start := page.Offset()
	if start > len(tags) {
		start = len(tags)
	}
	end := start + page.Limit()
	if end > len(tags) {
		end = len(tags)
	}
	return tags[start:end], nil
}

func (f *fakeTagRepo) CountTags(ctx context.Context, filter models.TagFilter) (int64, error) {
	return int64(len(f.all(filter))), nil
}

func (f *fakeTagRepo) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, nil
	}
	return &tag, nil
}

func (f *fakeTagRepo) GetTagByName(ctx context.Context, name string, excludeID int64) (*models.Tag, error) {
	for _, tag := range f.tags {
		if strings.EqualFold(tag.Name, name) && tag.ID != excludeID {
			found := tag
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	f.nextID++
	tag.ID = f.nextID
	f.tags[tag.ID] = *tag
	return nil
}

func (f *fakeTagRepo) UpdateTag(ctx context.Context, tag *models.Tag) error {
	f.tags[tag.ID] = *tag
	return nil
}

func (f *fakeTagRepo) DeleteTag(ctx context.Context, id int64) error {
	delete(f.tags, id)
	return nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User)}
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string, excludeID int64) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) && user.ID != excludeID {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	f.users[user.ID] = *user
	return nil
}

type fakeTaskRepo struct {
	nextID   int64
	tasks    map[int64]models.Task
	taskTags map[int64][]int64
	users    *fakeUserRepo
	tags     *fakeTagRepo
}

func newFakeTaskRepo(users *fakeUserRepo, tags *fakeTagRepo) *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    make(map[int64]models.Task),
		taskTags: make(map[int64][]int64),
		users:    users,
		tags:     tags,
	}
}

func (f *fakeTaskRepo) matches(task models.Task, filter models.TaskFilter) bool {
	if filter.UserID != nil && task.UserID != *filter.UserID {
		return false
	}
	if filter.Title != nil && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(*filter.Title)) {
		return false
	}
	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}
	if filter.SeverityTypeCode != nil && task.Severity.Code() != *filter.SeverityTypeCode {
		return false
	}
	if filter.TaskStatusTypeCode != nil && task.Status.Code() != *filter.TaskStatusTypeCode {
		return false
	}
	return true
}

func (f *fakeTaskRepo) expand(task models.Task) *models.Task {
	expanded := task
	expanded.Owner, _ = f.users.GetUserByID(context.Background(), task.UserID)
	expanded.Tags = nil
	for _, tagID := range f.taskTags[task.ID] {
		if tag, _ := f.tags.GetTagByID(context.Background(), tagID); tag != nil {
			expanded.Tags = append(expanded.Tags, *tag)
		}
	}
	return &expanded
}

func (f *fakeTaskRepo) ListTasks(ctx context.Context, filter models.TaskFilter, page models.Pageable) ([]*models.Task, error) {
	var tasks []*models.Task
	for _, task := range f.tasks {
		if f.matches(task, filter) {
			tasks = append(tasks, f.expand(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	start := page.Offset()
	if start > len(tasks) {
		start = len(tasks)
	}
	end := start + page.Limit()
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end], nil
}

func (f *fakeTaskRepo) CountTasks(ctx context.Context, filter models.TaskFilter) (int64, error) {
	var total int64
	for _, task := range f.tasks {
		if f.matches(task, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeTaskRepo) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return f.expand(task), nil
}

func (f *fakeTaskRepo) CreateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = *task
	f.taskTags[task.ID] = append([]int64(nil), tagIDs...)
	return nil
}

func (f *fakeTaskRepo) UpdateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	f.tasks[task.ID] = *task
	f.taskTags[task.ID] = append([]int64(nil), tagIDs...)
	return nil
}

func (f *fakeTaskRepo) DeleteTask(ctx context.Context, id int64) error {
	delete(f.tasks, id)
	delete(f.taskTags, id)
	return nil
}
