package server

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"todolist/internal/db/models"
	"todolist/internal/services"

	"github.com/gorilla/mux"
)

// In-memory repository fakes backing the real services, so handler
// tests exercise the full router -> handler -> service path without a
// database.

type memTagRepo struct {
	nextID int64
	tags   map[int64]models.Tag
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{tags: make(map[int64]models.Tag)}
}

func (m *memTagRepo) all(filter models.TagFilter) []models.Tag {
	var tags []models.Tag
	for _, tag := range m.tags {
		if filter.Name != nil && !strings.Contains(strings.ToLower(tag.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags
}

func (m *memTagRepo) ListTags(ctx context.Context, filter models.TagFilter, page models.Pageable) ([]models.Tag, error) {
	tags := m.all(filter)
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

func (m *memTagRepo) CountTags(ctx context.Context, filter models.TagFilter) (int64, error) {
	return int64(len(m.all(filter))), nil
}

func (m *memTagRepo) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, ok := m.tags[id]
	if !ok {
		return nil, nil
	}
	return &tag, nil
}

func (m *memTagRepo) GetTagByName(ctx context.Context, name string, excludeID int64) (*models.Tag, error) {
	for _, tag := range m.tags {
		if strings.EqualFold(tag.Name, name) && tag.ID != excludeID {
			found := tag
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memTagRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	m.nextID++
	tag.ID = m.nextID
	m.tags[tag.ID] = *tag
	return nil
}

func (m *memTagRepo) UpdateTag(ctx context.Context, tag *models.Tag) error {
	m.tags[tag.ID] = *tag
	return nil
}

func (m *memTagRepo) DeleteTag(ctx context.Context, id int64) error {
	delete(m.tags, id)
	return nil
}

type memUserRepo struct {
	nextID int64
	users  map[int64]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]models.User)}
}

func (m *memUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *memUserRepo) GetUserByEmail(ctx context.Context, email string, excludeID int64) (*models.User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) && user.ID != excludeID {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

type memTaskRepo struct {
	nextID   int64
	tasks    map[int64]models.Task
	taskTags map[int64][]int64
	users    *memUserRepo
	tags     *memTagRepo
}

func newMemTaskRepo(users *memUserRepo, tags *memTagRepo) *memTaskRepo {
	return &memTaskRepo{
		tasks:    make(map[int64]models.Task),
		taskTags: make(map[int64][]int64),
		users:    users,
		tags:     tags,
	}
}

func (m *memTaskRepo) matches(task models.Task, filter models.TaskFilter) bool {
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

func (m *memTaskRepo) expand(task models.Task) *models.Task {
	expanded := task
	expanded.Owner, _ = m.users.GetUserByID(context.Background(), task.UserID)
	expanded.Tags = nil
	for _, tagID := range m.taskTags[task.ID] {
		if tag, _ := m.tags.GetTagByID(context.Background(), tagID); tag != nil {
			expanded.Tags = append(expanded.Tags, *tag)
		}
	}
	return &expanded
}

func (m *memTaskRepo) ListTasks(ctx context.Context, filter models.TaskFilter, page models.Pageable) ([]*models.Task, error) {
	var tasks []*models.Task
	for _, task := range m.tasks {
		if m.matches(task, filter) {
			tasks = append(tasks, m.expand(task))
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

func (m *memTaskRepo) CountTasks(ctx context.Context, filter models.TaskFilter) (int64, error) {
	var total int64
	for _, task := range m.tasks {
		if m.matches(task, filter) {
			total++
		}
	}
	return total, nil
}

func (m *memTaskRepo) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return m.expand(task), nil
}

func (m *memTaskRepo) CreateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = *task
	m.taskTags[task.ID] = append([]int64(nil), tagIDs...)
	return nil
}

func (m *memTaskRepo) UpdateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	m.tasks[task.ID] = *task
	m.taskTags[task.ID] = append([]int64(nil), tagIDs...)
	return nil
}

func (m *memTaskRepo) DeleteTask(ctx context.Context, id int64) error {
	delete(m.tasks, id)
	delete(m.taskTags, id)
	return nil
}

type testEnv struct {
	router *mux.Router
	tags   *services.TagService
	users  *services.UserService
	tasks  *services.TaskService
}

func newTestEnv() *testEnv {
	tagRepo := newMemTagRepo()
	userRepo := newMemUserRepo()
	taskRepo := newMemTaskRepo(userRepo, tagRepo)

	tags := services.NewTagService(tagRepo)
	users := services.NewUserService(userRepo)
	tasks := services.NewTaskService(taskRepo, tags, users)

	router := newRouter(
		NewTagHandler(tags),
		NewTaskHandler(tasks),
		NewUserHandler(users),
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	)

	return &testEnv{router: router, tags: tags, users: users, tasks: tasks}
}
