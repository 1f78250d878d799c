package server

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"todolist/internal/db/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type TagRequest struct {
	Name string `json:"name"`
}

func (r TagRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be blank")
	}
	return nil
}

type TagRef struct {
	ID int64 `json:"id"`
}

type TaskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	UserID         *int64   `json:"userId"`
	Priority       *int     `json:"priority"`
	SeverityType   *int     `json:"severityType"`
	TaskStatusType *int     `json:"taskStatusType"`
	Tags           []TagRef `json:"tags"`
}

func (r TaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title must not be blank")
	}
	if r.UserID == nil {
		return errors.New("userId is required")
	}
	if r.Priority == nil {
		return errors.New("priority is required")
	}
	if r.SeverityType == nil {
		return errors.New("severityType is required")
	}
	if r.TaskStatusType == nil {
		return errors.New("taskStatusType is required")
	}
	return nil
}

type UserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

func (r UserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be blank")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email must not be blank")
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("invalid email address: %s", r.Email)
	}
	if r.Active == nil {
		return errors.New("active is required")
	}
	return nil
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

type UserResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Active: user.Active}
}

// Enum references are rendered as code+description pairs rather than
// bare codes.
type SeverityResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type TaskStatusResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type TaskResponse struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	User           UserResponse       `json:"user"`
	Priority       int                `json:"priority"`
	SeverityType   SeverityResponse   `json:"severityType"`
	TaskStatusType TaskStatusResponse `json:"taskStatusType"`
}

func newTaskResponse(task *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Priority:       task.Priority,
		SeverityType:   SeverityResponse{Code: task.Severity.Code(), Description: task.Severity.Description()},
		TaskStatusType: TaskStatusResponse{Code: task.Status.Code(), Description: task.Status.Description()},
	}
	if task.Owner != nil {
		resp.User = newUserResponse(*task.Owner)
	}
	return resp
}

type TaskDetailResponse struct {
	TaskResponse
	Tags []TagResponse `json:"tags"`
}

func newTaskDetailResponse(task *models.Task) TaskDetailResponse {
	resp := TaskDetailResponse{
		TaskResponse: newTaskResponse(task),
		Tags:         []TagResponse{},
	}
	for _, tag := range task.Tags {
		resp.Tags = append(resp.Tags, newTagResponse(tag))
	}
	return resp
}

// PageResponse is the envelope for paginated list endpoints.
type PageResponse struct {
	Content       any   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func newPageResponse(content any, page models.Pageable, total int64) PageResponse {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return PageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
