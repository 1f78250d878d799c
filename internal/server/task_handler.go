package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"todolist/internal/db/models"
	"todolist/internal/services"
)

var taskSortColumns = map[string]string{
	"id":        "t.id",
	"title":     "t.title",
	"priority":  "t.priority",
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
}

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageable(r, taskSortColumns, "id")
	if err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, total, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	content := []TaskResponse{}
	for _, task := range tasks {
		content = append(content, newTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, newPageResponse(content, page, total))
}

func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskDetailResponse(task))
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskDetailResponse(task))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskDetailResponse(task))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	if err := req.Validate(); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func (r TaskRequest) toInput() services.TaskInput {
	in := services.TaskInput{
		Title:          r.Title,
		Description:    r.Description,
		UserID:         *r.UserID,
		Priority:       *r.Priority,
		SeverityType:   *r.SeverityType,
		TaskStatusType: *r.TaskStatusType,
	}
	for _, ref := range r.Tags {
		in.TagIDs = append(in.TagIDs, ref.ID)
	}
	return in
}

// taskFilterFromQuery builds the optional AND-composed list filter;
// absent parameters contribute no predicate.
func taskFilterFromQuery(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter

	userID, err := queryInt64(r, "userId")
	if err != nil {
		return filter, err
	}
	filter.UserID = userID

	priority, err := queryInt(r, "priority")
	if err != nil {
		return filter, err
	}
	filter.Priority = priority

	severity, err := queryInt(r, "severityTypeCode")
	if err != nil {
		return filter, err
	}
	filter.SeverityTypeCode = severity

	status, err := queryInt(r, "taskStatusTypeCode")
	if err != nil {
		return filter, err
	}
	filter.TaskStatusTypeCode = status

	if title := r.URL.Query().Get("title"); title != "" {
		filter.Title = &title
	}

	return filter, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", name, raw)
	}
	return &n, nil
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", name, raw)
	}
	return &n, nil
}
