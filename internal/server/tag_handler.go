package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"todolist/internal/db/models"
	"todolist/internal/services"

	"github.com/gorilla/mux"
)

var tagSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type TagHandler struct {
	service *services.TagService
}

func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageable(r, tagSortColumns, "id")
	if err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var filter models.TagFilter
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}

	tags, total, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	content := []TagResponse{}
	for _, tag := range tags {
		content = append(content, newTagResponse(tag))
	}
	writeJSON(w, http.StatusOK, newPageResponse(content, page, total))
}

func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tag, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTagResponse(*tag))
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTagResponse(*tag))
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTagResponse(*tag))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// pathID parses the {id} path variable, answering 400 itself when the
// value is not numeric.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeErrorStatus(w, r, http.StatusBadRequest, "Invalid id: "+raw)
		return 0, false
	}
	return id, true
}
