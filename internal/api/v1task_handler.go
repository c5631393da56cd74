package api

import (
	"errors"
	"net/http"

	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/logger"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// V1TaskHandler serves the unauthenticated /tasks endpoints: a
// single shared list with no ownership, no version checks, and physical
// deletes. It talks to the store directly; there is no service layer
// because there are no cross-cutting rules to enforce.
type V1TaskHandler struct {
	tasks store.V1TaskStore
}

// NewV1TaskHandler creates a new V1TaskHandler with the given dependencies.
func NewV1TaskHandler(tasks store.V1TaskStore) *V1TaskHandler {
	return &V1TaskHandler{tasks: tasks}
}

// List handles GET /tasks.
func (h *V1TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /tasks.
func (h *V1TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := domain.NewV1Task(req.Title, req.Description)
	if err != nil {
		RespondWithValidationError(w, r, err)
		return
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskEnvelope{
		Message: "Task created successfully",
		Task:    task,
	})
}

// Get handles GET /tasks/{id}.
func (h *V1TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}. There is no version counter on the
// baseline list; last write wins.
func (h *V1TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathTaskID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	if err := h.tasks.Update(r.Context(), task); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Message: "Task updated successfully",
		Task:    task,
	})
}

// Delete handles DELETE /tasks/{id}.
func (h *V1TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathTaskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// DeleteAll handles DELETE /tasks.
func (h *V1TaskHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteAll(r.Context()); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "All tasks deleted successfully"})
}

// handleStoreError maps store errors for the baseline endpoints. Not
// found passes through as 404; anything else is logged and reported as
// a 500 without storage detail.
func (h *V1TaskHandler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	logger.FromContext(r.Context()).Error("v1 task storage failure", "error", err)
	shared.RespondWithError(w, r, http.StatusInternalServerError, "An internal server error occurred")
}
