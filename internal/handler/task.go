package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(tasks))
}

// ListPaged handles GET /api/v1/tasks/paged.
func (h *TaskHandler) ListPaged(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := 10
	if s := query.Get("pageSize"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 && parsed <= 50 {
			pageSize = parsed
		}
	}

	input := service.ListTasksPagedInput{
		Page:     page,
		PageSize: pageSize,
		SortKey:  query.Get("sortBy"),
		Search:   query.Get("search"),
	}

	result, err := h.svc.ListTasksPaged(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskPageResponse(*result))
}

// Get handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(*task))
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		OwnerID:     req.OwnerID,
	}

	task, err := h.svc.CreateTask(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("task_created",
		"task_id", task.ID,
		"owner_id", task.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(*task))
}

// Update handles PUT /api/v1/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	}

	if err := h.svc.UpdateTask(r.Context(), id, input); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("task_updated", "task_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("task_deleted", "task_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus handles PUT /api/v1/tasks/{id}/status.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.svc.ChangeStatus(r.Context(), id, model.TaskStatus(req.Status))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("task_status_changed",
		"task_id", id,
		"status", task.Status.String(),
	)

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(*task))
}

// Assign handles PUT /api/v1/tasks/{id}/assign/{userID}.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	rawOwner := chi.URLParam(r, "userID")
	ownerID, err := strconv.ParseInt(rawOwner, 10, 64)
	if err != nil || ownerID <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	task, svcErr := h.svc.AssignOwner(r.Context(), id, ownerID)
	if svcErr != nil {
		handleServiceError(w, h.logger, svcErr)
		return
	}

	h.logger.Info("task_assigned",
		"task_id", id,
		"owner_id", ownerID,
	)

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(*task))
}

// taskID parses the {id} path parameter, writing a 400 response when invalid.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return 0, false
	}
	return id, true
}
