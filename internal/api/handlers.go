package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/starford/quicktask/internal/taskservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *taskservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *taskservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListVaults handles GET /api/vaults.
//
//	@Summary		List registered Obsidian vaults that exist on disk
//	@Tags			vaults
//	@Produce		json
//	@Success		200	{object}	VaultListResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vaults [get]
func (h *Handler) ListVaults(w http.ResponseWriter, r *http.Request) {
	vaults, err := h.svc.ListVaults(r.Context())
	if err != nil {
		writeError(w, "list vaults", err)
		return
	}
	writeJSON(w, http.StatusOK, VaultListResponse{Vaults: vaults})
}

// AddTask handles POST /api/tasks.
//
//	@Summary		Append a task to today's daily note of a registered vault
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddTaskRequest	true	"Task to add"
//	@Success		201		{object}	AddTaskResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tasks [post]
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	v, err := h.svc.RegisteredVault(r.Context(), req.Vault)
	if err != nil {
		writeError(w, "add task", err)
		return
	}
	res, err := h.svc.AddTask(r.Context(), taskservice.AddTaskRequest{
		VaultPath: v.Path,
		Content:   req.Content,
		DueDate:   req.DueDate,
		ParseDate: req.ParseDate,
	})
	if err != nil {
		writeError(w, "add task", err)
		return
	}
	writeJSON(w, http.StatusCreated, AddTaskResponse{
		Path:     res.Path,
		Line:     res.Line,
		Checksum: res.Checksum,
	})
}

// RecentTasks handles GET /api/tasks/recent.
//
//	@Summary		List recently added tasks
//	@Tags			tasks
//	@Produce		json
//	@Param			vault	query		string	false	"Only tasks for this vault path"
//	@Param			limit	query		int		false	"Max entries"
//	@Success		200		{object}	RecentTasksResponse
//	@Security		BearerAuth
//	@Router			/tasks/recent [get]
func (h *Handler) RecentTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	tasks, err := h.svc.RecentTasks(r.Context(), q.Get("vault"), limit)
	if err != nil {
		writeError(w, "recent tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, RecentTasksResponse{Tasks: tasks})
}
