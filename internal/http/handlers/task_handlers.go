package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

func toTaskResponse(t models.Task) TaskResponse {
	resp := TaskResponse{
		Id:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

func parseTaskDueDate(w http.ResponseWriter, raw string) (time.Time, bool) {
	due, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeFieldErrors(w, []FieldError{{Field: "due_date", Description: "due date must be a valid YYYY-MM-DD day"}})
		return time.Time{}, false
	}
	return due, true
}

// CreateTaskHandler creates a to-do item. A task created directly in the
// concluída status gets its completion timestamp right away.
//
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body TaskRequest true "Task to create"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} map[string]any
// @Security BearerAuth
// @Router /tasks [post]
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := structFieldErrors(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	due, ok := parseTaskDueDate(w, req.DueDate)
	if !ok {
		return
	}

	now := time.Now()
	task := models.Task{
		UserID:      currentUserID(r),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     due,
		CreatedAt:   now,
	}
	if task.Status == models.StatusDone {
		task.CompletedAt = &now
	}

	created, err := taskRepo.Create(task)
	if err != nil {
		http.Error(w, "failed to create task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

// GetTasksHandler lists the user's tasks. Supports status, priority,
// search, offset and limit query parameters.
//
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} TasksSearchResult
// @Security BearerAuth
// @Router /tasks [get]
func GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.TaskFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
		Offset:   queryIntPtr(r, "offset"),
		Limit:    queryIntPtr(r, "limit"),
	}
	tasks, total, err := taskRepo.GetAll(currentUserID(r), f)
	if err != nil {
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}
	result := TasksSearchResult{Data: make([]TaskResponse, 0, len(tasks)), Meta: Meta{TotalCount: total}}
	for _, t := range tasks {
		result.Data = append(result.Data, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetTaskByIDHandler returns one task by id.
//
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /tasks/{id} [get]
func GetTaskByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid task ID", http.StatusBadRequest)
		return
	}
	task, err := taskRepo.GetByID(currentUserID(r), id)
	if errors.Is(err, repo.ErrTaskNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// UpdateTaskHandler replaces a task's fields. The completion timestamp is
// set when the status moves into concluída and cleared when it leaves it;
// updating an already-completed task without changing status keeps the
// original timestamp.
//
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body TaskRequest true "New field values"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /tasks/{id} [put]
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid task ID", http.StatusBadRequest)
		return
	}
	var req TaskRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := structFieldErrors(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	due, ok := parseTaskDueDate(w, req.DueDate)
	if !ok {
		return
	}

	existing, err := taskRepo.GetByID(currentUserID(r), id)
	if errors.Is(err, repo.ErrTaskNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load task", http.StatusInternalServerError)
		return
	}

	task := existing
	task.Title = req.Title
	task.Description = req.Description
	task.Priority = req.Priority
	task.Status = req.Status
	task.DueDate = due

	switch {
	case task.Status == models.StatusDone && existing.Status != models.StatusDone:
		now := time.Now()
		task.CompletedAt = &now
	case task.Status != models.StatusDone:
		task.CompletedAt = nil
	}

	updated, err := taskRepo.Update(task)
	if err != nil {
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

// DeleteTaskHandler removes a task.
//
// @Summary Delete a task
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 204 {string} string
// @Failure 404 {string} string
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid task ID", http.StatusBadRequest)
		return
	}
	if err := taskRepo.Delete(currentUserID(r), id); err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
