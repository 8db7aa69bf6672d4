package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/andrelima-dev/meuestoque/internal/http/handlers"
)

func createTask(req handler.TaskRequest) handler.TaskResponse {
	w := doAuthed(http.MethodPost, "/tasks", req)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("task setup failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding task response: %v", err))
	}
	return resp
}

func TestCreateTaskHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)

	w := doAuthed(http.MethodPost, "/tasks", handler.TaskRequest{
		Title:    "Conferir estoque de bebidas",
		Priority: "alta",
		Status:   "pendente",
		DueDate:  today(),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Status != "pendente" {
		t.Errorf("expected status pendente, got %q", resp.Status)
	}
	if resp.CompletedAt != "" {
		t.Errorf("pending task must not carry a completion timestamp")
	}
}

func TestCreateTaskHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)

	tests := []struct {
		name    string
		payload handler.TaskRequest
	}{
		{"missing title", handler.TaskRequest{Priority: "alta", Status: "pendente", DueDate: today()}},
		{"unknown priority", handler.TaskRequest{Title: "x", Priority: "urgente", Status: "pendente", DueDate: today()}},
		{"unknown status", handler.TaskRequest{Title: "x", Priority: "alta", Status: "feita", DueDate: today()}},
		{"missing due date", handler.TaskRequest{Title: "x", Priority: "alta", Status: "pendente"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthed(http.MethodPost, "/tasks", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestUpdateTaskHandler_CompletionTimestamp(t *testing.T) {
	t.Cleanup(clearAll)

	task := createTask(handler.TaskRequest{
		Title: "Pagar fornecedor", Priority: "média", Status: "pendente", DueDate: today(),
	})

	// Completing sets the timestamp.
	w := doAuthed(http.MethodPut, fmt.Sprintf("/tasks/%d", task.Id), handler.TaskRequest{
		Title: "Pagar fornecedor", Priority: "média", Status: "concluída", DueDate: today(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var done handler.TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&done); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if done.CompletedAt == "" {
		t.Fatalf("expected a completion timestamp")
	}

	// Reopening clears it.
	w = doAuthed(http.MethodPut, fmt.Sprintf("/tasks/%d", task.Id), handler.TaskRequest{
		Title: "Pagar fornecedor", Priority: "média", Status: "em_andamento", DueDate: today(),
	})
	var reopened handler.TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&reopened); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if reopened.CompletedAt != "" {
		t.Errorf("expected completion timestamp cleared, got %q", reopened.CompletedAt)
	}
}

func TestGetTasksHandler_StatusFilter(t *testing.T) {
	t.Cleanup(clearAll)

	createTask(handler.TaskRequest{Title: "a", Priority: "baixa", Status: "pendente", DueDate: today()})
	createTask(handler.TaskRequest{Title: "b", Priority: "baixa", Status: "concluída", DueDate: today()})
	createTask(handler.TaskRequest{Title: "c", Priority: "alta", Status: "pendente", DueDate: today()})

	w := doAuthed(http.MethodGet, "/tasks?status=pendente", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var result handler.TasksSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Meta.TotalCount != 2 {
		t.Errorf("expected 2 pending tasks, got %d", result.Meta.TotalCount)
	}
	for _, task := range result.Data {
		if task.Status != "pendente" {
			t.Errorf("unexpected status %q in filtered list", task.Status)
		}
	}
}

func TestDeleteTaskHandler(t *testing.T) {
	t.Cleanup(clearAll)

	task := createTask(handler.TaskRequest{Title: "d", Priority: "baixa", Status: "pendente", DueDate: today()})

	w := doAuthed(http.MethodDelete, fmt.Sprintf("/tasks/%d", task.Id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}
	w = doAuthed(http.MethodGet, fmt.Sprintf("/tasks/%d", task.Id), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}
