package http

import (
	"net/http"

	"taktziv/internal/core"
)

type taskPayload struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	Important bool   `json:"important"`
	Completed bool   `json:"completed"`
}

func taskToPayload(t core.Task) taskPayload {
	return taskPayload{ID: t.ID, Title: t.Title, Important: t.Important, Completed: t.Completed}
}

// handleListTasks returns open tasks only; completed ones never show up in
// the list view.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.repo.ListTasks(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	visible := core.VisibleTasks(tasks)
	payload := make([]taskPayload, 0, len(visible))
	for _, t := range visible {
		payload = append(payload, taskToPayload(t))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	task := core.Task{Title: in.Title, Important: in.Important}
	if err := task.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.repo.CreateTask(r.Context(), task)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, taskToPayload(created))
}

type taskUpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Important *bool   `json:"important,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// handleUpdateTask applies a partial update; absent fields keep their
// stored values.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in taskUpdateRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := s.repo.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Important != nil {
		task.Important = *in.Important
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	if err := task.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.repo.UpdateTask(r.Context(), task); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, taskToPayload(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteTask(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondNoContent(w)
}
