package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard-backend/internal/repository"
	"github.com/taskboard/taskboard-backend/internal/service"
	"github.com/taskboard/taskboard-backend/web"
)

// serverErrorMessage is the fixed body for storage failures; no detail is
// leaked past this boundary.
const serverErrorMessage = "Server Error"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", s.createTaskHandler)
		r.Get("/", s.listTasksHandler)
		r.Put("/{id}", s.updateTaskHandler)
		r.Delete("/{id}", s.deleteTaskHandler)
	})

	// The single-page client is embedded in the binary and served from the
	// root, with the API mounted above it.
	r.Handle("/*", web.Handler())

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	taskResp, err := s.taskService.CreateTask(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			respondWithError(w, http.StatusBadRequest, err.Error())
		} else {
			log.Printf("Error calling CreateTask service: %v", err)
			respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, taskResp)
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.ListTasks(r.Context())
	if err != nil {
		log.Printf("Error calling ListTasks service: %v", err)
		respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	var req service.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updatedTask, err := s.taskService.UpdateTask(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompletedRequired):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrTaskNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("Error calling UpdateTask service: %v", err)
			respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updatedTask)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("Error calling DeleteTask service: %v", err)
			respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondWithDecodeError translates json.Decoder failures into 400 responses
// with a hint at what was malformed.
func respondWithDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)",
				unmarshalTypeError.Field, unmarshalTypeError.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	default:
		log.Printf("Error decoding request body: %v", err)
		respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
