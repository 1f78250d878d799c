package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todolist/internal/config"
	"todolist/internal/db"
	"todolist/internal/services"

	"github.com/gorilla/mux"
)

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, database *db.DB) *Server {
	tagService := services.NewTagService(database)
	userService := services.NewUserService(database)
	taskService := services.NewTaskService(database, tagService, userService)

	tagHandler := NewTagHandler(tagService)
	taskHandler := NewTaskHandler(taskService)
	userHandler := NewUserHandler(userService)

	health := func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context()); err != nil {
			writeErrorStatus(w, r, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}

	r := newRouter(tagHandler, taskHandler, userHandler, health)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      enableCORS(requestLogger(r)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return &Server{httpServer: httpServer}
}

func newRouter(tagHandler *TagHandler, taskHandler *TaskHandler, userHandler *UserHandler, health http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/tags", tagHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/tags", tagHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/tags/{id}", tagHandler.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/tags/{id}", tagHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/tags/{id}", tagHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/tasks", taskHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", taskHandler.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", userHandler.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", userHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", userHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	return r
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
