// Package api provides HTTP handlers for the Burme Mark API.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/backup"
	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/history"
	"github.com/athuyarain/burme-mark/internal/records"
	"github.com/go-chi/chi/v5"
)

// AI is the remote inference collaborator the handlers depend on.
type AI interface {
	Chat(ctx context.Context, history []domain.ChatMessage, userMessage string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Runner executes scratchpad code and returns its output text.
type Runner interface {
	Run(ctx context.Context, language, code string) (string, error)
}

// Handler serves all API routes over the record stores.
type Handler struct {
	chats       *records.Chats
	images      *records.Images
	projects    *records.Projects
	preferences *records.Preferences
	aggregator  *history.Aggregator
	codec       *backup.Codec
	ai          AI
	runner      Runner
	activity    activity.Logger
}

// Deps bundles the handler's collaborators.
type Deps struct {
	Chats       *records.Chats
	Images      *records.Images
	Projects    *records.Projects
	Preferences *records.Preferences
	Aggregator  *history.Aggregator
	Codec       *backup.Codec
	AI          AI
	Runner      Runner
	Activity    activity.Logger
}

// NewHandler creates a Handler over the given collaborators.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		chats:       deps.Chats,
		images:      deps.Images,
		projects:    deps.Projects,
		preferences: deps.Preferences,
		aggregator:  deps.Aggregator,
		codec:       deps.Codec,
		ai:          deps.AI,
		runner:      deps.Runner,
		activity:    deps.Activity,
	}
}

// RegisterRoutes mounts all API routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/chat", h.ListChat)
		r.Post("/chat", h.SendChat)
		r.Delete("/chat", h.ClearChat)

		r.Get("/images", h.ListImages)
		r.Post("/images", h.GenerateImage)
		r.Delete("/images", h.ClearImages)

		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)
		r.Post("/projects/{id}/run", h.RunProject)

		r.Get("/history", h.GetHistory)
		r.Delete("/history", h.ClearHistory)

		r.Get("/backup", h.ExportBackup)
		r.Post("/backup", h.ImportBackup)

		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.PutPreferences)
		r.Get("/language", h.GetLanguage)
		r.Put("/language", h.PutLanguage)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
