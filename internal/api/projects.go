package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Localized project strings.
const lastProjectMessage = "Project နောက်ဆုံးတစ်ခုကို ဖျက်မရပါ"

type projectListResponse struct {
	Projects []domain.CodeProject `json:"projects"`
}

type runProjectResponse struct {
	Output  string             `json:"output"`
	Project domain.CodeProject `json:"project"`
}

// ListProjects returns all projects, seeding a default on first use.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, projectListResponse{Projects: h.projects.Load(r.Context())})
}

// CreateProject adds a fresh default-named project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Create(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	JSON(w, http.StatusCreated, project)
}

// UpdateProject saves code/output/language/name changes for a project.
// An unknown id saves nothing and yields 204.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, found, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	JSON(w, http.StatusOK, project)
}

// DeleteProject removes a project. Deleting the last remaining project is
// rejected and leaves the store unchanged; deleting an unknown id is
// idempotent.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	err := h.projects.Remove(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrLastProject):
		Error(w, http.StatusConflict, lastProjectMessage)
	case err != nil:
		Error(w, http.StatusInternalServerError, "failed to delete project")
	default:
		JSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// RunProject executes the project's code in its language sandbox and
// persists the output as the project's last run result.
func (h *Handler) RunProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	project, err := h.projects.Get(ctx, id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	output, err := h.runner.Run(ctx, project.Language, project.Code)
	if err != nil {
		output = "Error: " + err.Error()
	}
	h.activity.Log(activity.Event{Kind: activity.KindCodeRun, Content: project.Name, Detail: project.Language})

	updated, found, err := h.projects.Update(ctx, id, domain.ProjectPatch{Output: &output})
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to save run output")
		return
	}
	if !found {
		// Deleted mid-run; return the output without a persisted record.
		project.Output = output
		JSON(w, http.StatusOK, runProjectResponse{Output: output, Project: project})
		return
	}
	JSON(w, http.StatusOK, runProjectResponse{Output: output, Project: updated})
}
