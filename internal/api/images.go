package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/domain"
)

// Localized image strings.
const imageFailureMessage = "ပုံဖန်တီးမှု မအောင်မြင်ပါ"

type imageListResponse struct {
	Images []domain.GeneratedImage `json:"images"`
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// ListImages returns the gallery, most recent first.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images := h.images.Load(r.Context())
	if images == nil {
		images = []domain.GeneratedImage{}
	}
	JSON(w, http.StatusOK, imageListResponse{Images: images})
}

// GenerateImage asks the inference endpoint for an image and prepends the
// record only on success. A failed generation writes nothing: the gallery
// store is untouched.
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		Error(w, http.StatusBadRequest, "prompt cannot be empty")
		return
	}

	ctx := r.Context()
	url, err := h.ai.GenerateImage(ctx, req.Prompt)
	if err != nil {
		slog.Warn("image generation failed", "error", err)
		h.activity.Log(activity.Event{Kind: activity.KindImageFailure, Content: req.Prompt, Detail: err.Error()})
		Error(w, http.StatusBadGateway, imageFailureMessage)
		return
	}

	image := domain.GeneratedImage{
		ID:        domain.NewID(),
		Prompt:    req.Prompt,
		URL:       url,
		Timestamp: time.Now(),
	}
	if err := h.images.Prepend(ctx, image); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	h.activity.Log(activity.Event{Kind: activity.KindImageSuccess, Content: req.Prompt, Detail: url})

	JSON(w, http.StatusOK, image)
}

// ClearImages empties the gallery.
func (h *Handler) ClearImages(w http.ResponseWriter, r *http.Request) {
	if err := h.images.Clear(r.Context()); err != nil {
		Error(w, http.StatusInternalServerError, "failed to clear images")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
