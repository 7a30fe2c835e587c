package api

import (
	"encoding/json"
	"net/http"

	"github.com/athuyarain/burme-mark/internal/domain"
)

// GetPreferences returns the singleton preferences record.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.preferences.Load(r.Context()))
}

// PutPreferences overwrites the preferences record wholesale.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if prefs.Language != domain.LangMyanmar && prefs.Language != domain.LangEnglish {
		Error(w, http.StatusBadRequest, "language must be \"my\" or \"en\"")
		return
	}
	switch prefs.Theme {
	case domain.ThemeLight, domain.ThemeDark, domain.ThemeSystem:
	default:
		Error(w, http.StatusBadRequest, "theme must be \"light\", \"dark\" or \"system\"")
		return
	}

	if err := h.preferences.Save(r.Context(), prefs); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	JSON(w, http.StatusOK, prefs)
}

type languagePayload struct {
	Language string `json:"language"`
}

// GetLanguage returns the bare UI language setting.
func (h *Handler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, languagePayload{Language: h.preferences.Language(r.Context())})
}

// PutLanguage stores the bare UI language setting.
func (h *Handler) PutLanguage(w http.ResponseWriter, r *http.Request) {
	var payload languagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.preferences.SetLanguage(r.Context(), payload.Language); err != nil {
		Error(w, http.StatusBadRequest, "language must be \"my\" or \"en\"")
		return
	}
	JSON(w, http.StatusOK, payload)
}
