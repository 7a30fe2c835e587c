package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/domain"
)

// maxBackupBytes caps an imported backup document.
const maxBackupBytes = 32 << 20

// ExportBackup hands the full snapshot to the caller as a downloadable JSON
// attachment. No store is mutated.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	snapshot := h.codec.Export(r.Context())
	h.activity.Log(activity.Event{Kind: activity.KindExport})

	filename := fmt.Sprintf("burme-mark-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		// Headers already sent; all that's left is to log.
		slog.Warn("encode backup snapshot", "error", err)
	}
}

// ImportBackup overwrites each store whose field is present in the uploaded
// document. A malformed document is rejected wholesale before any store is
// touched.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read backup document")
		return
	}

	if err := h.codec.Import(r.Context(), raw); err != nil {
		if errors.Is(err, domain.ErrInvalidSnapshot) {
			Error(w, http.StatusBadRequest, "invalid backup file")
			return
		}
		Error(w, http.StatusInternalServerError, "failed to restore backup")
		return
	}
	h.activity.Log(activity.Event{Kind: activity.KindImport})

	JSON(w, http.StatusOK, map[string]bool{"imported": true})
}
